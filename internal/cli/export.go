package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordfreq/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write a recorded run's table again",
		Long:  "Write a recorded run's frequency table to a new file, rows in their original order.",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", "", "Output path (required)")
	cmd.Flags().String("format", "", "Output format: xlsx or csv (default from --out extension)")

	cmd.MarkFlagRequired("out")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	run, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("export", err)
	}

	if format == "" {
		format = export.FormatFromPath(out)
	}
	if format == "" {
		format = run.Format
	}
	w, err := export.New(export.Options{Format: format, Sheet: cfg.Output.Sheet})
	if err != nil {
		exitErr("export", err)
	}
	if err := w.Write(out, run.Entries); err != nil {
		exitErr("export", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"output":%q,"rows":%d}`+"\n", run.ID, out, len(run.Entries))
}
