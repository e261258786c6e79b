package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordfreq/internal/counter"
	"github.com/rcliao/wordfreq/internal/metrics"
	"github.com/rcliao/wordfreq/internal/runner"
	"github.com/rcliao/wordfreq/internal/tokenizer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "count <text-file> [settings-file]",
		Short: "Count frequencies and write the table",
		Long: "Apply each settings line as a pattern (literal, or prefix~suffix) in order, removing what it matches,\n" +
			"then count the remaining words. Pattern lines are counted under their raw text.",
		Args: cobra.MaximumNArgs(2),
		Run:  runCount,
	}

	cmd.Flags().StringP("settings", "s", "", "Settings file with one pattern per line")
	cmd.Flags().StringP("out", "o", "", "Output path (default: input with .txt replaced)")
	cmd.Flags().String("format", "", "Output format: xlsx or csv (default from config)")
	cmd.Flags().StringSlice("exclude", nil, "Exclusion filters: hangul, hangul-script, digits, none")
	cmd.Flags().Bool("normalize", false, "Apply NFC normalization to the text and patterns before matching")
	cmd.Flags().Bool("no-history", false, "Do not record the run")
	cmd.Flags().Bool("print", false, "Also print the table rows as JSON")

	RootCmd.AddCommand(cmd)
}

func runCount(cmd *cobra.Command, args []string) {
	settings, _ := cmd.Flags().GetString("settings")
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	normalize, _ := cmd.Flags().GetBool("normalize")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	printRows, _ := cmd.Flags().GetBool("print")

	textPath, settings, err := countPaths(args, settings)
	if err != nil {
		exitErr("count", err)
	}

	exclude := cfg.Count.Exclude
	if cmd.Flags().Changed("exclude") {
		exclude, _ = cmd.Flags().GetStringSlice("exclude")
	}
	exclusions, err := tokenizer.ParseExclusions(exclude)
	if err != nil {
		exitErr("count", err)
	}

	if format == "" && out == "" {
		format = cfg.Output.Format
	}

	r := &runner.Runner{
		Metrics:         metrics.New(),
		ErrorLog:        cfg.Errors.Log,
		MetricsTextfile: cfg.Metrics.Textfile,
	}
	if cfg.History.Enabled && !noHistory {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()
		r.Store = s
	}

	rep, err := r.Run(cmd.Context(), runner.Job{
		TextPath:     textPath,
		SettingsPath: settings,
		OutputPath:   out,
		Format:       strings.ToLower(format),
		Sheet:        cfg.Output.Sheet,
		Options: counter.Options{
			Tokenizer: tokenizer.Options{Exclude: exclusions},
			Normalize: cfg.Count.NormalizeNFC() || normalize,
		},
	})
	if err != nil {
		var runErr *runner.RunError
		if errors.As(err, &runErr) {
			for _, se := range runErr.Secondary {
				fmt.Fprintf(os.Stderr, "error: %v\n", se)
			}
		}
		if r.Store != nil {
			r.Store.Close()
		}
		exitErr("count", err)
	}

	if !printRows {
		rep.Entries = nil
	}
	b, _ := json.MarshalIndent(rep, "", "  ")
	fmt.Println(string(b))
}

// countPaths picks the text and settings paths from the arguments. A missing
// text path is a usage error reported before any run starts, so nothing is
// logged or recorded for it.
func countPaths(args []string, settings string) (string, string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", "", fmt.Errorf("%w: pass a text file", counter.ErrNoInput)
	}
	if len(args) > 1 {
		if settings != "" {
			return "", "", fmt.Errorf("settings given both as argument and --settings")
		}
		settings = args[1]
	}
	return args[0], settings, nil
}
