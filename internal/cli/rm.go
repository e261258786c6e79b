package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <run-id>",
		Short: "Delete a recorded run",
		Long:  "Delete a recorded run and its table rows. A unique ID prefix is enough.",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	run, err := s.Rm(cmd.Context(), args[0])
	if err != nil {
		exitErr("rm", err)
	}

	b, _ := json.Marshal(map[string]any{
		"ok":     true,
		"id":     run.ID,
		"input":  run.InputPath,
		"status": run.Status,
		"terms":  run.TermCount,
	})
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
