package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run and its table",
		Long:  "Show a recorded run. The ID may be any unique prefix.",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	run, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("show", err)
	}

	b, _ := json.MarshalIndent(run, "", "  ")
	fmt.Println(string(b))
}
