package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordfreq/internal/pattern"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns <settings-file>",
		Short: "Show how a settings file is parsed",
		Long:  "Print each settings line as a literal or wildcard pattern, in application order.",
		Args:  cobra.ExactArgs(1),
		Run:   runPatterns,
	}

	RootCmd.AddCommand(cmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		exitErr("read settings", err)
	}
	defer f.Close()

	patterns, err := pattern.Read(f)
	if err != nil {
		exitErr("patterns", err)
	}

	b, _ := json.MarshalIndent(patterns, "", "  ")
	fmt.Println(string(b))
}
