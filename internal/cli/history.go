package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordfreq/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().String("status", "", "Filter by status: ok or failed")
	cmd.Flags().Bool("ids-only", false, "Only output run IDs")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	runs, err := s.List(cmd.Context(), store.ListParams{
		Status: status,
		Limit:  limit,
	})
	if err != nil {
		exitErr("history", err)
	}

	if idsOnly {
		for _, r := range runs {
			fmt.Println(r.ID)
		}
		return
	}

	if len(runs) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(runs, "", "  ")
	fmt.Println(string(b))
}
