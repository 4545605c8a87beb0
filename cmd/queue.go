package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anupamd/studiq/internal/syncq"
	"github.com/anupamd/studiq/internal/ui/theme"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the offline sync queue",
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued items and their sync state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.QueueItems(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println(theme.Dim.Render("Queue is empty."))
			return nil
		}

		fmt.Printf("%-38s %-18s %-8s %-9s %s\n", "ID", "Type", "Status", "Attempts", "Last error")
		fmt.Println(strings.Repeat("─", 100))
		for _, item := range items {
			status := string(item.Status)
			switch item.Status {
			case syncq.StatusSynced:
				status = theme.Good.Render(status)
			case syncq.StatusFailed:
				status = theme.Bad.Render(status)
			}
			fmt.Printf("%-38s %-18s %-8s %-9d %s\n",
				item.ID, item.DataType, status, item.Attempts, item.LastError)
		}
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueListCmd)
}
