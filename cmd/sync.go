package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anupamd/studiq/internal/syncq"
	"github.com/anupamd/studiq/internal/ui/theme"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the offline queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Sync(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(theme.Title.Render("Sync finished"))
		fmt.Printf("%s %d  %s %d  %s %d\n",
			theme.Good.Render("synced:"), report.SyncedCount,
			theme.Bad.Render("failed:"), report.FailedCount,
			theme.Dim.Render("skipped:"), report.SkippedCount)
		if report.PurgedCount > 0 {
			fmt.Println(theme.Dim.Render(fmt.Sprintf("purged %d expired items", report.PurgedCount)))
		}
		for _, outcome := range report.PerItem {
			if outcome.Status != syncq.StatusFailed {
				continue
			}
			fmt.Printf("  %s %s (%s): %s\n",
				theme.Bad.Render("✗"), outcome.ID, outcome.DataType, outcome.Err)
		}
		return nil
	},
}
