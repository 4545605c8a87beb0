package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anupamd/studiq/internal/tier"
	"github.com/anupamd/studiq/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-course performance from stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println(theme.Dim.Render("No graded attempts yet."))
			return nil
		}

		fmt.Println(theme.Title.Render("Performance by course"))
		fmt.Printf("%-30s %-9s %-8s %-8s %s\n", "Course", "Attempts", "Avg", "Best", "Level")
		fmt.Println(strings.Repeat("─", 70))
		for _, row := range stats {
			t, err := tier.Classify(int(row.AvgPercent), 100)
			level := string(t)
			if err != nil {
				level = "-"
			}
			fmt.Printf("%-30s %-9d %-8s %-8s %s\n",
				row.CourseTitle,
				row.Attempts,
				fmt.Sprintf("%.0f%%", row.AvgPercent),
				fmt.Sprintf("%.0f%%", row.BestPercent),
				level)
		}
		return nil
	},
}
