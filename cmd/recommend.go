package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anupamd/studiq/internal/recommend"
	"github.com/anupamd/studiq/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <quiz-id>",
	Short: "Recommend learning resources from quiz performance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetInt("score")
		total, _ := cmd.Flags().GetInt("total")
		withAI, _ := cmd.Flags().GetBool("ai")
		withVideo, _ := cmd.Flags().GetBool("video")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		req := recommend.Request{
			QuizID:       args[0],
			Score:        score,
			Total:        total,
			IncludeAI:    withAI,
			IncludeVideo: withVideo,
		}
		if total == 0 {
			// No score given: use the best stored attempt.
			sig, err := a.PlanSignal(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("no score given and %w", err)
			}
			req.Score, req.Total = sig.Score, sig.Total
		}

		resp, err := a.Recommend(cmd.Context(), req)
		if err != nil {
			return err
		}

		if resp.AINotice != "" {
			fmt.Println(theme.Notice.Render(resp.AINotice))
		}
		if len(resp.Items) == 0 {
			fmt.Println(theme.Dim.Render("No recommendations for this quiz."))
			return nil
		}

		fmt.Println(theme.Title.Render(fmt.Sprintf("Recommendations (%d)", len(resp.Items))))
		for i, item := range resp.Items {
			fmt.Printf("%2d. %s %s\n", i+1,
				theme.Header.Render(item.Title),
				theme.Dim.Render(fmt.Sprintf("[%s/%s, priority %d]", item.Platform, item.Type, item.Priority)))
			if item.Description != "" {
				fmt.Printf("    %s\n", item.Description)
			}
			if item.URL != "" {
				fmt.Printf("    %s\n", theme.Dim.Render(item.URL))
			}
			if item.SourceReason != "" {
				fmt.Printf("    %s\n", theme.Notice.Render(item.SourceReason))
			}
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().Int("score", 0, "Quiz score (defaults to best stored attempt)")
	recommendCmd.Flags().Int("total", 0, "Total questions (defaults to best stored attempt)")
	recommendCmd.Flags().Bool("ai", false, "Include AI-generated recommendations")
	recommendCmd.Flags().Bool("video", false, "Include video recommendations")
}
