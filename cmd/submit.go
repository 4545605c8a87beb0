package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anupamd/studiq/internal/ui/theme"
)

var submitCmd = &cobra.Command{
	Use:   "submit <quiz-id> <answer>...",
	Short: "Grade a quiz attempt and store the result",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		quizID, answers := args[0], args[1:]
		sub, err := a.SubmitQuiz(cmd.Context(), quizID, answers)
		if err != nil {
			return err
		}

		res := sub.Result
		fmt.Println(theme.Title.Render("Quiz graded"))
		fmt.Printf("Attempt %d: %s\n", sub.Attempt,
			theme.Header.Render(fmt.Sprintf("%d/%d (%.0f%%)", res.Score, res.TotalQuestions, res.Percent())))
		if len(res.CorrectIndexes) > 0 {
			fmt.Println(theme.Good.Render("Correct:"), formatIndexes(res.CorrectIndexes))
		}
		if len(res.IncorrectIndexes) > 0 {
			fmt.Println(theme.Bad.Render("Incorrect:"), formatIndexes(res.IncorrectIndexes))
		}
		fmt.Println(theme.Dim.Render("Analytics queued; run `studiq sync` when online."))
		return nil
	},
}

func formatIndexes(idx []int) string {
	out := ""
	for i, n := range idx {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("Q%d", n+1)
	}
	return out
}
