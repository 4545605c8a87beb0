package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anupamd/studiq/internal/plan"
	"github.com/anupamd/studiq/internal/recommend"
	"github.com/anupamd/studiq/internal/ui/theme"
)

var planCmd = &cobra.Command{
	Use:   "plan <quiz-id>...",
	Short: "Generate a study plan from stored quiz attempts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, _ := cmd.Flags().GetString("program")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sigs := make([]recommend.Signal, 0, len(args))
		for _, quizID := range args {
			sig, err := a.PlanSignal(cmd.Context(), quizID)
			if err != nil {
				return err
			}
			sigs = append(sigs, sig)
		}

		if program != "" {
			pp, err := a.Planner.GenerateProgram(cmd.Context(), program, sigs)
			if err != nil {
				return err
			}
			fmt.Println(theme.Title.Render("Program plan: " + pp.ProgramID))
			for i := range pp.Courses {
				printPlan(&pp.Courses[i])
			}
			return nil
		}

		plans, err := a.Planner.GenerateMulti(cmd.Context(), sigs)
		if err != nil {
			return err
		}
		for i := range plans {
			printPlan(&plans[i])
		}
		return nil
	},
}

func init() {
	planCmd.Flags().String("program", "", "Group the plans under a program id")
}

func printPlan(p *plan.Plan) {
	fmt.Println(theme.Title.Render(p.CourseTitle))
	fmt.Printf("%s %s  %s %d%%\n",
		theme.Dim.Render("Level:"), p.Tier,
		theme.Dim.Render("Target:"), p.TargetScore)
	if p.Enhanced {
		fmt.Println(theme.Dim.Render("(AI-enhanced plan)"))
	}
	if p.Focus != "" {
		fmt.Println(theme.Notice.Render(p.Focus))
	}
	for i, step := range p.Steps {
		fmt.Printf("%2d. %s\n", i+1, step)
	}
	if len(p.Resources) > 0 {
		fmt.Println(theme.Header.Render("Resources:"))
		for _, r := range p.Resources {
			fmt.Printf("  - %s %s\n", r.Title, theme.Dim.Render("["+string(r.Type)+"]"))
		}
	}
	fmt.Println()
}
