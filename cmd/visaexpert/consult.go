package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"visaexpert/internal/driver"
	"visaexpert/internal/history"
	"visaexpert/internal/rulebase"
	"visaexpert/internal/session"
)

var consultGoals []string

var consultCmd = &cobra.Command{
	Use:   "consult",
	Short: "Run one consultation interactively on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := rulebase.LoadYAML(rulebasePath)
		if err != nil {
			return fmt.Errorf("load rule base: %w", err)
		}
		if len(consultGoals) == 0 {
			consultGoals = []string{"E-visa eligible", "L-visa eligible", "B-visa eligible"}
		}

		sessions := session.NewStore(logger, nil)
		id, nextQuestion, hasQuestion := sessions.Start(consultGoals, model, cfg.Dialogue.Weights())

		in := bufio.NewScanner(os.Stdin)
		fmt.Printf("Consultation started (session %s). Answer yes/no/unknown, or \"undo\".\n", id)

		for hasQuestion {
			fmt.Printf("? %s: ", nextQuestion)
			if !in.Scan() {
				break
			}
			raw := strings.ToLower(strings.TrimSpace(in.Text()))

			if raw == "undo" {
				result, err := sessions.Undo(id)
				if err != nil {
					fmt.Fprintf(os.Stderr, "undo: %v\n", err)
					continue
				}
				if !result.Undone {
					fmt.Println("nothing to undo")
					continue
				}
				nextQuestion, hasQuestion = result.NextQuestion, result.HasNextQuestion
				continue
			}

			var ans history.Answer
			switch raw {
			case "yes", "y":
				ans = history.AnswerYes
			case "no", "n":
				ans = history.AnswerNo
			case "unknown", "u", "":
				ans = history.AnswerUnknown
			default:
				fmt.Println("please answer yes, no, unknown, or undo")
				continue
			}

			result, err := sessions.Answer(id, nextQuestion, ans)
			if err != nil {
				fmt.Fprintf(os.Stderr, "answer: %v\n", err)
				continue
			}
			if result.DetailQuestionsNeeded {
				fmt.Println("need more detail; asking about:")
				for _, q := range result.DetailQuestions {
					fmt.Printf("  - %s\n", q)
				}
				nextQuestion, hasQuestion = questionAfterDetail(result)
				continue
			}

			nextQuestion, hasQuestion = result.NextQuestion, result.HasNextQuestion
			if !hasQuestion && result.GoalMap != nil {
				printGoalMap(result.GoalMap)
			}
		}
		return nil
	},
}

// questionAfterDetail re-enters the dialogue on the first outstanding
// detail question so the loop can keep driving stdin without a second
// call into the driver.
func questionAfterDetail(result *driver.AnswerResult) (string, bool) {
	if len(result.DetailQuestions) == 0 {
		return "", false
	}
	return result.DetailQuestions[0], true
}

func printGoalMap(goalMap map[string]bool) {
	fmt.Println("Consultation complete:")
	for _, g := range consultGoals {
		fmt.Printf("  %s: %v\n", g, goalMap[g])
	}
}

func init() {
	consultCmd.Flags().StringVar(&rulebasePath, "rulebase", "data/rulebase.yaml", "Path to the YAML rule base")
	consultCmd.Flags().StringSliceVar(&consultGoals, "goals", nil, "Goal facts to evaluate (default: all three bundled visa goals)")
}
