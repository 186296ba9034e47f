package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visaexpert/internal/rulebase"
	"visaexpert/internal/validator"
)

var (
	validateRulebasePath string
	validateGoals        []string
	testCandidatePath    string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate a rule base",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the rule validator over a rule-base file and print its report",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := rulebase.LoadYAML(validateRulebasePath)
		if err != nil {
			return fmt.Errorf("load rule base: %w", err)
		}
		goals := validateGoals
		if len(goals) == 0 {
			goals = []string{"E-visa eligible", "L-visa eligible", "B-visa eligible"}
		}
		report := validator.ValidateAll(model, goals)
		printReport(report)
		if !report.IsValid() {
			os.Exit(1)
		}
		return nil
	},
}

var rulesTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Run test_rule_modification against a proposed single-rule edit file",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := rulebase.LoadYAML(validateRulebasePath)
		if err != nil {
			return fmt.Errorf("load rule base: %w", err)
		}
		candidateModel, err := rulebase.LoadYAML(testCandidatePath)
		if err != nil {
			return fmt.Errorf("load candidate rule: %w", err)
		}
		candidates := candidateModel.Rules()
		if len(candidates) != 1 {
			return fmt.Errorf("candidate file must contain exactly one rule, got %d", len(candidates))
		}
		goals := validateGoals
		if len(goals) == 0 {
			goals = []string{"E-visa eligible", "L-visa eligible", "B-visa eligible"}
		}
		result := validator.TestRuleModification(model, candidates[0], goals)
		printReport(result.Report)
		if !result.IsValid {
			os.Exit(1)
		}
		fmt.Println("candidate edit is valid")
		return nil
	},
}

func printReport(report validator.Report) {
	if len(report.All()) == 0 {
		fmt.Println("no findings")
		return
	}
	for _, f := range report.All() {
		fmt.Printf("[%s] %s: %s\n", f.Severity, f.Type, f.Message)
	}
}

func init() {
	rulesCmd.PersistentFlags().StringVar(&validateRulebasePath, "rulebase", "data/rulebase.yaml", "Path to the YAML rule base")
	rulesCmd.PersistentFlags().StringSliceVar(&validateGoals, "goals", nil, "Goal facts to validate against (default: all three bundled visa goals)")
	rulesTestCmd.Flags().StringVar(&testCandidatePath, "candidate", "", "Path to a YAML file containing exactly one candidate rule")
	rulesTestCmd.MarkFlagRequired("candidate")

	rulesCmd.AddCommand(rulesValidateCmd, rulesTestCmd)
}
