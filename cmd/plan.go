package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
	"github.com/Chirchirp/Interview-Coach/internal/session"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the question plan for your materials (no interview)",
	Long: `Generate and print the ten-question interview plan without starting a session.

A stateless developer tool — no database, no grading, no report. Useful for
checking what the coach would ask for a given resume and job posting.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("resume", "", "Resume file (pdf, docx, or txt)")
	planCmd.Flags().String("job", "", "Job posting file (pdf, docx, or txt)")
	planCmd.Flags().String("field", "", "Job field for a quick plan, instead of documents")
	planCmd.Flags().String("experience", "", "Experience level for a quick plan")
	planCmd.Flags().Bool("bank", false, "Use the built-in question bank (no provider call)")
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
}

func runPlan(cmd *cobra.Command, args []string) error {
	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	field, _ := cmd.Flags().GetString("field")
	experience, _ := cmd.Flags().GetString("experience")
	useBank, _ := cmd.Flags().GetBool("bank")
	asJSON, _ := cmd.Flags().GetBool("json")

	quick := field != ""
	if quick && (resumePath != "" || jobPath != "") {
		return fmt.Errorf("use --field or document flags, not both")
	}

	var plan *planner.Plan
	switch {
	case useBank:
		plan = planner.Fallback(field)

	default:
		in := session.SetupInput{
			ResumePath: resumePath,
			JobPath:    jobPath,
			Field:      field,
			Experience: experience,
			Quick:      quick,
		}
		profile, err := in.LoadMaterials()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		// No event repo: preview calls are not logged.
		provider, err := llm.NewProvider(ctx, resolveLLMConfig(cmd), nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		svc := planner.NewService(provider, planner.DefaultConfig())
		if quick {
			plan, err = svc.FromField(ctx, profile.Field, profile.Experience, profile.Focus)
		} else {
			plan, err = svc.FromMaterials(ctx, profile.ResumeText, profile.JobText)
		}
		if err != nil {
			return fmt.Errorf("plan generation: %w (try --bank for the built-in set)", err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	printPlan(plan)
	return nil
}

func printPlan(plan *planner.Plan) {
	if plan.TargetRole != "" {
		fmt.Printf("Target role: %s\n", plan.TargetRole)
	}
	if plan.CandidateName != "" {
		fmt.Printf("Candidate:   %s\n", plan.CandidateName)
	}
	if len(plan.KeyStrengths) > 0 {
		fmt.Printf("Strengths:   %s\n", strings.Join(plan.KeyStrengths, "; "))
	}
	if len(plan.KeyGaps) > 0 {
		fmt.Printf("Gaps:        %s\n", strings.Join(plan.KeyGaps, "; "))
	}
	fmt.Println()

	for _, q := range plan.Questions {
		fmt.Printf("%2d. [%s · %s]\n", q.ID, q.Category, q.Difficulty)
		fmt.Printf("    %s\n", q.Text)
		if q.WhatGreatLooksLike != "" {
			fmt.Printf("    Great answers: %s\n", q.WhatGreatLooksLike)
		}
		fmt.Println()
	}
}
