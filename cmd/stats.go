package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session, token, and cost rollups",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()

		if err := printSessionStats(ctx, repo); err != nil {
			return err
		}
		if err := printUsageByPurpose(ctx, repo); err != nil {
			return err
		}
		return printCostByModel(ctx, repo)
	},
}

func printSessionStats(ctx context.Context, repo store.EventRepo) error {
	summaries, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}

	var completed, abandoned, open, answered, scoreSum int
	for _, sum := range summaries {
		answered += sum.QuestionsAnswered
		switch sum.Kind {
		case store.SessionCompleted:
			completed++
			scoreSum += sum.OverallScore
		case store.SessionAbandoned:
			abandoned++
		default:
			open++
		}
	}

	fmt.Println("Sessions")
	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("Completed: %d    Ended early: %d    Unfinished: %d    Answers graded: %d\n",
		completed, abandoned, open, answered)
	if completed > 0 {
		fmt.Printf("Average score across completed sessions: %d/100\n", scoreSum/completed)
	}
	fmt.Println()
	return nil
}

func printUsageByPurpose(ctx context.Context, repo store.EventRepo) error {
	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}

	if len(stats) == 0 {
		fmt.Println("No LLM usage recorded yet.")
		return nil
	}

	fmt.Println("Usage by Purpose")
	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Println(strings.Repeat("─", 72))

	var totalCalls, totalIn, totalOut int
	for _, st := range stats {
		total := st.InputTokens + st.OutputTokens
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
			st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, total, st.AvgLatencyMs)
		totalCalls += st.Calls
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}

	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)
	return nil
}

func printCostByModel(ctx context.Context, repo store.EventRepo) error {
	modelUsage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(modelUsage) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Estimated Cost (USD)")
	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(strings.Repeat("─", 72))

	var totalCost float64
	var unknownModels []string
	for _, mu := range modelUsage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknownModels = append(unknownModels, mu.Model)
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Printf("%-32s  %6d  %10d  %10d  %9s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Println(strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n",
		label, "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
