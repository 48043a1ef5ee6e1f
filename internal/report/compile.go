package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Chirchirp/Interview-Coach/internal/grader"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
)

// Compile aggregates graded answers into a Summary. Pure and
// deterministic; ungraded answers count toward nothing but the total.
func Compile(answers []Answer) Summary {
	graded := make([]Answer, 0, len(answers))
	for _, a := range answers {
		if a.Grade != nil {
			graded = append(graded, a)
		}
	}

	var total int
	for _, a := range graded {
		total += a.Grade.Score
	}
	overall := 0
	if len(graded) > 0 {
		overall = roundHalfUp(float64(total) / float64(len(graded)))
	}

	return Summary{
		OverallScore:   overall,
		OverallGrade:   grader.LetterFor(overall),
		Tier:           TierFor(overall),
		Completed:      len(graded),
		Planned:        planner.PlanQuestions,
		CategoryScores: categoryScores(graded),
		TopStrengths:   topStrengths(graded),
		Improvements:   improvements(graded),
	}
}

// CompletionLine renders the "N of 10 questions completed" line.
func (s Summary) CompletionLine() string {
	return fmt.Sprintf("%d of %d questions completed", s.Completed, s.Planned)
}

func categoryScores(graded []Answer) []CategoryScore {
	type bucket struct {
		sum   int
		count int
		first int
	}
	buckets := map[planner.Category]*bucket{}
	var order []planner.Category

	for i, a := range graded {
		cat := a.Question.Category
		b, ok := buckets[cat]
		if !ok {
			b = &bucket{first: i}
			buckets[cat] = b
			order = append(order, cat)
		}
		b.sum += a.Grade.Score
		b.count++
	}

	scores := make([]CategoryScore, 0, len(order))
	for _, cat := range order {
		b := buckets[cat]
		scores = append(scores, CategoryScore{
			Category: cat,
			Score:    roundHalfUp(float64(b.sum) / float64(b.count)),
		})
	}
	return scores
}

// topStrengths ranks what_worked statements by how often they recur.
// Texts are folded (case and whitespace) before counting; ties go to the
// statement backed by the higher-scored answer, then to first occurrence.
func topStrengths(graded []Answer) []string {
	type entry struct {
		display  string
		count    int
		maxScore int
		firstIdx int
	}
	seen := map[string]*entry{}
	var order []*entry

	idx := 0
	for _, a := range graded {
		for _, s := range a.Grade.WhatWorked {
			key := fold(s)
			if key == "" {
				continue
			}
			e, ok := seen[key]
			if !ok {
				e = &entry{display: strings.TrimSpace(s), firstIdx: idx}
				seen[key] = e
				order = append(order, e)
			}
			e.count++
			if a.Grade.Score > e.maxScore {
				e.maxScore = a.Grade.Score
			}
			idx++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		if order[i].maxScore != order[j].maxScore {
			return order[i].maxScore > order[j].maxScore
		}
		return order[i].firstIdx < order[j].firstIdx
	})

	n := len(order)
	if n > 3 {
		n = 3
	}
	strengths := make([]string, 0, n)
	for _, e := range order[:n] {
		strengths = append(strengths, e.display)
	}
	return strengths
}

// improvements ranks what_missed themes by citation count.
func improvements(graded []Answer) []Improvement {
	type entry struct {
		display   string
		questions []int
		firstIdx  int
	}
	seen := map[string]*entry{}
	var order []*entry

	idx := 0
	for _, a := range graded {
		for _, m := range a.Grade.WhatMissed {
			key := fold(m)
			if key == "" {
				continue
			}
			e, ok := seen[key]
			if !ok {
				e = &entry{display: strings.TrimSpace(m), firstIdx: idx}
				seen[key] = e
				order = append(order, e)
			}
			if len(e.questions) == 0 || e.questions[len(e.questions)-1] != a.Index {
				e.questions = append(e.questions, a.Index)
			}
			idx++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if len(order[i].questions) != len(order[j].questions) {
			return len(order[i].questions) > len(order[j].questions)
		}
		return order[i].firstIdx < order[j].firstIdx
	})

	n := len(order)
	if n > 3 {
		n = 3
	}
	result := make([]Improvement, 0, n)
	for _, e := range order[:n] {
		result = append(result, Improvement{
			Theme:     e.display,
			Count:     len(e.questions),
			Questions: e.questions,
		})
	}
	return result
}

// fold normalizes a statement for exact-text matching: lower case, runs
// of whitespace collapsed.
func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
