// Package stats computes read-only aggregates over analysis sessions.
package stats

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"commentwatch/internal/session"
)

// RuleCount pairs a triggered rule with how often it fired.
type RuleCount struct {
	Rule  string
	Count int
}

// Summary aggregates scored comments across one or more sessions.
type Summary struct {
	Sessions        int
	Comments        int
	ByStatus        map[string]int
	MeanProbability float64
	MaxProbability  float64
	TopRules        []RuleCount
}

// Summarize folds the given sessions into one summary. Probability figures
// cover every record, degraded error rows included; an empty input yields a
// zero summary rather than dividing by zero.
func Summarize(sessions ...session.Session) Summary {
	summary := Summary{
		Sessions: len(sessions),
		ByStatus: make(map[string]int),
	}

	ruleCounts := make(map[string]int)
	var probabilitySum float64

	for _, sess := range sessions {
		for _, record := range sess.Results {
			summary.Comments++
			summary.ByStatus[record.Status]++
			probabilitySum += record.Probability
			if record.Probability > summary.MaxProbability {
				summary.MaxProbability = record.Probability
			}
			if record.Rule != "" {
				ruleCounts[record.Rule]++
			}
		}
	}

	if summary.Comments > 0 {
		summary.MeanProbability = probabilitySum / float64(summary.Comments)
	}

	summary.TopRules = make([]RuleCount, 0, len(ruleCounts))
	for rule, count := range ruleCounts {
		summary.TopRules = append(summary.TopRules, RuleCount{Rule: rule, Count: count})
	}
	sort.Slice(summary.TopRules, func(i, j int) bool {
		if summary.TopRules[i].Count == summary.TopRules[j].Count {
			return summary.TopRules[i].Rule < summary.TopRules[j].Rule
		}
		return summary.TopRules[i].Count > summary.TopRules[j].Count
	})
	return summary
}

var titleCaser = cases.Title(language.English)

// DisplayLabel renders a worker-supplied rule or status label for tables.
// The scoring script emits lowercase rule names ("insult", "harassment");
// display uses English title case.
func DisplayLabel(label string) string {
	if label == "" {
		return ""
	}
	return titleCaser.String(label)
}
