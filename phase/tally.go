// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package phase

import "sort"

// Count holds a submission's vote total for ranking.
type Count struct {
	SubmissionID string
	Votes        int
}

// Tally groups ballots by submission. Each element of votes is the
// submission ID chosen by one ballot.
func Tally(votes []string) map[string]int {
	counts := make(map[string]int, len(votes))
	for _, id := range votes {
		counts[id]++
	}
	return counts
}

// Rank orders vote counts descending; equal counts fall back to
// submission ID so the order is stable across calls.
func Rank(counts map[string]int) []Count {
	ranked := make([]Count, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, Count{SubmissionID: id, Votes: n})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Votes != ranked[j].Votes {
			return ranked[i].Votes > ranked[j].Votes
		}
		return ranked[i].SubmissionID < ranked[j].SubmissionID
	})

	return ranked
}

// Leaders returns every submission sharing the maximum vote count.
// One leader is an outright winner; more than one is a tie, which
// callers must present as such rather than picking silently. Zero
// votes yields no leaders.
func Leaders(ranked []Count) []string {
	if len(ranked) == 0 {
		return nil
	}

	max := ranked[0].Votes
	var leaders []string
	for _, c := range ranked {
		if c.Votes != max {
			break
		}
		leaders = append(leaders, c.SubmissionID)
	}
	return leaders
}
