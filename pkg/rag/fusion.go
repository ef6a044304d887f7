package rag

import "sort"

// rrfConstant dampens the advantage of the very top ranks.
const rrfConstant = 60.0

// RankedList is one retriever's output, best first.
type RankedList struct {
	Ids    []string
	Weight float64
}

// FuseRanks merges ranked lists with weighted reciprocal rank fusion.
// An id appearing in several lists accumulates score from each. Ties
// break on first appearance order across the lists, so the result is
// deterministic for identical inputs.
func FuseRanks(lists ...RankedList) []string {
	scores := map[string]float64{}
	firstSeen := map[string]int{}
	order := 0

	for _, list := range lists {
		for rank, id := range list.Ids {
			scores[id] += list.Weight / (rrfConstant + float64(rank+1))
			if _, ok := firstSeen[id]; !ok {
				firstSeen[id] = order
				order++
			}
		}
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return firstSeen[ids[i]] < firstSeen[ids[j]]
	})
	return ids
}
