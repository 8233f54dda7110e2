// Package tastematch computes a 0-100 similarity score between two users'
// ranked lists, restricted to the items both have ranked.
//
// Items are matched by canonical identity so equivalent editions across
// platforms count as the same game. With two or more shared items the score
// is Spearman's rank correlation over the shared subset's relative ranks,
// mapped onto [0,100]. A single shared item has zero variance, so a linear
// rank-distance fallback is used instead. No shared items is "no signal"
// and scores 0.
package tastematch

import "sort"

const (
	maxScore = 100.0

	// minSharedForSpearman is the smallest shared subset with defined
	// rank variance.
	minSharedForSpearman = 2
)

// Entry is one ranked row as seen by the calculator.
type Entry struct {
	ItemID      string
	CanonicalID string // empty when the catalog has no canonical id
	Position    int    // 1-based rank position in the full list
}

// canonical returns the matching identity for an entry.
func (e Entry) canonical() string {
	if e.CanonicalID != "" {
		return e.CanonicalID
	}
	return e.ItemID
}

// sharedPair carries both users' positions for one shared item.
type sharedPair struct {
	mine   int
	theirs int
}

// Score computes the taste match between two ranked lists. It is a pure
// function: for a fixed pair of lists the result is exact and reproducible.
func Score(mine, theirs []Entry) float64 {
	shared := sharedPairs(mine, theirs)

	switch {
	case len(shared) == 0:
		return 0
	case len(shared) < minSharedForSpearman:
		return singleItemFallback(shared[0], len(mine), len(theirs))
	default:
		return spearman(shared)
	}
}

// SharedCount returns how many items both lists rank.
func SharedCount(mine, theirs []Entry) int {
	return len(sharedPairs(mine, theirs))
}

// sharedPairs matches entries across both lists by canonical identity,
// in the first list's rank order.
func sharedPairs(mine, theirs []Entry) []sharedPair {
	theirPos := make(map[string]int, len(theirs))
	for _, e := range theirs {
		theirPos[e.canonical()] = e.Position
	}

	var shared []sharedPair
	for _, e := range mine {
		if pos, ok := theirPos[e.canonical()]; ok {
			shared = append(shared, sharedPair{mine: e.Position, theirs: pos})
		}
	}
	return shared
}

// singleItemFallback scores a single shared item by how far apart the two
// absolute rank positions sit, relative to the longer full list.
func singleItemFallback(pair sharedPair, myLen, theirLen int) float64 {
	longest := myLen
	if theirLen > longest {
		longest = theirLen
	}
	if longest == 0 {
		return maxScore
	}

	d := pair.mine - pair.theirs
	if d < 0 {
		d = -d
	}
	return clamp(maxScore * (1 - float64(d)/float64(longest)))
}

// spearman re-ranks the shared items relative to each other within each
// list, computes rho over those relative ranks, and maps [-1,1] to [0,100].
// Relative ranks are a permutation of 1..n, so ties cannot occur.
func spearman(shared []sharedPair) float64 {
	n := len(shared)

	myRank := relativeRanks(shared, func(p sharedPair) int { return p.mine })
	theirRank := relativeRanks(shared, func(p sharedPair) int { return p.theirs })

	var sumSq float64
	for i := 0; i < n; i++ {
		d := float64(myRank[i] - theirRank[i])
		sumSq += d * d
	}

	nf := float64(n)
	rho := 1 - (6*sumSq)/(nf*(nf*nf-1))
	return clamp((rho + 1) / 2 * maxScore)
}

// relativeRanks assigns 1..n to the shared items based on one list's
// existing order, ignoring non-shared items.
func relativeRanks(shared []sharedPair, pos func(sharedPair) int) []int {
	idx := make([]int, len(shared))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return pos(shared[idx[a]]) < pos(shared[idx[b]])
	})

	ranks := make([]int, len(shared))
	for rank, i := range idx {
		ranks[i] = rank + 1
	}
	return ranks
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}
