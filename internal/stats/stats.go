// Package stats holds the small statistical helpers shared by every
// analytics component: quartile rank assignment and min-max
// normalization.
package stats

import "sort"

// AssignQuartiles maps each value to an integer score in 1..4 based on
// the percentile of its position among the sorted distinct values.
// Equal inputs always get equal scores. With reverse=true a lower
// value earns a higher score (used for recency, where fewer days since
// last interaction is better).
func AssignQuartiles(values []float64, reverse bool) []int {
	if len(values) == 0 {
		return []int{}
	}

	seen := make(map[float64]struct{}, len(values))
	distinct := make([]float64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			distinct = append(distinct, v)
		}
	}
	sort.Float64s(distinct)

	total := len(distinct) - 1
	if total < 1 {
		total = 1
	}

	rank := make(map[float64]int, len(distinct))
	for i, v := range distinct {
		percentile := float64(i) / float64(total)
		if reverse {
			percentile = 1 - percentile
		}
		switch {
		case percentile >= 0.75:
			rank[v] = 4
		case percentile >= 0.50:
			rank[v] = 3
		case percentile >= 0.25:
			rank[v] = 2
		default:
			rank[v] = 1
		}
	}

	scores := make([]int, len(values))
	for i, v := range values {
		scores[i] = rank[v]
	}
	return scores
}

// MinMaxNormalize rescales values into [0,1]. A constant input slice
// normalizes to all 0.5 so downstream weighted sums stay neutral.
func MinMaxNormalize(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]float64, len(values))
	spread := hi - lo
	if spread == 0 {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / spread
	}
	return out
}
