package libdiff

import "sort"

// LongestIncreasingSubsequence returns a longest strictly increasing
// subsequence of seq, in increasing order.
func LongestIncreasingSubsequence(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	// tails[k] is the index in seq of the smallest tail of an increasing
	// subsequence of length k+1.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i, v := range seq {
		k := sort.Search(len(tails), func(j int) bool { return seq[tails[j]] >= v })
		prev[i] = -1
		if k > 0 {
			prev[i] = tails[k-1]
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}
	res := make([]int, len(tails))
	for i, j := len(tails)-1, tails[len(tails)-1]; i >= 0; i-- {
		res[i] = seq[j]
		j = prev[j]
	}
	return res
}
