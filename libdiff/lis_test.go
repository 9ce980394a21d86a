package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestLongestIncreasingSubsequence(t *testing.T) {
	tests := []struct {
		in   []int
		want []int
	}{
		{nil, nil},
		{[]int{3}, []int{3}},
		{[]int{0, 1, 2}, []int{0, 1, 2}},
		{[]int{2, 1, 0}, []int{0}},
		{[]int{1, 0, 2}, []int{0, 2}},
		{[]int{3, 0, 1, 4, 2}, []int{0, 1, 2}},
		{[]int{1, 1, 1}, []int{1}},
	}
	for _, tt := range tests {
		got := LongestIncreasingSubsequence(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%v: (-want +got)\n%s", tt.in, diff)
		}
	}
}

// lisLength is the quadratic dynamic programming solution.
func lisLength(seq []int) int {
	best := 0
	lens := make([]int, len(seq))
	for i := range seq {
		lens[i] = 1
		for j := range i {
			if seq[j] < seq[i] && lens[j]+1 > lens[i] {
				lens[i] = lens[j] + 1
			}
		}
		best = max(best, lens[i])
	}
	return best
}

func TestLongestIncreasingSubsequenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seq := rapid.SliceOf(rapid.IntRange(0, 20)).Draw(t, "seq")
		got := LongestIncreasingSubsequence(seq)
		if len(got) != lisLength(seq) {
			t.Fatalf("got length %d, want %d", len(got), lisLength(seq))
		}
		j := 0
		for i, v := range got {
			if i > 0 && v <= got[i-1] {
				t.Fatalf("%v is not increasing", got)
			}
			for j < len(seq) && seq[j] != v {
				j++
			}
			if j == len(seq) {
				t.Fatalf("%v is not a subsequence of %v", got, seq)
			}
			j++
		}
	})
}
