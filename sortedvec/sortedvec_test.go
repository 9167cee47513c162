package sortedvec

import "testing"

func less(a, b int) bool { return a < b }

func TestUpperLowerBound(t *testing.T) {
	v := New(less)
	for _, n := range []int{0, 4, 4, 10, 20} {
		v.Append(n)
	}

	tests := []struct {
		query            int
		wantUpper, wantLower int
	}{
		{-1, 0, 0},
		{0, 1, 0},
		{4, 3, 1},
		{5, 3, 3},
		{20, 5, 4},
		{21, 5, 5},
	}
	for _, tc := range tests {
		if got := v.UpperBound(tc.query); got != tc.wantUpper {
			t.Errorf("UpperBound(%d) = %d, want %d", tc.query, got, tc.wantUpper)
		}
		if got := v.LowerBound(tc.query); got != tc.wantLower {
			t.Errorf("LowerBound(%d) = %d, want %d", tc.query, got, tc.wantLower)
		}
	}
}
