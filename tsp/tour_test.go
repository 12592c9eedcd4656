package tsp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourlab/tsp"
)

func TestValidatePermutation(t *testing.T) {
	cases := []struct {
		name string
		tour []int
		n    int
		want error
	}{
		{"valid", []int{2, 0, 1, 3}, 4, nil},
		{"empty", []int{}, 0, nil},
		{"short", []int{0, 1, 2}, 4, tsp.ErrDimensionMismatch},
		{"long", []int{0, 1, 2, 3, 4}, 4, tsp.ErrDimensionMismatch},
		{"duplicate", []int{0, 1, 1, 3}, 4, tsp.ErrNotPermutation},
		{"negative", []int{0, -1, 2, 3}, 4, tsp.ErrNotPermutation},
		{"too large", []int{0, 1, 2, 9}, 4, tsp.ErrNotPermutation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			Repeat(t, 3, func(t *testing.T) {
				err := tsp.ValidatePermutation(tc.tour, tc.n)
				if tc.want == nil {
					require.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, tc.want)
				require.True(t, errors.Is(err, tsp.ErrInvalidArgument))
			})
		})
	}
}

func TestCopyTour_Independent(t *testing.T) {
	src := []int{0, 1, 2}
	cp := tsp.CopyTour(src)
	cp[0] = 9
	require.Equal(t, []int{0, 1, 2}, src)
	require.Nil(t, tsp.CopyTour(nil))
}

func TestReverseTour(t *testing.T) {
	require.Equal(t, []int{3, 2, 1, 0}, tsp.ReverseTour([]int{0, 1, 2, 3}))
	require.Equal(t, []int{}, tsp.ReverseTour([]int{}))
	require.Equal(t, []int{7}, tsp.ReverseTour([]int{7}))
}
