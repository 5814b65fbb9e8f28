package domain

import (
	"math"
	"testing"
)

func TestListFilterNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         ListFilter
		wantNumber int
		wantSize   int
	}{
		{
			name:       "zero values get the default size",
			in:         ListFilter{},
			wantNumber: 0,
			wantSize:   DefaultPageSize,
		},
		{
			name:       "in-bounds values pass through",
			in:         ListFilter{PageNumber: 3, PageSize: 25},
			wantNumber: 3,
			wantSize:   25,
		},
		{
			name:       "negative page number clamps to zero",
			in:         ListFilter{PageNumber: -5, PageSize: 10},
			wantNumber: 0,
			wantSize:   10,
		},
		{
			name:       "oversized page clamps to the maximum",
			in:         ListFilter{PageSize: 5000},
			wantNumber: 0,
			wantSize:   MaxPageSize,
		},
		{
			name:       "huge page number clamps so the offset stays sane",
			in:         ListFilter{PageNumber: math.MaxInt, PageSize: MaxPageSize},
			wantNumber: MaxPageNumber,
			wantSize:   MaxPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.in.Normalized()
			if got.PageNumber != tt.wantNumber {
				t.Errorf("PageNumber = %d, want %d", got.PageNumber, tt.wantNumber)
			}
			if got.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", got.PageSize, tt.wantSize)
			}
			if got.PageNumber*got.PageSize < 0 {
				t.Errorf("offset overflows: %d * %d", got.PageNumber, got.PageSize)
			}
		})
	}
}
