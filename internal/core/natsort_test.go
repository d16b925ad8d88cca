package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueSorted(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "numbers sort numerically",
			in:   []string{"10", "2", "1"},
			want: []string{"1", "2", "10"},
		},
		{
			name: "numbers before words",
			in:   []string{"10", "Alpha", "2"},
			want: []string{"2", "10", "Alpha"},
		},
		{
			name: "trim, drop empty, dedupe",
			in:   []string{" A ", "A", "", "   ", "B", "A"},
			want: []string{"A", "B"},
		},
		{
			name: "embedded numbers compare by value",
			in:   []string{"Roll 10", "Roll 9", "Roll 1"},
			want: []string{"Roll 1", "Roll 9", "Roll 10"},
		},
		{
			name: "case insensitive ordering",
			in:   []string{"b", "A", "c"},
			want: []string{"A", "b", "c"},
		},
		{
			name: "decimals and negatives",
			in:   []string{"1.5", "-2", "1.25", "0"},
			want: []string{"-2", "0", "1.25", "1.5"},
		},
		{
			name: "roman and arabic class names",
			in:   []string{"XII", "IX", "X"},
			want: []string{"IX", "X", "XII"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueSorted(tt.in))
		})
	}
}

func TestCompareValues(t *testing.T) {
	assert.Negative(t, CompareValues("2", "10"))
	assert.Positive(t, CompareValues("10", "2"))
	assert.Zero(t, CompareValues("10", "10.0"))
	assert.Negative(t, CompareValues("a2", "a10"))
	assert.Negative(t, CompareValues("9", "Alpha"))
	assert.Negative(t, CompareValues("abc", "ABD"))
}

func TestParseNumber(t *testing.T) {
	for _, s := range []string{"1", "-3", "2.50", "1e3"} {
		_, ok := parseNumber(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"", "abc", "1a", "NaN", "Inf", "12 "} {
		_, ok := parseNumber(s)
		assert.False(t, ok, s)
	}
}

func TestUniqueSorted_Idempotent(t *testing.T) {
	in := []string{"10", "b", "2", "B", "a10", "a2"}
	first := UniqueSorted(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, UniqueSorted(in))
	}
}
