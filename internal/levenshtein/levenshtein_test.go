package levenshtein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"aaaa", "aaaa", 0},
		{"aaaa", "aaab", 1},
		{"aaaa", "a", 3},
		{"a", "aaaa", 3},
		{"", "", 0},
		{"", "hello", 5},
		{"hello", "", 5},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"Hello", "hello", 1},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Hello World!", "Hxllo Wrld"},
		{"abc", "yabd"},
		{"", "xyz"},
		{"sunday", "saturday"},
	}
	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestDistance_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "Hello World!", "日本語"} {
		assert.Zero(t, Distance(s, s))
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	words := []string{"", "a", "ab", "abc", "bca", "Hello", "World", "hold"}
	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				assert.LessOrEqual(t, Distance(a, c), Distance(a, b)+Distance(b, c))
			}
		}
	}
}
