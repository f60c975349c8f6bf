package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical strings", a: "sales", b: "sales", want: 0},
		{name: "single insertion", a: "sals", b: "sales", want: 1},
		{name: "single substitution", a: "cat", b: "cut", want: 1},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "one empty", a: "", b: "abc", want: 3},
		{name: "completely different", a: "zzzzz", b: "sales", want: 5},
		{name: "multi-byte runes", a: "área", b: "area", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "marketing", b: "marketing", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one edit in five", a: "sals", b: "sales", want: 0.8},
		{name: "no overlap", a: "zz", b: "yy", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Confidence(tt.a, tt.b), 1e-9)
		})
	}
}

func TestConfidenceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"sales", "sals"},
		{"marketing", "mkt"},
		{"", "operations"},
		{"finanzas", "finanzas"},
	}

	for _, p := range pairs {
		assert.Equal(t, Confidence(p[0], p[1]), Confidence(p[1], p[0]),
			"confidence must be symmetric for %q/%q", p[0], p[1])
	}
}

func TestConfidenceRange(t *testing.T) {
	inputs := []string{"", "a", "ventas", "Zzzzz", "área de ventas"}
	for _, a := range inputs {
		for _, b := range inputs {
			score := Confidence(a, b)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"Sales", "Marketing", "Operations"}

	match, ok := BestMatch("sals", candidates)
	require.True(t, ok)
	assert.Equal(t, "Sales", match.Candidate)
	assert.InDelta(t, 0.8, match.Confidence, 1e-9)

	match, ok = BestMatch("MARKETING", candidates)
	require.True(t, ok)
	assert.Equal(t, "Marketing", match.Candidate)
	assert.Equal(t, 1.0, match.Confidence)

	_, ok = BestMatch("anything", nil)
	assert.False(t, ok)
}

func TestTopMatches(t *testing.T) {
	candidates := []string{"Sales", "Sale", "Marketing"}

	matches := TopMatches("sales", candidates, 2)
	require.Len(t, matches, 2)
	assert.Equal(t, "Sales", matches[0].Candidate)
	assert.Equal(t, "Sale", matches[1].Candidate)
	assert.Greater(t, matches[0].Confidence, matches[1].Confidence)
}
