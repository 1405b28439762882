package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical", "Alex", "Alex", 0},
		{"case folded", "ALEX", "alex", 0},
		{"trimmed", "  Alex ", "Alex", 0},
		{"single substitution", "Jon", "Jan", 1},
		{"ocr misread", "Michael", "Miguel", 3},
		{"transposition costs two", "Karl", "Kral", 2},
		{"empty against name", "", "Bo", 2},
		{"both empty", "", "", 0},
		{"insertion", "Tom", "Thom", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a), "distance should be symmetric")
		})
	}
}

func TestBestDistanceUsesAliases(t *testing.T) {
	p := Participant{
		PlayerID: "p1",
		Name:     "Michael",
		Aliases:  []string{"Mike", "Mickey"},
	}

	// "Mike" is a much better match than the primary name.
	assert.Equal(t, 0, bestDistance(p, "mike"))
	assert.Equal(t, 1, bestDistance(p, "Mika"))
	assert.Equal(t, 0, bestDistance(p, "Michael"))
}
