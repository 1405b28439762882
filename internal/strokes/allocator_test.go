package strokes

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oakmont is a realistic stroke index layout: hcp does not follow hole order.
func oakmont() CourseDifficulty {
	hcps := []int{5, 13, 1, 9, 17, 3, 15, 7, 11, 2, 14, 6, 18, 10, 4, 16, 8, 12}
	holes := make([]HoleDifficulty, len(hcps))
	for i, h := range hcps {
		holes[i] = HoleDifficulty{Hole: i + 1, Hcp: h}
	}
	return CourseDifficulty{Holes: holes}
}

func TestAllocateBaselineReceivesNothing(t *testing.T) {
	players := []PlayerHandicap{
		{PlayerID: "low", Handicap: 4.2},
		{PlayerID: "mid", Handicap: 12.8},
	}

	allocations, err := Allocate(players, oakmont())
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	low := allocations[0]
	assert.Equal(t, 0, low.StrokesReceived)
	assert.Empty(t, low.SingleStrokeHoles)
	assert.Empty(t, low.DoubleStrokeHoles)
	assert.False(t, low.StrokeOnEveryHole)
}

func TestAllocateHardestHolesFirst(t *testing.T) {
	players := []PlayerHandicap{
		{PlayerID: "scratch", Handicap: 0},
		{PlayerID: "mid", Handicap: 3},
	}

	allocations, err := Allocate(players, oakmont())
	require.NoError(t, err)

	mid := allocations[1]
	assert.Equal(t, 3, mid.StrokesReceived)
	// Hcp 1, 2, 3 live on holes 3, 10 and 6; output is sorted by hole number.
	assert.Equal(t, []int{3, 6, 10}, mid.SingleStrokeHoles)
	assert.Empty(t, mid.DoubleStrokeHoles)
}

func TestAllocateOverflowPast18(t *testing.T) {
	// Baseline 5 against 28 gives 23 strokes: one on every hole and a second
	// on the five hardest.
	players := []PlayerHandicap{
		{PlayerID: "low", Handicap: 5},
		{PlayerID: "high", Handicap: 28},
	}

	allocations, err := Allocate(players, oakmont())
	require.NoError(t, err)

	high := allocations[1]
	assert.Equal(t, 23, high.StrokesReceived)
	assert.True(t, high.StrokeOnEveryHole)
	assert.Empty(t, high.SingleStrokeHoles)
	// Hcp 1-5 are holes 3, 10, 6, 15, 1.
	assert.Equal(t, []int{1, 3, 6, 10, 15}, high.DoubleStrokeHoles)
}

func TestAllocateRoundsHalfUp(t *testing.T) {
	tests := []struct {
		name string
		diff float64
		want int
	}{
		{"exact half rounds up", 0.5, 1},
		{"just under half rounds down", 0.49, 0},
		{"nine and a half", 9.5, 10},
		{"negative clamps to zero", -2.3, 0},
		{"whole number untouched", 7.0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundHalfUp(tt.diff))
		})
	}
}

func TestAllocateTieBrokenByHoleNumber(t *testing.T) {
	// Two holes share hcp 1; the lower hole number wins the stroke.
	course := ApproximateDifficulty()
	course.Holes[0].Hcp = 1
	course.Holes[4].Hcp = 1
	course.Approximated = false

	players := []PlayerHandicap{
		{PlayerID: "a", Handicap: 0},
		{PlayerID: "b", Handicap: 1},
	}

	allocations, err := Allocate(players, course)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, allocations[1].SingleStrokeHoles)
}

func TestAllocateApproximatedDifficultyIsFlagged(t *testing.T) {
	course := ApproximateDifficulty()
	require.True(t, course.Approximated)

	players := []PlayerHandicap{
		{PlayerID: "a", Handicap: 2},
		{PlayerID: "b", Handicap: 6},
	}
	allocations, err := Allocate(players, course)
	require.NoError(t, err)
	for _, a := range allocations {
		assert.True(t, a.DifficultyApproxed)
	}
}

func TestAllocateCapsAtTwoStrokesPerHole(t *testing.T) {
	players := []PlayerHandicap{
		{PlayerID: "plus", Handicap: -4},
		{PlayerID: "beginner", Handicap: 54},
	}

	allocations, err := Allocate(players, oakmont())
	require.NoError(t, err)

	beginner := allocations[1]
	assert.Equal(t, 36, beginner.StrokesReceived)
	assert.True(t, beginner.StrokeOnEveryHole)
	assert.Len(t, beginner.DoubleStrokeHoles, 18)
}

func TestAllocateRejectsShortCourse(t *testing.T) {
	players := []PlayerHandicap{{PlayerID: "a", Handicap: 2}}
	_, err := Allocate(players, CourseDifficulty{Holes: []HoleDifficulty{{Hole: 1, Hcp: 1}}})
	assert.Error(t, err)
}

func TestAllocateConservationProperty(t *testing.T) {
	// For random groups and handicaps, every player's flagged holes must
	// encode exactly strokesReceived strokes, and the group minimum must
	// always come out empty-handed.
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		groupSize := 2 + rng.Intn(7)
		players := make([]PlayerHandicap, groupSize)
		for j := range players {
			players[j] = PlayerHandicap{
				PlayerID: string(rune('a' + j)),
				Handicap: rng.Float64() * 54,
			}
		}

		course := oakmont()
		if i%2 == 0 {
			course = ApproximateDifficulty()
		}

		allocations, err := Allocate(players, course)
		require.NoError(t, err)

		minIdx := 0
		for j, p := range players {
			if p.Handicap < players[minIdx].Handicap {
				minIdx = j
			}
		}
		assert.Equal(t, 0, allocations[minIdx].StrokesReceived)
		assert.Empty(t, allocations[minIdx].SingleStrokeHoles)

		for _, a := range allocations {
			total := len(a.SingleStrokeHoles) + len(a.DoubleStrokeHoles)
			if a.StrokeOnEveryHole {
				total += 18
			}
			assert.Equal(t, a.StrokesReceived, total,
				"allocation must conserve strokes received")
			assert.LessOrEqual(t, len(a.DoubleStrokeHoles), 18)
			if a.StrokeOnEveryHole {
				assert.Empty(t, a.SingleStrokeHoles)
			}
		}
	}
}

func TestValidateHandicap(t *testing.T) {
	assert.NoError(t, ValidateHandicap(0))
	assert.NoError(t, ValidateHandicap(-10))
	assert.NoError(t, ValidateHandicap(54))
	assert.Error(t, ValidateHandicap(-10.1))
	assert.Error(t, ValidateHandicap(54.5))
}
