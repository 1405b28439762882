package strokes

import (
	"fmt"
	"math"
	"sort"
)

const holesPerRound = 18

// Handicap bounds enforced at the edit boundary. A plus-handicap below -10 or
// an index above the WHS ceiling of 54 is an input error, not a real golfer.
const (
	MinHandicap = -10
	MaxHandicap = 54
)

// ValidateHandicap rejects out-of-range handicap edits. Callers keep the
// previous value when this fails.
func ValidateHandicap(value float64) error {
	if value < MinHandicap || value > MaxHandicap {
		return fmt.Errorf("handicap %.1f out of range [%d, %d]", value, MinHandicap, MaxHandicap)
	}
	return nil
}

// ApproximateDifficulty builds the fallback ranking where each hole's hcp is
// its own number. The Approximated flag distinguishes it from real course
// data; the resulting strokes are merely approximate, not wrong enough to
// fail the round.
func ApproximateDifficulty() CourseDifficulty {
	holes := make([]HoleDifficulty, holesPerRound)
	for i := range holes {
		holes[i] = HoleDifficulty{Hole: i + 1, Hcp: i + 1}
	}
	return CourseDifficulty{Holes: holes, Approximated: true}
}

// Allocate distributes extra strokes for a playing group.
//
// The lowest handicap in the group is the baseline and receives nothing.
// Everyone else receives round-half-up(handicap - baseline) strokes, placed
// on the hardest holes first (ascending hcp, ties broken by ascending hole
// number). More than 18 strokes means a stroke on every hole plus a second
// stroke on the hardest remainder. Returned hole lists are sorted by hole
// number regardless of the internal difficulty ordering.
func Allocate(players []PlayerHandicap, course CourseDifficulty) ([]Allocation, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("no players to allocate for")
	}
	if len(course.Holes) != holesPerRound {
		return nil, fmt.Errorf("course difficulty has %d holes, want %d", len(course.Holes), holesPerRound)
	}

	byDifficulty := make([]HoleDifficulty, holesPerRound)
	copy(byDifficulty, course.Holes)
	sort.Slice(byDifficulty, func(i, j int) bool {
		if byDifficulty[i].Hcp != byDifficulty[j].Hcp {
			return byDifficulty[i].Hcp < byDifficulty[j].Hcp
		}
		return byDifficulty[i].Hole < byDifficulty[j].Hole
	})

	baseline := players[0].Handicap
	for _, p := range players[1:] {
		if p.Handicap < baseline {
			baseline = p.Handicap
		}
	}

	allocations := make([]Allocation, 0, len(players))
	for _, p := range players {
		a := Allocation{
			PlayerID:           p.PlayerID,
			StrokesReceived:    roundHalfUp(p.Handicap - baseline),
			DifficultyApproxed: course.Approximated,
		}
		// Two strokes per hole is the ceiling the card can encode.
		if a.StrokesReceived > 2*holesPerRound {
			a.StrokesReceived = 2 * holesPerRound
		}

		switch {
		case a.StrokesReceived <= 0:
			a.StrokesReceived = 0 // scratch reference for this group
		case a.StrokesReceived <= holesPerRound:
			for _, h := range byDifficulty[:a.StrokesReceived] {
				a.SingleStrokeHoles = append(a.SingleStrokeHoles, h.Hole)
			}
		default:
			a.StrokeOnEveryHole = true
			for _, h := range byDifficulty[:a.StrokesReceived-holesPerRound] {
				a.DoubleStrokeHoles = append(a.DoubleStrokeHoles, h.Hole)
			}
		}

		sort.Ints(a.SingleStrokeHoles)
		sort.Ints(a.DoubleStrokeHoles)
		allocations = append(allocations, a)
	}
	return allocations, nil
}

// roundHalfUp rounds to the nearest integer with .5 going up, never below
// zero. math.Round would also round half away from zero, but the differential
// is clamped non-negative first so the two agree; Floor(x+0.5) keeps the
// half-up rule explicit.
func roundHalfUp(diff float64) int {
	if diff <= 0 {
		return 0
	}
	return int(math.Floor(diff + 0.5))
}
