package strokes

// PlayerHandicap is a player's authoritative handicap for the round, already
// resolved to the course handicap for the tee being played.
type PlayerHandicap struct {
	PlayerID string  `json:"player_id"`
	Handicap float64 `json:"handicap"`
}

// HoleDifficulty ranks a single hole. Hcp 1 is the hardest hole on the course.
type HoleDifficulty struct {
	Hole int `json:"hole"`
	Hcp  int `json:"hcp"`
}

// CourseDifficulty is the 18-hole difficulty ranking used to spread strokes.
// Approximated is set when no real course data was available and each hole's
// hcp defaulted to its own number; consumers should surface that, not hide it.
type CourseDifficulty struct {
	Holes        []HoleDifficulty `json:"holes"`
	Approximated bool             `json:"approximated"`
}

// Allocation is the derived per-player stroke distribution. It is recomputed
// whenever handicaps, tee or course change and is never persisted as a source
// of truth.
type Allocation struct {
	PlayerID           string `json:"player_id"`
	StrokesReceived    int    `json:"strokes_received"`
	SingleStrokeHoles  []int  `json:"single_stroke_holes"`
	DoubleStrokeHoles  []int  `json:"double_stroke_holes"`
	StrokeOnEveryHole  bool   `json:"stroke_on_every_hole"`
	DifficultyApproxed bool   `json:"difficulty_approximated"`
}
