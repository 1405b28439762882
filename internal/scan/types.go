// Package scan holds the wire contract produced by the external OCR service.
// The service is a black box to us; these types are its output, not ours to
// reinterpret.
package scan

// Result is one processed scorecard image.
type Result struct {
	SessionID  string          `json:"session_id"`
	CourseName string          `json:"course_name"`
	Date       string          `json:"date"`
	Players    []ScannedPlayer `json:"players"`
}

// ScannedPlayer is one handwriting row on the card.
type ScannedPlayer struct {
	Name           string      `json:"name"`
	NameConfidence float64     `json:"name_confidence"`
	Scores         []HoleScore `json:"scores"`
}

// HoleScore is a single cell. Score is nil when the OCR could not read the
// cell at all; those must be dropped before any allocation math sees them.
type HoleScore struct {
	Hole       int     `json:"hole"`
	Score      *int    `json:"score"`
	Confidence float64 `json:"confidence"`
}

// CleanScores returns the readable, in-range scores for a scanned player.
func (p ScannedPlayer) CleanScores() []HoleScore {
	out := make([]HoleScore, 0, len(p.Scores))
	for _, s := range p.Scores {
		if s.Score == nil || s.Hole < 1 || s.Hole > 18 {
			continue
		}
		out = append(out, s)
	}
	return out
}
