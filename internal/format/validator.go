// Package format decides which competitive formats and bet units are legal
// for a session before any scorecard is scanned. Settlement downstream trusts
// the combination stored on the session, so illegal pairs are blocked here.
package format

import "fmt"

// GameType is the wager game chosen at session creation.
type GameType string

const (
	StrokePlay GameType = "stroke_play"
	MatchPlay  GameType = "match_play"
	Nassau     GameType = "nassau"
	Skins      GameType = "skins"
)

// GameMode is how players compete within a game type.
type GameMode string

const (
	Individual GameMode = "individual"
	HeadToHead GameMode = "head_to_head"
	Teams      GameMode = "teams"
)

// BetUnit is what a single bet is denominated in.
type BetUnit string

const (
	BetWinner       BetUnit = "winner"
	BetStrokeMargin BetUnit = "stroke_margin"
	BetMatch        BetUnit = "match"
	BetHole         BetUnit = "hole"
	BetSkin         BetUnit = "skin"
)

// KnownGameType reports whether the string names a supported game type.
func KnownGameType(gt GameType) bool {
	switch gt {
	case StrokePlay, MatchPlay, Nassau, Skins:
		return true
	}
	return false
}

// Modes returns the ordered list of legal modes for a game type and player
// count. An empty list means the combination cannot form a session.
//
// Match play and nassau with three players are individual-only: there is no
// sensible 2-vs-1 partition, but the threesome is still allowed to play
// everyone-against-everyone. That asymmetry against the "2 or 4" rule is
// intentional.
func Modes(gameType GameType, playerCount int) []GameMode {
	switch gameType {
	case StrokePlay, Skins:
		return []GameMode{Individual}
	case MatchPlay, Nassau:
		switch playerCount {
		case 2:
			return []GameMode{HeadToHead}
		case 3:
			return []GameMode{Individual}
		case 4:
			return []GameMode{Teams, Individual}
		}
	}
	return nil
}

// ValidateSelection checks a full (gameType, playerCount, mode) pick. The
// error text is shown to the user verbatim when session creation is blocked.
func ValidateSelection(gameType GameType, playerCount int, mode GameMode) error {
	if !KnownGameType(gameType) {
		return fmt.Errorf("unknown game type %q", gameType)
	}
	legal := Modes(gameType, playerCount)
	if len(legal) == 0 {
		return fmt.Errorf("%s requires 2 or 4 players", gameType)
	}
	for _, m := range legal {
		if m == mode {
			return nil
		}
	}
	return fmt.Errorf("%s is not a legal mode for %s with %d players", mode, gameType, playerCount)
}

// BetUnits returns the bet units a game type supports, default first.
func BetUnits(gameType GameType) []BetUnit {
	switch gameType {
	case StrokePlay:
		return []BetUnit{BetWinner, BetStrokeMargin}
	case MatchPlay, Nassau:
		return []BetUnit{BetMatch, BetHole}
	case Skins:
		return []BetUnit{BetSkin}
	}
	return nil
}

// DefaultBetUnit is the unit a fresh session of this game type starts with.
func DefaultBetUnit(gameType GameType) BetUnit {
	units := BetUnits(gameType)
	if len(units) == 0 {
		return ""
	}
	return units[0]
}

// NormalizeBetUnit keeps the current unit if the game type still supports it
// and falls back to the type default otherwise. Switching e.g. from match
// play to stroke play must never leave a dangling "per hole" bet on the
// session.
func NormalizeBetUnit(gameType GameType, current BetUnit) BetUnit {
	for _, u := range BetUnits(gameType) {
		if u == current {
			return current
		}
	}
	return DefaultBetUnit(gameType)
}
