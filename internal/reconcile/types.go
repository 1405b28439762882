package reconcile

// Participant is a session player as configured before the round.
type Participant struct {
	PlayerID string
	Name     string
	Aliases  []string
}

// Entry is a single row extracted from a scanned scorecard.
type Entry struct {
	Index int
	Name  string
}

// Assignment binds one participant to one scanned entry.
type Assignment struct {
	Participant int `json:"participant"`
	Entry       int `json:"entry"`
	Distance    int `json:"distance"`
}

// AliasCandidate is a scanned spelling that matched a participant but is not
// yet one of their stored names. The caller decides whether to persist it.
type AliasCandidate struct {
	PlayerID string `json:"player_id"`
	Alias    string `json:"alias"`
}

// Result is the outcome of reconciling a scan against a session roster.
type Result struct {
	Assignments     []Assignment     `json:"assignments"`
	Unassigned      []int            `json:"unassigned"`
	AliasCandidates []AliasCandidate `json:"alias_candidates,omitempty"`
}

// EntryFor returns the assignment for the given participant index, if any.
func (r Result) EntryFor(participant int) (Assignment, bool) {
	for _, a := range r.Assignments {
		if a.Participant == participant {
			return a, true
		}
	}
	return Assignment{}, false
}
