package reconcile

import "sort"

// candidate is one cell of the participant/entry distance matrix.
type candidate struct {
	participant int
	entry       int
	distance    int
}

// Solve matches scanned scorecard rows to session participants.
//
// It builds the full NxM distance matrix, flattens it, and commits pairs in
// ascending distance order, skipping any pair whose participant or entry is
// already claimed. This is a global best-first greedy: row-by-row nearest
// neighbour can starve a participant whose only good match was claimed by a
// worse-fitting rival earlier in the list. Greedy is not guaranteed
// distance-minimal in adversarial cases, but N and M are a foursome in
// practice and manual re-cycling (Cycle) covers the rest.
//
// Participants left over when M < N are reported in Unassigned and must be
// resolved manually by the caller; they never silently receive scores.
func Solve(participants []Participant, entries []Entry) Result {
	cands := make([]candidate, 0, len(participants)*len(entries))
	for pi, p := range participants {
		for ei, e := range entries {
			cands = append(cands, candidate{
				participant: pi,
				entry:       ei,
				distance:    bestDistance(p, e.Name),
			})
		}
	}

	// Ties break by participant order, then entry order, for determinism.
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.participant != b.participant {
			return a.participant < b.participant
		}
		return a.entry < b.entry
	})

	claimedParticipant := make(map[int]bool, len(participants))
	claimedEntry := make(map[int]bool, len(entries))

	var result Result
	for _, c := range cands {
		if claimedParticipant[c.participant] || claimedEntry[c.entry] {
			continue
		}
		claimedParticipant[c.participant] = true
		claimedEntry[c.entry] = true
		result.Assignments = append(result.Assignments, Assignment{
			Participant: c.participant,
			Entry:       c.entry,
			Distance:    c.distance,
		})

		if c.distance > 0 {
			p := participants[c.participant]
			if alias := aliasCandidate(p, entries[c.entry].Name); alias != "" {
				result.AliasCandidates = append(result.AliasCandidates, AliasCandidate{
					PlayerID: p.PlayerID,
					Alias:    alias,
				})
			}
		}
	}

	for pi := range participants {
		if !claimedParticipant[pi] {
			result.Unassigned = append(result.Unassigned, pi)
		}
	}

	sort.Slice(result.Assignments, func(i, j int) bool {
		return result.Assignments[i].Participant < result.Assignments[j].Participant
	})
	return result
}

// aliasCandidate returns the scanned name if it is not already one of the
// participant's stored names, or "" when there is nothing new to persist.
func aliasCandidate(p Participant, scanned string) string {
	name := normalize(scanned)
	if name == "" || name == normalize(p.Name) {
		return ""
	}
	for _, alias := range p.Aliases {
		if name == normalize(alias) {
			return ""
		}
	}
	return scanned
}

// Cycle advances a participant to the next scanned entry in a fixed rotation
// and returns the updated participant-to-entry mapping. If the target entry
// is held by another participant, the two swap entries, so a participant who
// already had scores never ends up empty after the move. The input map is
// not modified.
func Cycle(assigned map[int]int, participant, entryCount int) map[int]int {
	next := make(map[int]int, len(assigned))
	for k, v := range assigned {
		next[k] = v
	}
	if entryCount == 0 {
		return next
	}

	target := 0
	current, hasCurrent := next[participant]
	if hasCurrent {
		target = (current + 1) % entryCount
	}

	for other, entry := range next {
		if other == participant || entry != target {
			continue
		}
		if hasCurrent {
			next[other] = current
		} else {
			delete(next, other)
		}
		break
	}
	next[participant] = target
	return next
}
