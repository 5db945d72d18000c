// Package crossref reconciles the authoritative coordination set against an
// externally sourced repeater directory.
package crossref

import (
	"sort"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

// DefaultRadiusKM is the proximity threshold for candidate matches.
const DefaultRadiusKM = 80.0

// Status is the outcome of matching one authoritative channel.
type Status string

const (
	// StatusFound is an exact frequency-pair match.
	StatusFound Status = "FOUND"
	// StatusCandidates means no exact match, but nearby directory entries
	// on the same output frequency need manual review.
	StatusCandidates Status = "CANDIDATES"
	// StatusNotFound is a normal, reportable outcome, not an error.
	StatusNotFound Status = "NOT FOUND"
)

// Candidate is a directory entry close enough to be the same machine.
type Candidate struct {
	Channel    domain.Channel
	DistanceKM float64
}

// Result is the match verdict for one authoritative channel.
type Result struct {
	Channel    domain.Channel
	Status     Status
	Candidates []Candidate
}

// Matcher reconciles channels under a distance tolerance.
type Matcher struct {
	radiusKM float64
}

// NewMatcher builds a matcher; radiusKM <= 0 selects DefaultRadiusKM.
func NewMatcher(radiusKM float64) *Matcher {
	if radiusKM <= 0 {
		radiusKM = DefaultRadiusKM
	}
	return &Matcher{radiusKM: radiusKM}
}

// Match scans the directory for one authoritative channel. An exact
// frequency-pair match short-circuits as FOUND. Otherwise every directory
// entry within the radius sharing the same output frequency is collected
// as a candidate, sorted by ascending distance; call signs, coordinates,
// or tone data may legitimately differ between sources, so candidates are
// a review set, not an automatic match.
func (m *Matcher) Match(authoritative domain.Channel, directory []domain.Channel) Result {
	result := Result{Channel: authoritative, Status: StatusNotFound}

	for _, entry := range directory {
		if authoritative.Equal(entry) {
			return Result{Channel: authoritative, Status: StatusFound}
		}
	}

	for _, entry := range directory {
		if !entry.Output.Equal(authoritative.Output) {
			continue
		}
		d := authoritative.Distance(entry.Latitude, entry.Longitude)
		if d <= m.radiusKM {
			result.Candidates = append(result.Candidates, Candidate{Channel: entry, DistanceKM: d})
		}
	}

	if len(result.Candidates) > 0 {
		result.Status = StatusCandidates
		sort.Slice(result.Candidates, func(i, j int) bool {
			return result.Candidates[i].DistanceKM < result.Candidates[j].DistanceKM
		})
	}
	return result
}

// MatchAll matches every authoritative channel in order.
func (m *Matcher) MatchAll(authoritative, directory []domain.Channel) []Result {
	results := make([]Result, 0, len(authoritative))
	for _, ch := range authoritative {
		results = append(results, m.Match(ch, directory))
	}
	return results
}
