// Package delta diffs two coordination extract snapshots.
package delta

import (
	"strings"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

// Actions carried in a change notification.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// Change is one coordination database change, with the band-plan findings
// gathered for it.
type Change struct {
	Action   string
	Channel  domain.Channel
	Comments []string
}

// Report lists the channels added and removed between two snapshots, each
// sorted for deterministic output.
type Report struct {
	Added   []domain.Channel
	Removed []domain.Channel
}

// Changed reports whether anything differs between the snapshots.
func (r Report) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// snapshotKey is wider than Channel identity on purpose: a coordination
// whose call sign or access data changed is a removal plus an addition,
// which is exactly what a change notification should say.
func snapshotKey(c domain.Channel) string {
	return strings.Join([]string{
		c.Call,
		c.Key().String(),
		c.InputTone.String(),
		c.InputCode,
		c.DMRColorCode,
	}, "|")
}

// Diff compares a previous snapshot with the latest one.
func Diff(previous, latest []domain.Channel) Report {
	prev := index(previous)
	next := index(latest)

	var report Report
	for key, ch := range next {
		if _, ok := prev[key]; !ok {
			report.Added = append(report.Added, ch)
		}
	}
	for key, ch := range prev {
		if _, ok := next[key]; !ok {
			report.Removed = append(report.Removed, ch)
		}
	}

	domain.Sort(report.Added)
	domain.Sort(report.Removed)
	return report
}

func index(channels []domain.Channel) map[string]domain.Channel {
	m := make(map[string]domain.Channel, len(channels))
	for _, c := range channels {
		m[snapshotKey(c)] = c
	}
	return m
}
