// Package baseline compares recorded planned completion dates against actual ones.
package baseline

import (
	"fmt"

	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
)

// Classification buckets a deviation. Early and on-time finishes share a bucket.
type Classification int

const (
	// Pending means the milestone has not finished yet, so there is nothing to compare.
	Pending Classification = iota
	OnTimeOrEarly
	Late
)

func (c Classification) String() string {
	switch c {
	case OnTimeOrEarly:
		return "on time"
	case Late:
		return "late"
	default:
		return "not yet complete"
	}
}

// DeviationDays returns the number of days actual finished after planned.
// Negative means early. ok is false when actual is nil.
func DeviationDays(planned calendar.Date, actual *calendar.Date) (days int, ok bool) {
	if actual == nil || actual.IsZero() {
		return 0, false
	}
	return calendar.DaysBetween(planned, *actual), true
}

// Classify buckets a deviation returned by DeviationDays.
func Classify(days int, ok bool) Classification {
	switch {
	case !ok:
		return Pending
	case days > 0:
		return Late
	default:
		return OnTimeOrEarly
	}
}

// Label formats a deviation for display, e.g. "+5 days" or "-3 days".
func Label(days int, ok bool) string {
	switch {
	case !ok:
		return Pending.String()
	case days > 0:
		return fmt.Sprintf("+%d days", days)
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// Row is one line of a baseline comparison.
type Row struct {
	Baseline      domain.Baseline
	MilestoneName string
	Progress      int // current milestone progress
	Deviation     int
	HasDeviation  bool
	Class         Classification
}

// Compare builds a comparison row per baseline, in baseline order. Milestones are
// looked up by ID; a baseline whose milestone is missing keeps its ID as the name.
func Compare(baselines []domain.Baseline, milestones []domain.Milestone) []Row {
	byID := make(map[string]domain.Milestone, len(milestones))
	for _, m := range milestones {
		byID[m.ID] = m
	}

	rows := make([]Row, 0, len(baselines))
	for _, b := range baselines {
		dev, ok := DeviationDays(b.PlannedEnd, b.ActualEnd)
		row := Row{
			Baseline:      b,
			MilestoneName: b.MilestoneID,
			Deviation:     dev,
			HasDeviation:  ok,
			Class:         Classify(dev, ok),
		}
		if m, found := byID[b.MilestoneID]; found {
			row.MilestoneName = m.Name
			row.Progress = m.Progress
		}
		rows = append(rows, row)
	}
	return rows
}

// Summary counts rows per classification.
type Summary struct {
	OnTime  int
	Late    int
	Pending int
}

// Summarize tallies rows by classification.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch r.Class {
		case OnTimeOrEarly:
			s.OnTime++
		case Late:
			s.Late++
		default:
			s.Pending++
		}
	}
	return s
}
