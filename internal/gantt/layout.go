// Package gantt lays out a project's milestones and tasks on a shared proportional
// timeline. The layout is expressed in percentages of the timeline width so any
// renderer (terminal columns, HTML, …) can scale it to its own canvas.
//
// The visible window always spans whole calendar months: from the first day of the
// month holding the earliest milestone start to the last day of the month holding
// the latest milestone due date. Tasks are placed inside their project's window and
// never widen it.
package gantt

import (
	"fmt"
	"math"
	"time"

	"github.com/robby/projecthub/internal/calendar"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/progress"
)

// MinBarWidth is the narrowest bar, in percent, so degenerate ranges stay visible.
const MinBarWidth = 0.5

// Kind distinguishes milestone rows from task rows.
type Kind int

const (
	KindMilestone Kind = iota
	KindTask
)

// MonthBucket is one month column of the timeline header.
type MonthBucket struct {
	Year  int
	Month time.Month
	Days  int     // full length of the month
	Width float64 // Days / TotalDays * 100
}

// Label returns a short header label such as "Mar 2026".
func (b MonthBucket) Label() string {
	return fmt.Sprintf("%s %d", b.Month.String()[:3], b.Year)
}

// Bar is the placement of one dated item on the timeline.
type Bar struct {
	ItemID   string
	ParentID string // owning milestone for task bars, empty for milestones
	Kind     Kind
	Label    string
	Status   string
	Start    calendar.Date
	Due      calendar.Date
	Left     float64 // percent offset from the window start, >= 0
	Width    float64 // percent of the timeline, >= MinBarWidth
	Fill     int     // progress overlay, 0..100
}

// Layout is the computed timeline of one project.
type Layout struct {
	WindowStart calendar.Date
	WindowEnd   calendar.Date
	TotalDays   int
	Months      []MonthBucket
	Bars        []Bar // each milestone followed by its tasks

	TodayOffset float64 // valid only when HasToday is true
	HasToday    bool
}

// Compute builds the layout for a project. tasks maps milestone ID to that milestone's
// tasks; milestones without an entry simply have no task rows. today is evaluated once
// so every row shares the same marker position.
func Compute(project domain.Project, milestones []domain.Milestone, tasks map[string][]domain.Task, today calendar.Date) Layout {
	start, end := Window(project, milestones)

	l := Layout{
		WindowStart: start,
		WindowEnd:   end,
		TotalDays:   calendar.DaysBetween(start, end) + 1,
	}
	l.Months = l.monthBuckets()

	if today.Within(start, end) {
		l.TodayOffset = l.offset(today)
		l.HasToday = true
	}

	for _, m := range milestones {
		bar := l.place(m.StartDate, m.DueDate)
		bar.ItemID = m.ID
		bar.Kind = KindMilestone
		bar.Label = m.Name
		bar.Status = string(m.Status)
		bar.Fill = clampPercent(m.Progress)
		l.Bars = append(l.Bars, bar)

		for _, t := range tasks[m.ID] {
			tb := l.place(t.StartDate, t.DueDate)
			tb.ItemID = t.ID
			tb.ParentID = m.ID
			tb.Kind = KindTask
			tb.Label = t.Title
			tb.Status = string(t.Status)
			tb.Fill = progress.TaskProgress(t)
			l.Bars = append(l.Bars, tb)
		}
	}

	return l
}

// Window returns the visible date range for a project. Without milestones the
// window is derived from the project's own start and end dates. A reversed range
// collapses to the start month so the window is never empty.
func Window(project domain.Project, milestones []domain.Milestone) (start, end calendar.Date) {
	if len(milestones) == 0 {
		start, end = project.StartDate, project.EndDate
	} else {
		start, end = milestones[0].StartDate, milestones[0].DueDate
		for _, m := range milestones[1:] {
			start = calendar.Min(start, m.StartDate)
			end = calendar.Max(end, m.DueDate)
		}
	}

	start = start.FirstOfMonth()
	end = end.LastOfMonth()
	if end.Before(start) {
		end = start.LastOfMonth()
	}
	return start, end
}

// Place positions an arbitrary date range inside the layout's window.
func (l Layout) Place(start, due calendar.Date) (left, width float64) {
	b := l.place(start, due)
	return b.Left, b.Width
}

// Offset returns the percent position of d, and false when d is outside the window.
func (l Layout) Offset(d calendar.Date) (float64, bool) {
	if !d.Within(l.WindowStart, l.WindowEnd) {
		return 0, false
	}
	return l.offset(d), true
}

func (l Layout) offset(d calendar.Date) float64 {
	return float64(calendar.DaysBetween(l.WindowStart, d)) / float64(l.TotalDays) * 100
}

// place clamps both ends of the range into the window and converts it to percentages.
// Items entirely outside the window are pinned to the nearest edge instead of dropped.
func (l Layout) place(start, due calendar.Date) Bar {
	cs := clampDate(start, l.WindowStart, l.WindowEnd)
	ce := clampDate(due, l.WindowStart, l.WindowEnd)

	left := math.Max(0, l.offset(cs))
	width := float64(calendar.DaysBetween(cs, ce)+1) / float64(l.TotalDays) * 100
	width = math.Min(100, math.Max(MinBarWidth, width))

	// The width floor can push a bar near the right edge past 100%.
	if left+width > 100 {
		left = 100 - width
	}

	return Bar{Start: start, Due: due, Left: left, Width: width}
}

func (l Layout) monthBuckets() []MonthBucket {
	var months []MonthBucket
	last := l.WindowEnd.FirstOfMonth()
	for cur := l.WindowStart.FirstOfMonth(); !cur.After(last); cur = cur.NextMonth() {
		days := calendar.DaysInMonth(cur.Year, cur.Month)
		months = append(months, MonthBucket{
			Year:  cur.Year,
			Month: cur.Month,
			Days:  days,
			Width: float64(days) / float64(l.TotalDays) * 100,
		})
	}
	return months
}

func clampDate(d, lo, hi calendar.Date) calendar.Date {
	return calendar.Min(calendar.Max(d, lo), hi)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
