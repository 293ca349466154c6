package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/report"
	"github.com/robby/projecthub/internal/session"
	"github.com/robby/projecthub/internal/store"
)

// NewDelayRequestsModel lists the delay requests visible to the session.
func NewDelayRequestsModel(s *store.Store, sess session.Session) PageModel {
	return newPageModel("Delay Requests", func(width int) string {
		requests := session.VisibleDelayRequests(sess, s.DelayRequests())
		if len(requests) == 0 {
			return dimStyle.Render("No delay requests")
		}

		var b strings.Builder
		for i, r := range requests {
			if i > 0 {
				b.WriteString("\n")
			}
			l := report.DelayLineFor(s, r)
			b.WriteString(delayStatusStyle(r.Status).Render(fmt.Sprintf("[%s]", r.Status)))
			b.WriteString(" ")
			b.WriteString(detailTitleStyle.Render(l.Task))
			b.WriteString(" ")
			b.WriteString(dimStyle.Render(l.Project))
			b.WriteString("\n")
			fmt.Fprintf(&b, "  %s → %s (+%d days) requested by %s\n",
				r.OriginalDueDate, r.RequestedDueDate, l.ExtraDays, l.Requester)
			if r.Reason != "" {
				b.WriteString("  ")
				b.WriteString(indent(wordwrap.String("Reason: "+r.Reason, max(width-4, 30))))
				b.WriteString("\n")
			}
			if r.ReviewComment != "" {
				reviewer := s.UserName(r.ReviewerID, "Reviewer")
				b.WriteString("  ")
				b.WriteString(indent(wordwrap.String(reviewer+": "+r.ReviewComment, max(width-4, 30))))
				b.WriteString("\n")
			}
		}
		return b.String()
	})
}

// NewDraftsModel lists the session user's drafts.
func NewDraftsModel(s *store.Store, sess session.Session) PageModel {
	return newPageModel("Drafts", func(width int) string {
		drafts := s.Drafts(sess.User.ID)
		if len(drafts) == 0 {
			return dimStyle.Render("No drafts")
		}

		var b strings.Builder
		for i, d := range drafts {
			if i > 0 {
				b.WriteString("\n")
				b.WriteString(dimStyle.Render(strings.Repeat("─", min(20, width))))
				b.WriteString("\n\n")
			}
			b.WriteString(detailTitleStyle.Render(d.Title))
			if d.ProjectID != "" {
				if p, err := s.GetProject(d.ProjectID); err == nil {
					b.WriteString(" ")
					b.WriteString(dimStyle.Render(p.Name))
				}
			}
			b.WriteString("\n")
			if d.UpdatedAt != "" {
				b.WriteString(logTimeStyle.Render("updated " + d.UpdatedAt))
				b.WriteString("\n")
			}
			b.WriteString(wordwrap.String(d.Content, max(width-2, 30)))
			b.WriteString("\n")
		}
		return b.String()
	})
}

// NewNotificationsModel lists the session user's notifications, unread first marked.
func NewNotificationsModel(s *store.Store, sess session.Session, clock func() time.Time) PageModel {
	notifications := s.NotificationsFor(sess.User.ID)
	title := fmt.Sprintf("Notifications (%d unread)", session.UnreadCount(notifications))

	return newPageModel(title, func(width int) string {
		if len(notifications) == 0 {
			return dimStyle.Render("No notifications")
		}

		now := clock()
		var b strings.Builder
		for _, n := range notifications {
			marker := "  "
			if !n.Read {
				marker = detailTitleStyle.Render("● ")
			}
			b.WriteString(marker)
			b.WriteString(notificationStyle(n.Type).Render(n.Title))
			b.WriteString(" ")
			b.WriteString(logTimeStyle.Render(formatTimeAgo(n.CreatedAt, now)))
			b.WriteString("\n  ")
			b.WriteString(indent(wordwrap.String(n.Message, max(width-4, 30))))
			b.WriteString("\n")
		}
		return b.String()
	})
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}

func delayStatusStyle(s domain.DelayStatus) lipgloss.Style {
	switch s {
	case domain.DelayApproved:
		return successStyle
	case domain.DelayRejected:
		return ErrorStyle
	default:
		return warnStyle
	}
}

func notificationStyle(t domain.NotificationType) lipgloss.Style {
	switch t {
	case domain.NotifySuccess:
		return successStyle
	case domain.NotifyWarning:
		return warnStyle
	case domain.NotifyError:
		return ErrorStyle
	default:
		return NormalItemStyle
	}
}
