package session

import "github.com/robby/projecthub/internal/domain"

// Screen identifies a top-level destination in the navigation menu.
type Screen string

const (
	ScreenDashboard     Screen = "dashboard"
	ScreenProjects      Screen = "projects"
	ScreenMyTasks       Screen = "my_tasks"
	ScreenDelayRequests Screen = "delay_requests"
	ScreenReports       Screen = "reports"
	ScreenDrafts        Screen = "drafts"
	ScreenNotifications Screen = "notifications"
)

// NavItem is one entry of the navigation menu.
type NavItem struct {
	Screen Screen
	Label  string
	roles  []domain.Role // empty means every role
}

var navItems = []NavItem{
	{Screen: ScreenDashboard, Label: "Dashboard"},
	{Screen: ScreenProjects, Label: "Projects"},
	{Screen: ScreenMyTasks, Label: "My Tasks"},
	{Screen: ScreenDelayRequests, Label: "Delay Requests", roles: []domain.Role{domain.RolePM, domain.RoleExecutive}},
	{Screen: ScreenReports, Label: "Reports"},
	{Screen: ScreenDrafts, Label: "Drafts", roles: []domain.Role{domain.RolePM}},
	{Screen: ScreenNotifications, Label: "Notifications"},
}

// NavItems returns the menu entries shown to role, in menu order.
// This only hides entries; it is not an authorization check.
func NavItems(role domain.Role) []NavItem {
	var items []NavItem
	for _, item := range navItems {
		if item.visibleTo(role) {
			items = append(items, item)
		}
	}
	return items
}

// CanSee reports whether role is shown screen in the menu.
func CanSee(role domain.Role, screen Screen) bool {
	for _, item := range navItems {
		if item.Screen == screen {
			return item.visibleTo(role)
		}
	}
	return false
}

func (n NavItem) visibleTo(role domain.Role) bool {
	if len(n.roles) == 0 {
		return true
	}
	for _, r := range n.roles {
		if r == role {
			return true
		}
	}
	return false
}

// VisibleDelayRequests filters delay requests for the session: PMs and executives
// see every request, members only the ones they raised.
func VisibleDelayRequests(s Session, requests []domain.DelayRequest) []domain.DelayRequest {
	if s.Role() != domain.RoleMember {
		return requests
	}
	out := make([]domain.DelayRequest, 0, len(requests))
	for _, r := range requests {
		if r.RequesterID == s.User.ID {
			out = append(out, r)
		}
	}
	return out
}

// UnreadCount returns how many notifications are unread.
func UnreadCount(notifications []domain.Notification) int {
	n := 0
	for _, notif := range notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}
