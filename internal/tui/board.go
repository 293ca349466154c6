package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robby/projecthub/internal/domain"
	"github.com/robby/projecthub/internal/store"
	"go.uber.org/zap"
)

// Layout constants
const (
	minColumnWidth = 20
	maxColumnWidth = 35
	headerLines    = 1  // Single header line with title + status
	pageJumpSize   = 10 // Number of items to jump with Ctrl+D/U
)

// Styles for the board view - base styles without width/height (set dynamically)
var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	moveModeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	taskPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// BoardOptions selects which tasks a board shows.
type BoardOptions struct {
	// ProjectID limits the board to one project. Empty means every project.
	ProjectID string
	// ViewerID is the signed-in user, used by the "assigned to me" filter.
	ViewerID string
	// MyOnly starts the board with the "assigned to me" filter on.
	MyOnly bool
}

// BoardModel is the kanban view of tasks grouped by status.
type BoardModel struct {
	// Dependencies
	store *store.Store
	log   *zap.Logger
	opts  BoardOptions

	// UI components
	keymap      KeyMap
	help        HelpModel
	filterInput textinput.Model

	// Board state
	columns        []domain.TaskStatus           // Column order
	filteredCards  map[domain.TaskStatus][]string // Status -> task IDs
	selectedColumn int                            // Currently selected column
	columnOffset   int                            // Horizontal scroll offset (first visible column index)
	selectedCard   map[domain.TaskStatus]int      // Status -> selected card index
	scrollOffset   map[domain.TaskStatus]int      // Status -> scroll offset

	// View state
	width        int
	height       int
	showHelp     bool
	showTask     bool
	filterMode   bool
	filterText   string
	filterMyOnly bool // Toggle to show only tasks assigned to me
	moveMode     bool
	errorToast   string
}

// NewBoardModel creates a new board model.
func NewBoardModel(s *store.Store, log *zap.Logger, opts BoardOptions) BoardModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "

	m := BoardModel{
		store:         s,
		log:           log,
		opts:          opts,
		keymap:        DefaultKeyMap(),
		help:          NewHelpModel(DefaultKeyMap()),
		filterInput:   ti,
		columns:       append([]domain.TaskStatus(nil), domain.TaskStatuses...),
		filteredCards: make(map[domain.TaskStatus][]string),
		selectedCard:  make(map[domain.TaskStatus]int),
		scrollOffset:  make(map[domain.TaskStatus]int),
		filterMyOnly:  opts.MyOnly,
	}
	m.applyFilter()
	return m
}

// Init initializes the board.
func (m BoardModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case moveSuccessMsg:
		m.moveMode = false
		m.errorToast = ""
		(&m).applyFilter()
		return m, nil

	case moveErrorMsg:
		// The store rejects an invalid edit before changing anything.
		m.moveMode = false
		(&m).applyFilter()
		m.errorToast = fmt.Sprintf("Move failed: %v", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Task panel
	if m.showTask {
		switch msg.String() {
		case "enter", "esc", "q":
			m.showTask = false
		}
		return m, nil
	}

	// Filter mode
	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterText = m.filterInput.Value()
			(&m).applyFilter()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.SetValue(m.filterText)
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	// Move mode
	if m.moveMode {
		return m.handleMoveMode(msg)
	}

	// Normal navigation
	switch msg.String() {
	case "q", "esc":
		return m, back
	case "?":
		m.showHelp = true
	case "/":
		m.filterMode = true
		m.filterInput.Focus()
	case "h", "left":
		if m.selectedColumn > 0 {
			m.selectedColumn--
			(&m).adjustColumnScroll()
		}
	case "l", "right":
		if m.selectedColumn < len(m.columns)-1 {
			m.selectedColumn++
			(&m).adjustColumnScroll()
		}
	case "j", "down":
		(&m).moveCardSelection(1)
	case "k", "up":
		(&m).moveCardSelection(-1)
	case "g":
		// Go to top of current column (vim: gg)
		(&m).jumpToCard(0)
	case "G":
		// Go to bottom of current column (vim: G)
		(&m).jumpToCard(-1)
	case "ctrl+d":
		(&m).moveCardSelection(pageJumpSize)
	case "ctrl+u":
		(&m).moveCardSelection(-pageJumpSize)
	case "m":
		if m.getSelectedCard() != nil {
			m.moveMode = true
		}
	case "u":
		if err := m.store.RollbackTaskStatus(); err != nil {
			m.errorToast = err.Error()
			return m, nil
		}
		m.errorToast = ""
		(&m).applyFilter()
	case "a":
		// Toggle "assigned to me" filter
		m.filterMyOnly = !m.filterMyOnly
		(&m).applyFilter()
	case "enter":
		if m.getSelectedCard() != nil {
			m.showTask = true
		}
	}

	return m, nil
}

// handleMoveMode handles key presses in move mode
func (m BoardModel) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.moveMode = false
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(m.columns) {
			return m, m.moveCardToColumn(m.columns[idx])
		}
	}
	return m, nil
}

// View renders the board - fills entire terminal exactly
func (m BoardModel) View() string {
	// Use sensible defaults if dimensions not yet set
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var sections []string

	// === HEADER (title + status) ===
	sections = append(sections, m.renderHeader(width))

	// === SECOND HEADER LINE (navigation hints + position) ===
	sections = append(sections, m.renderSecondHeader(width))

	// === FILTER INPUT (if active) ===
	if m.filterMode {
		sections = append(sections, m.filterInput.View())
	}

	// === MOVE MODE BANNER ===
	if m.moveMode {
		moveBar := moveModeStyle.Render("MOVE") + " Press 1-9 to select column, ESC to cancel"
		sections = append(sections, moveBar)
	}

	boardHeight := height - 2 // header + second header
	if m.filterMode {
		boardHeight--
	}
	if m.moveMode {
		boardHeight--
	}
	if boardHeight < 5 {
		boardHeight = 5
	}

	// === MAIN CONTENT ===
	var mainContent string
	if m.showHelp {
		helpContent := m.help.View(width)
		helpLines := strings.Split(helpContent, "\n")
		// Truncate help to fit in available space
		if len(helpLines) > boardHeight {
			helpLines = helpLines[:boardHeight]
		}
		mainContent = strings.Join(helpLines, "\n")
	} else if m.showTask {
		mainContent = m.renderTaskPanel(width)
	} else {
		mainContent = m.renderBoard(width, boardHeight)
	}
	sections = append(sections, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSecondHeader renders navigation hints and position info
func (m BoardModel) renderSecondHeader(width int) string {
	left := "h/l:col j/k:card m:move u:undo enter:details"

	// Right side: error toast or position info
	right := ""
	if m.errorToast != "" {
		right = ErrorStyle.Render(m.errorToast)
	} else if len(m.columns) > 0 {
		col := m.columns[m.selectedColumn]
		cards := m.filteredCards[col]

		colPos := fmt.Sprintf("col %d/%d", m.selectedColumn+1, len(m.columns))
		if len(cards) > 0 {
			right = fmt.Sprintf("%s | card %d/%d", colPos, m.selectedCard[col]+1, len(cards))
		} else {
			right = colPos
		}
	}

	padding := width - len(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return dimStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderHeader renders a single header line with title on left and status on right
func (m BoardModel) renderHeader(width int) string {
	title := "My Tasks - all projects"
	if m.opts.ProjectID != "" {
		p, err := m.store.GetProject(m.opts.ProjectID)
		if err != nil {
			return ErrorStyle.Render(err.Error())
		}
		title = fmt.Sprintf("%s - %s (%d%% done)", p.Code, p.Name, m.store.ProjectProgress(p.ID))
	}

	var statusParts []string

	totalItems := 0
	for _, cards := range m.filteredCards {
		totalItems += len(cards)
	}
	statusParts = append(statusParts, fmt.Sprintf("%d tasks", totalItems))

	if m.filterMyOnly {
		statusParts = append(statusParts, "@me")
	}
	if m.filterText != "" {
		statusParts = append(statusParts, fmt.Sprintf("/%s", m.filterText))
	}

	statusParts = append(statusParts, "[a]@me [?]help")
	status := strings.Join(statusParts, " | ")

	padding := width - lipgloss.Width(title) - len(status) - 2
	if padding < 1 {
		padding = 1
	}

	return titleStyle.Render(title) + strings.Repeat(" ", padding) + dimStyle.Render(status)
}

// renderBoard renders the kanban columns within the given dimensions.
// Columns scroll horizontally when they do not fit.
func (m BoardModel) renderBoard(totalWidth, totalHeight int) string {
	numCols := len(m.columns)
	if numCols == 0 {
		return ""
	}

	// lipgloss Border adds 2 lines (top + bottom) to the content height
	colContentHeight := totalHeight - 2
	if colContentHeight < 3 {
		colContentHeight = 3
	}

	maxVisibleCols := totalWidth / minColumnWidth
	if maxVisibleCols < 1 {
		maxVisibleCols = 1
	}
	visibleCols := maxVisibleCols
	if visibleCols > numCols {
		visibleCols = numCols
	}

	colWidth := totalWidth / visibleCols
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	// Content width inside column (2 border + 2 padding)
	innerWidth := colWidth - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	maxCardLines := colContentHeight - 1
	if maxCardLines < 1 {
		maxCardLines = 1
	}

	startCol := m.columnOffset
	endCol := startCol + visibleCols
	if endCol > numCols {
		endCol = numCols
		startCol = endCol - visibleCols
		if startCol < 0 {
			startCol = 0
		}
	}

	columnViews := make([]string, 0, visibleCols+2)

	if startCol > 0 {
		indicator := lipgloss.NewStyle().
			Width(2).
			Height(colContentHeight+2).
			Foreground(lipgloss.Color("205")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("◀")
		columnViews = append(columnViews, indicator)
	}

	for i := startCol; i < endCol; i++ {
		columnViews = append(columnViews, m.renderColumn(m.columns[i], i == m.selectedColumn, colWidth, colContentHeight, innerWidth, maxCardLines, i+1))
	}

	if endCol < numCols {
		indicator := lipgloss.NewStyle().
			Width(2).
			Height(colContentHeight+2).
			Foreground(lipgloss.Color("205")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("▶")
		columnViews = append(columnViews, indicator)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

// renderColumn renders a single column. innerHeight excludes the border and
// maxCardLines excludes the header.
func (m BoardModel) renderColumn(status domain.TaskStatus, selected bool, width, innerHeight, innerWidth, maxCardLines, colNum int) string {
	cards := m.filteredCards[status]

	// Header: [N] Name (count)
	headerText := fmt.Sprintf("[%d] %s (%d)", colNum, status.Label(), len(cards))
	if len(headerText) > innerWidth {
		headerText = headerText[:innerWidth-1] + "…"
	}

	scrollOffset := m.scrollOffset[status]
	selectedIdx := m.selectedCard[status]

	cardSlots := maxCardLines - 1
	if cardSlots < 1 {
		cardSlots = 1
	}

	needUpIndicator := scrollOffset > 0
	needDownIndicator := false

	availableSlots := cardSlots
	if needUpIndicator {
		availableSlots--
	}

	endIdx := scrollOffset + availableSlots
	if endIdx > len(cards) {
		endIdx = len(cards)
	}

	if endIdx < len(cards) {
		needDownIndicator = true
		availableSlots--
		endIdx = scrollOffset + availableSlots
		if endIdx > len(cards) {
			endIdx = len(cards)
		}
	}

	var lines []string
	lines = append(lines, columnHeaderStyle.Render(headerText))

	if needUpIndicator {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↑ %d more", scrollOffset)))
	}

	for i := scrollOffset; i < endIdx; i++ {
		task, err := m.store.GetTask(cards[i])
		if err != nil {
			continue
		}

		cardText := m.formatCardText(task, innerWidth-3) // 3 for "> " or "  " prefix
		if selected && i == selectedIdx {
			lines = append(lines, selectedCardStyle.Render("> "+cardText))
		} else {
			lines = append(lines, cardStyle.Render("  "+cardText))
		}
	}

	remaining := len(cards) - endIdx
	if needDownIndicator && remaining > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	if len(cards) == 0 {
		lines = append(lines, dimStyle.Render("(empty)"))
	}

	borderColor := lipgloss.Color("240")
	if selected {
		borderColor = statusColor(string(status))
	}

	// Height sets the content area; the border adds 2 lines. MaxHeight would cut the border.
	colStyle := lipgloss.NewStyle().
		Width(width-2).
		Height(innerHeight).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	return colStyle.Render(strings.Join(lines, "\n"))
}

// formatCardText formats a task for display with max width.
// The suffix is the project code on the all-projects board and the priority otherwise.
func (m BoardModel) formatCardText(task domain.Task, maxWidth int) string {
	title := []rune(task.Title)

	suffix := string(task.Priority)
	if m.opts.ProjectID == "" {
		if p, err := m.store.GetProject(task.ProjectID); err == nil {
			suffix = p.Code
		}
	}

	suffixLen := len([]rune(suffix))
	availableForTitle := maxWidth - suffixLen - 1
	if availableForTitle < 5 {
		availableForTitle = 5
	}

	if len(title) > availableForTitle {
		title = append(title[:availableForTitle-1], '…')
	}

	padding := maxWidth - len(title) - suffixLen
	if padding < 1 {
		padding = 1
	}

	return string(title) + strings.Repeat(" ", padding) + dimStyle.Render(suffix)
}

// renderTaskPanel renders the selected task's details.
func (m BoardModel) renderTaskPanel(width int) string {
	task := m.getSelectedCard()
	if task == nil {
		return ""
	}

	project := "-"
	if p, err := m.store.GetProject(task.ProjectID); err == nil {
		project = p.Name
	}
	milestone := "-"
	if ms, err := m.store.GetMilestone(task.MilestoneID); err == nil {
		milestone = ms.Name
	}

	lines := []string{
		titleStyle.Render(task.Title),
		"",
		fmt.Sprintf("Project:   %s", project),
		fmt.Sprintf("Milestone: %s", milestone),
		fmt.Sprintf("Status:    %s", lipgloss.NewStyle().Foreground(statusColor(string(task.Status))).Render(task.Status.Label())),
		fmt.Sprintf("Priority:  %s", task.Priority),
		fmt.Sprintf("Assignee:  %s", m.store.UserName(task.AssigneeID, "unassigned")),
		fmt.Sprintf("Dates:     %s → %s", task.StartDate, task.DueDate),
		fmt.Sprintf("Hours:     %.0f estimated, %.0f actual", task.EstimatedHours, task.ActualHours),
	}
	if task.Description != "" {
		lines = append(lines, "", task.Description)
	}
	lines = append(lines, "", dimStyle.Render("enter/esc: close"))

	return taskPanelStyle.Width(min(width-4, 72)).Render(strings.Join(lines, "\n"))
}

// applyFilter groups the visible tasks by status.
func (m *BoardModel) applyFilter() {
	var tasks []domain.Task
	if m.opts.ProjectID != "" {
		tasks = m.store.TasksByProject(m.opts.ProjectID)
	} else {
		tasks = m.store.Tasks()
	}

	m.filteredCards = make(map[domain.TaskStatus][]string)
	for _, col := range m.columns {
		m.filteredCards[col] = []string{}
	}

	needle := strings.ToLower(m.filterText)
	for _, task := range tasks {
		// Text filter
		if needle != "" && !strings.Contains(strings.ToLower(task.Title), needle) {
			continue
		}

		// "Assigned to me" filter
		if m.filterMyOnly && m.opts.ViewerID != "" && task.AssigneeID != m.opts.ViewerID {
			continue
		}

		m.filteredCards[task.Status] = append(m.filteredCards[task.Status], task.ID)
	}

	// Reset scroll offsets and clamp selection when the filter changes
	for col := range m.filteredCards {
		m.scrollOffset[col] = 0
		if m.selectedCard[col] >= len(m.filteredCards[col]) {
			if len(m.filteredCards[col]) > 0 {
				m.selectedCard[col] = len(m.filteredCards[col]) - 1
			} else {
				m.selectedCard[col] = 0
			}
		}
	}
}

// moveCardSelection moves the card selection up or down by delta
func (m *BoardModel) moveCardSelection(delta int) {
	if len(m.columns) == 0 {
		return
	}

	col := m.columns[m.selectedColumn]
	cards := m.filteredCards[col]
	if len(cards) == 0 {
		return
	}

	newIdx := m.selectedCard[col] + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(cards) {
		newIdx = len(cards) - 1
	}

	m.selectedCard[col] = newIdx
	m.adjustScroll(col)
}

// jumpToCard jumps to a specific card index. Use -1 to jump to last card.
func (m *BoardModel) jumpToCard(idx int) {
	if len(m.columns) == 0 {
		return
	}

	col := m.columns[m.selectedColumn]
	cards := m.filteredCards[col]
	if len(cards) == 0 {
		return
	}

	if idx < 0 || idx >= len(cards) {
		idx = len(cards) - 1
	}

	m.selectedCard[col] = idx
	m.adjustScroll(col)
}

// adjustScroll ensures the selected card is visible
func (m *BoardModel) adjustScroll(col domain.TaskStatus) {
	selectedIdx := m.selectedCard[col]
	scrollOffset := m.scrollOffset[col]

	contentHeight := m.height - headerLines - 2 // 2 for column borders
	if m.moveMode {
		contentHeight--
	}
	if m.filterMode {
		contentHeight--
	}
	visibleCards := contentHeight - 3 // header + potential scroll indicators
	if visibleCards < 3 {
		visibleCards = 3
	}

	if selectedIdx < scrollOffset {
		m.scrollOffset[col] = selectedIdx
	}
	if selectedIdx >= scrollOffset+visibleCards {
		m.scrollOffset[col] = selectedIdx - visibleCards + 1
	}
}

// adjustColumnScroll ensures the selected column is visible
func (m *BoardModel) adjustColumnScroll() {
	if len(m.columns) == 0 || m.width == 0 {
		return
	}

	visibleCols := m.width / minColumnWidth
	if visibleCols < 1 {
		visibleCols = 1
	}
	if visibleCols > len(m.columns) {
		visibleCols = len(m.columns)
	}

	if m.selectedColumn < m.columnOffset {
		m.columnOffset = m.selectedColumn
	}
	if m.selectedColumn >= m.columnOffset+visibleCols {
		m.columnOffset = m.selectedColumn - visibleCols + 1
	}
}

// getSelectedCard returns the currently selected task
func (m BoardModel) getSelectedCard() *domain.Task {
	if len(m.columns) == 0 {
		return nil
	}

	col := m.columns[m.selectedColumn]
	cards := m.filteredCards[col]
	if len(cards) == 0 {
		return nil
	}

	cardIdx := m.selectedCard[col]
	if cardIdx >= len(cards) {
		cardIdx = 0
	}

	task, err := m.store.GetTask(cards[cardIdx])
	if err != nil {
		return nil
	}
	return &task
}

// moveCardToColumn moves the selected task to the target status.
func (m BoardModel) moveCardToColumn(target domain.TaskStatus) tea.Cmd {
	task := m.getSelectedCard()
	if task == nil {
		return nil
	}

	if err := m.store.SetTaskStatus(task.ID, target); err != nil {
		m.log.Warn("task move rejected", zap.String("task", task.ID), zap.Error(err))
		return func() tea.Msg { return moveErrorMsg{err: err} }
	}
	return func() tea.Msg { return moveSuccessMsg{} }
}

// Message types
type (
	moveSuccessMsg struct{}
	moveErrorMsg   struct{ err error }
)

// renderCard formats a task at a fixed width.
func (m BoardModel) renderCard(task domain.Task) string {
	return m.formatCardText(task, 30)
}

// renderAllColumns renders the columns at the current size.
func (m BoardModel) renderAllColumns() string {
	return m.renderBoard(m.width, m.height-headerLines)
}
