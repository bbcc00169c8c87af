package views

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"tui/db"
	"tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardDataMsg struct {
	stats        []db.TenantStats
	runs         []db.Run
	propCount    int
	contactCount int
	fallbacks    int
	pending      int
}

type logTailMsg struct {
	lines        []string
	modTime      time.Time
	daemonActive bool
}

type Dashboard struct {
	db            *db.Client
	width, height int
	stats         []db.TenantStats
	runs          []db.Run
	propCount     int
	contactCount  int
	fallbacks     int
	pending       int
	logLines      []string
	logPath       string
	logScroll     int // 0 = newest
	logViewport   int
	logBuffer     int
	logModTime    time.Time
	daemonActive  bool
}

func NewDashboard(dbClient *db.Client, logPath string) Dashboard {
	if logPath == "" {
		logPath = "bridge.log"
	}
	return Dashboard{
		db:          dbClient,
		logPath:     logPath,
		logViewport: 20,
		logBuffer:   200,
	}
}

func (d Dashboard) Init() tea.Cmd {
	return tea.Batch(d.Refresh(), d.tailLog())
}

func (d Dashboard) Refresh() tea.Cmd {
	return func() tea.Msg {
		stats, _ := d.db.GetTenantStats()
		runs, _ := d.db.GetRecentRuns(10)
		propCount, _ := d.db.GetPropertyCount()
		contactCount, _ := d.db.GetContactCount()
		fallbacks, _ := d.db.GetFallbackMediaCount()
		pending, _ := d.db.GetPendingCommandCount()
		return dashboardDataMsg{stats, runs, propCount, contactCount, fallbacks, pending}
	}
}

func (d Dashboard) RefreshLog() tea.Cmd {
	return d.tailLog()
}

func (d Dashboard) tailLog() tea.Cmd {
	return func() tea.Msg {
		lines, modTime := readLastLines(d.logPath, d.logBuffer)
		return logTailMsg{lines, modTime, isDaemonActive()}
	}
}

func isDaemonActive() bool {
	out, err := exec.Command("systemctl", "is-active", "crm_bridge").Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "active"
}

func readLastLines(path string, n int) ([]string, time.Time) {
	info, err := os.Stat(path)
	if err != nil {
		return []string{"(no log file)"}, time.Time{}
	}
	modTime := info.ModTime()

	f, err := os.Open(path)
	if err != nil {
		return []string{"(no log file)"}, time.Time{}
	}
	defer f.Close()

	var allLines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		allLines = append(allLines, scanner.Text())
	}

	if len(allLines) == 0 {
		return []string{"(empty log)"}, modTime
	}

	start := len(allLines) - n
	if start < 0 {
		start = 0
	}
	return allLines[start:], modTime
}

func (d Dashboard) SetSize(w, h int) Dashboard {
	d.width = w
	d.height = h
	return d
}

func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.stats = msg.stats
		d.runs = msg.runs
		d.propCount = msg.propCount
		d.contactCount = msg.contactCount
		d.fallbacks = msg.fallbacks
		d.pending = msg.pending
		return d, d.tailLog()
	case logTailMsg:
		d.logLines = msg.lines
		d.logModTime = msg.modTime
		d.daemonActive = msg.daemonActive
	case tea.KeyMsg:
		maxScroll := len(d.logLines) - d.logViewport
		if maxScroll < 0 {
			maxScroll = 0
		}
		switch msg.String() {
		case "up", "k":
			d.logScroll = min(d.logScroll+1, maxScroll)
		case "down", "j":
			d.logScroll = max(d.logScroll-1, 0)
		case "pgup":
			d.logScroll = min(d.logScroll+10, maxScroll)
		case "pgdown":
			d.logScroll = max(d.logScroll-10, 0)
		case "home":
			d.logScroll = maxScroll
		case "end":
			d.logScroll = 0
		}
	}
	return d, nil
}

func (d Dashboard) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Dashboard"),
		d.renderStatCards(),
		"",
		d.renderTenantCards(),
		"",
		styles.Title.Render("Recent Runs"),
		d.renderRunsTable(),
		"",
		d.renderLogTail(),
	)
}

func (d Dashboard) renderLogTail() string {
	if len(d.logLines) == 0 {
		content := styles.Muted.Render("(waiting for logs...)")
		return styles.LogBox.Width(d.width - 4).Render(content)
	}

	total := len(d.logLines)
	endIdx := total - d.logScroll
	startIdx := endIdx - d.logViewport
	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > total {
		endIdx = total
	}

	var lines []string
	for _, line := range d.logLines[startIdx:endIdx] {
		lines = append(lines, styleLogLine(line, d.width-8))
	}

	var scrollInfo string
	switch {
	case !d.daemonActive:
		scrollInfo = styles.StatusError.Render(" ● STOPPED ")
	case d.logScroll > 0:
		scrollInfo = styles.StatusPending.Render(fmt.Sprintf(" ↑%d ", d.logScroll))
	default:
		scrollInfo = styles.StatusSuccess.Render(" ● LIVE ")
	}

	header := styles.Title.Render("Live Log") + scrollInfo +
		styles.Muted.Render(fmt.Sprintf("[%d-%d/%d]", startIdx+1, endIdx, total))

	return styles.LogBox.Width(d.width - 4).Render(header + "\n" + strings.Join(lines, "\n"))
}

// styleLogLine colours a daemon log line by the level or operation prefix it
// carries.
func styleLogLine(line string, maxWidth int) string {
	line = truncate(line, maxWidth)

	ts, rest := "", line
	if len(line) > 19 && line[4] == '/' && line[10] == ' ' {
		ts, rest = styles.LogTimestamp.Render(line[:19]), line[19:]
	}

	switch {
	case strings.Contains(rest, "[error]") || strings.Contains(rest, "failed"):
		return ts + styles.StatusError.Render(rest)
	case strings.Contains(rest, "[warn]") || strings.Contains(rest, "Warning"):
		return ts + styles.StatusPending.Render(rest)
	case strings.Contains(rest, "[pull]") || strings.Contains(rest, "[push]") ||
		strings.Contains(rest, "[lead]") || strings.Contains(rest, "[media]"):
		return ts + styles.LogInfo.Render(rest)
	}
	return ts + rest
}

func (d Dashboard) renderStatCards() string {
	canonical := func(n int) string {
		if !d.db.HasCanonicalStore() {
			return "-"
		}
		return fmt.Sprintf("%d", n)
	}
	cards := []string{
		renderStatCard("Properties", canonical(d.propCount)),
		renderStatCard("Contacts", canonical(d.contactCount)),
		renderStatCard("Fallback media", canonical(d.fallbacks)),
		renderStatCard("Queued", fmt.Sprintf("%d", d.pending)),
		renderStatCard("Tenants", fmt.Sprintf("%d", len(d.stats))),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderStatCard(label, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.StatValue.Render(value),
		styles.StatLabel.Render(label),
	)
	return styles.CardBorder.Width(18).Render(content)
}

func (d Dashboard) renderTenantCards() string {
	if len(d.stats) == 0 {
		return styles.Muted.Render("No runs recorded yet")
	}

	var cards []string
	for _, s := range d.stats {
		cards = append(cards, renderTenantCard(s))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderTenantCard(s db.TenantStats) string {
	status, statusStyle := "○ never run", styles.StatusPending
	if s.LastRunStatus != nil {
		status, statusStyle = statusLabel(*s.LastRunStatus)
	}

	lastRun := "never"
	if s.LastRunAt != nil {
		lastRun = relativeTime(*s.LastRunAt)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.StatValue.Render(s.TenantID),
		statusStyle.Render(status),
		styles.StatLabel.Render(fmt.Sprintf("Last: %s", lastRun)),
		styles.StatLabel.Render(fmt.Sprintf("Runs: %d", s.TotalRuns)),
		styles.StatLabel.Render(fmt.Sprintf("Warnings: %d", s.Warnings)),
		styles.StatLabel.Render(fmt.Sprintf("Rate: %.0f%%", s.SuccessRate*100)),
	)
	return styles.TenantCardBorder.Width(24).Render(content)
}

func statusLabel(status string) (string, lipgloss.Style) {
	switch status {
	case "completed":
		return "✓ completed", styles.StatusSuccess
	case "failed":
		return "✗ failed", styles.StatusError
	case "not_found":
		return "∅ not found", styles.StatusPending
	case "running":
		return "◐ running", styles.StatusPending
	}
	return status, styles.Muted
}

func (d Dashboard) renderRunsTable() string {
	if len(d.runs) == 0 {
		return styles.Muted.Render("No runs yet")
	}

	header := fmt.Sprintf("%-10s %-14s %-14s %-10s %-9s %5s  %s",
		"Tenant", "Operation", "Target", "Status", "Started", "Warn", "Error")
	rows := styles.TableHeader.Render(header) + "\n"

	for _, r := range d.runs {
		_, statusStyle := statusLabel(r.Status)
		row := fmt.Sprintf("%-10s %-14s %-14s %s %-9s %5d  %s",
			truncate(r.TenantID, 10),
			truncate(r.Operation, 14),
			truncate(r.Target, 14),
			statusStyle.Render(fmt.Sprintf("%-10s", r.Status)),
			r.StartedAt.Local().Format("15:04:05"),
			r.Warnings,
			styles.Muted.Render(truncate(r.Error, max(d.width-72, 0))),
		)
		rows += row + "\n"
	}
	return rows
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}
