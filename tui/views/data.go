package views

import (
	"fmt"
	"strings"

	"tui/db"
	"tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dataMsg struct {
	properties []db.Property
	total      int
	err        error
}

type mediaMsg struct {
	propertyID string
	media      []db.Media
}

// Data browses migrated properties in the canonical store.
type Data struct {
	db            *db.Client
	width, height int
	properties    []db.Property
	media         []db.Media
	selectedRow   int
	fallbackOnly  bool
	dbPage        int
	dbPageSize    int
	totalProps    int
	err           error
}

func NewData(dbClient *db.Client) Data {
	return Data{db: dbClient, dbPageSize: 100}
}

func (d Data) Init() tea.Cmd {
	return d.Refresh()
}

func (d Data) Refresh() tea.Cmd {
	return func() tea.Msg {
		props, err := d.db.GetProperties(d.dbPageSize, d.dbPage*d.dbPageSize, d.fallbackOnly)
		total, _ := d.db.GetPropertyCount()
		return dataMsg{props, total, err}
	}
}

func (d Data) SetSize(w, h int) Data {
	d.width = w
	d.height = h
	return d
}

// Selected returns the highlighted property, if any.
func (d Data) Selected() (db.Property, bool) {
	if d.selectedRow < 0 || d.selectedRow >= len(d.properties) {
		return db.Property{}, false
	}
	return d.properties[d.selectedRow], true
}

func (d Data) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataMsg:
		d.properties = msg.properties
		d.totalProps = msg.total
		d.err = msg.err
		if d.selectedRow >= len(d.properties) {
			d.selectedRow = 0
		}
		return d, d.loadSelectedMedia()

	case mediaMsg:
		if p, ok := d.Selected(); ok && p.ID == msg.propertyID {
			d.media = msg.media
		}

	case tea.KeyMsg:
		if len(d.properties) == 0 {
			break
		}
		prev := d.selectedRow
		switch msg.String() {
		case "up", "k":
			d.selectedRow--
		case "down", "j":
			d.selectedRow++
		case "pgdown", "ctrl+d":
			d.selectedRow += 10
		case "pgup", "ctrl+u":
			d.selectedRow -= 10
		case "home", "g":
			d.selectedRow = 0
		case "end", "G":
			d.selectedRow = len(d.properties) - 1
		case "a":
			d.fallbackOnly = !d.fallbackOnly
			d.selectedRow = 0
			return d, d.Refresh()
		case "[":
			if d.dbPage > 0 {
				d.dbPage--
				d.selectedRow = 0
				return d, d.Refresh()
			}
		case "]":
			if d.dbPage < d.getTotalDBPages()-1 {
				d.dbPage++
				d.selectedRow = 0
				return d, d.Refresh()
			}
		}
		d.selectedRow = max(0, min(d.selectedRow, len(d.properties)-1))
		if d.selectedRow != prev {
			d.media = nil
			return d, d.loadSelectedMedia()
		}
	}
	return d, nil
}

func (d Data) loadSelectedMedia() tea.Cmd {
	p, ok := d.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		media, _ := d.db.GetMediaForProperty(p.ID)
		return mediaMsg{p.ID, media}
	}
}

func (d Data) getVisibleRows() int {
	rows := 25
	if d.height > 0 {
		rows = max((d.height*55)/100, 10)
	}
	return rows
}

func (d Data) getTotalDBPages() int {
	if d.dbPageSize == 0 || d.totalProps == 0 {
		return 1
	}
	return (d.totalProps + d.dbPageSize - 1) / d.dbPageSize
}

func (d Data) View() string {
	if d.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.Title.Render("Properties"),
			styles.StatusError.Render(d.err.Error()),
		)
	}

	filterStatus := "All"
	if d.fallbackOnly {
		filterStatus = "Fallback media only"
	}

	globalPos := d.dbPage*d.dbPageSize + d.selectedRow + 1
	if len(d.properties) == 0 {
		globalPos = 0
	}
	header := styles.Title.Render("Properties") +
		styles.StatValue.Render(fmt.Sprintf("  %d/%d", globalPos, d.totalProps)) +
		styles.StatLabel.Render(fmt.Sprintf("  Page %d/%d", d.dbPage+1, d.getTotalDBPages())) +
		"  " + styles.Muted.Render(fmt.Sprintf("[a] Filter: %s  [[ ]] Prev/Next  [f] Re-pull  [u] Push", filterStatus))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		d.renderPropertiesTable(),
		"",
		d.renderBottomPanel(),
	)
}

func (d Data) renderPropertiesTable() string {
	header := fmt.Sprintf("%-8s %-8s %-10s %-32s %-12s %-10s %10s %5s %5s",
		"Tenant", "Legacy", "Ref", "Title", "Type", "Status", "Price", "Media", "Fallb")
	rows := styles.TableHeader.Render(header) + "\n"

	visibleRows := d.getVisibleRows()
	scrollOffset := 0
	if d.selectedRow >= visibleRows {
		scrollOffset = d.selectedRow - visibleRows + 1
	}
	endRow := min(scrollOffset+visibleRows, len(d.properties))

	for i := scrollOffset; i < endRow; i++ {
		p := d.properties[i]
		fallbacks := fmt.Sprintf("%5d", p.Fallbacks)
		if p.Fallbacks > 0 && i != d.selectedRow {
			fallbacks = styles.StatusPending.Render(fallbacks)
		}

		row := fmt.Sprintf("%-8s %-8s %-10s %-32s %-12s %-10s %10s %5d %s",
			truncate(p.TenantID, 8),
			truncate(p.LegacyID, 8),
			truncate(p.Reference, 10),
			truncate(p.Title, 32),
			truncate(p.Type, 12),
			truncate(p.Status, 10),
			formatPrice(p.Price),
			p.MediaCount,
			fallbacks,
		)

		if i == d.selectedRow {
			rows += styles.TableSelected.Render(row) + "\n"
		} else {
			rows += row + "\n"
		}
	}

	if len(d.properties) > visibleRows {
		rows += styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", scrollOffset+1, endRow, len(d.properties)))
	}
	return rows
}

func (d Data) renderBottomPanel() string {
	mediaBox := styles.CardBorder.Width(d.width/2 - 2).Render(
		styles.Title.Render("Media") + "\n" + d.renderMedia(),
	)
	detailsBox := styles.TenantCardBorder.Width(d.width/2 - 2).Render(
		styles.Title.Render("Details") + "\n" + d.renderDetails(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, mediaBox, detailsBox)
}

func (d Data) renderMedia() string {
	if len(d.media) == 0 {
		return styles.Muted.Render("No media")
	}

	header := fmt.Sprintf("%-3s %-9s %-3s %s", "#", "Status", "Try", "URL")
	rows := styles.TableHeader.Render(header) + "\n"
	urlWidth := d.width/2 - 24

	for i, m := range d.media {
		if i == 8 {
			rows += styles.Muted.Render(fmt.Sprintf("  … %d more", len(d.media)-8))
			break
		}
		statusStyle := styles.StatusSuccess
		switch m.Status {
		case "fallback":
			statusStyle = styles.StatusPending
		case "external":
			statusStyle = styles.Muted
		}
		rows += fmt.Sprintf("%-3d %s %-3d %s\n",
			m.Ordinal,
			statusStyle.Render(fmt.Sprintf("%-9s", m.Status)),
			m.Attempts,
			truncate(m.DeliveryURL, urlWidth),
		)
	}
	return rows
}

func (d Data) renderDetails() string {
	p, ok := d.Selected()
	if !ok {
		return styles.Muted.Render("Select a property")
	}

	lines := []string{
		styles.StatLabel.Render("ID: ") + p.ID,
		styles.StatLabel.Render("Legacy: ") + p.LegacyID,
		styles.StatLabel.Render("Reference: ") + p.Reference,
		styles.StatLabel.Render("Updated: ") + relativeTime(p.UpdatedAt),
		"",
	}
	lines = append(lines, wrapText(p.Title, d.width/2-6)...)
	return strings.Join(lines, "\n")
}

func formatPrice(price float64) string {
	switch {
	case price <= 0:
		return "—"
	case price >= 1_000_000:
		return fmt.Sprintf("€%.2fM", price/1_000_000)
	case price >= 1000:
		return fmt.Sprintf("€%.0fK", price/1000)
	}
	return fmt.Sprintf("€%.0f", price)
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		width = 40
	}
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		if len(line)+len(word)+1 > width {
			lines = append(lines, line)
			line = word
		} else {
			if line != "" {
				line += " "
			}
			line += word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
