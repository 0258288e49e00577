package ui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cvforge/internal/model"
	"cvforge/internal/pdf"
)

type historyState int

const (
	historyList historyState = iota
	historyDetail
	historyConfirmClear
)

type historyModel struct {
	store     model.HistoryStore
	exportDir string
	records   []model.GenerationRecord // newest first
	cursor    int
	state     historyState
	detailVP  viewport.Model
	status    string
	exported  string

	width, height int
	ready         bool
}

func (m historyModel) Init() tea.Cmd {
	return nil
}

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		if m.state == historyDetail {
			m.resizeDetail()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case historyConfirmClear:
			return m.updateConfirm(msg)
		case historyDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m historyModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = clamp(m.cursor-1, 0, max(len(m.records)-1, 0))
		return m, nil
	case "down", "j":
		m.cursor = clamp(m.cursor+1, 0, max(len(m.records)-1, 0))
		return m, nil
	case "enter":
		if len(m.records) == 0 {
			return m, nil
		}
		m.state = historyDetail
		m.exported = m.records[m.cursor].PDFPath
		m.status = ""
		m.resizeDetail()
		return m, nil
	case "e":
		if len(m.records) == 0 {
			return m, nil
		}
		m.exportRecord(m.records[m.cursor])
		return m, nil
	case "c":
		if len(m.records) == 0 {
			return m, nil
		}
		m.state = historyConfirmClear
		return m, nil
	}
	return m, nil
}

func (m historyModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "b", "esc":
		m.state = historyList
		m.status = ""
		return m, nil
	case "e":
		m.exportRecord(m.records[m.cursor])
		return m, nil
	case "o":
		if m.exported != "" {
			openPath(m.exported)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailVP, cmd = m.detailVP.Update(msg)
	return m, cmd
}

func (m historyModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if err := m.store.Clear(); err != nil {
			m.status = errorStyle.Render(err.Error())
		} else {
			m.records = nil
			m.cursor = 0
			m.status = okStyle.Render("history cleared")
		}
		m.state = historyList
		return m, nil
	case "n", "esc", "q":
		m.state = historyList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// exportRecord re-renders a stored draft as PDF. The timestamp comes from
// the record so re-exports land on the same file.
func (m *historyModel) exportRecord(rec model.GenerationRecord) {
	name := pdf.DefaultFilename(rec.Kind, rec.Company, rec.CreatedAt)
	path := filepath.Join(m.exportDir, name)
	if err := pdf.Export(rec.Output, path); err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.exported = path
	m.status = okStyle.Render("exported to " + path)
}

func (m *historyModel) resizeDetail() {
	w := max(m.width-4, 40)
	h := max(m.height-6, 10)
	m.detailVP = viewport.New(w, h)
	m.detailVP.SetContent(wordWrap(m.records[m.cursor].Output, w-2))
}

func (m historyModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	switch m.state {
	case historyDetail:
		return m.viewDetail()
	case historyConfirmClear:
		return m.viewConfirm()
	default:
		return m.viewList()
	}
}

func (m historyModel) viewList() string {
	s := titleStyle.Render(fmt.Sprintf("Generation history (%d)", len(m.records))) + "\n\n"

	if len(m.records) == 0 {
		s += itemStyle.Render(dimStyle.Render("Nothing generated yet.")) + "\n"
		s += "\n" + statusBarStyle.Width(max(m.width, 20)).Render(" esc back")
		return s
	}

	visible := max(m.height-7, 3)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.records))

	for i := start; i < end; i++ {
		rec := m.records[i]
		line := fmt.Sprintf("%s  %-12s  %s", rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Kind.Label(), recordHeadline(rec))
		if rec.PDFPath != "" {
			line += dimStyle.Render("  [pdf]")
		}
		if i == m.cursor {
			s += selectedItemStyle.Render("> "+line) + "\n"
		} else {
			s += itemStyle.Render("  "+line) + "\n"
		}
	}

	if m.status != "" {
		s += "\n" + itemStyle.Render(m.status) + "\n"
	}
	s += "\n" + statusBarStyle.Width(max(m.width, 20)).Render(
		" ↑/↓ move  enter view  e export PDF  c clear all  esc back")
	return s
}

func (m historyModel) viewDetail() string {
	rec := m.records[m.cursor]
	title := titleStyle.Render(rec.Kind.Label() + " · " + recordHeadline(rec))
	meta := dimStyle.Render(fmt.Sprintf(" %s · %s/%s", rec.CreatedAt.Local().Format("2006-01-02 15:04"),
		rec.Provider, rec.Model))

	body := borderStyle.Width(max(m.width-2, 40)).Render(m.detailVP.View())

	status := " e export PDF  b back  ↑/↓ scroll  q quit"
	if m.exported != "" {
		status = " o open PDF  b back  ↑/↓ scroll  q quit"
	}
	if m.status != "" {
		status = " " + m.status
	}
	return title + meta + "\n" + body + "\n" + statusBarStyle.Width(max(m.width, 20)).Render(status)
}

func (m historyModel) viewConfirm() string {
	s := titleStyle.Render("Clear history") + "\n\n"
	s += itemStyle.Render(fmt.Sprintf("Delete all %d records? This cannot be undone.", len(m.records))) + "\n\n"
	s += itemStyle.Render(errorStyle.Render("y") + dimStyle.Render(" yes   ") +
		okStyle.Render("n") + dimStyle.Render(" no"))
	return s
}

func recordHeadline(rec model.GenerationRecord) string {
	switch {
	case rec.Title != "" && rec.Company != "":
		return rec.Title + " at " + rec.Company
	case rec.Title != "":
		return rec.Title
	case rec.Company != "":
		return rec.Company
	default:
		return "(untitled)"
	}
}

// RunHistory opens the browser over past generations.
func RunHistory(store model.HistoryStore, exportDir string) error {
	records, err := store.List()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	// newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	m := historyModel{store: store, exportDir: exportDir, records: records}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	if err != nil {
		return fmt.Errorf("history ui: %w", err)
	}
	return nil
}
