package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cvforge/internal/extract"
	"cvforge/internal/model"
	"cvforge/internal/pdf"
	"cvforge/internal/pipeline"
	"cvforge/internal/scrape"
)

// RunnerFactory builds a generation runner for the given provider.
type RunnerFactory func(provider string) (*pipeline.Runner, error)

// GenerateSession carries everything the generate form needs.
type GenerateSession struct {
	Kind      model.DocKind
	Profile   model.Profile
	Provider  string
	Providers []string
	NewRunner RunnerFactory
	Scraper   pipeline.JobScraper
	ExportDir string
}

type formState int

const (
	stateForm formState = iota
	stateResult
)

type scrapeDoneMsg struct {
	res *scrape.Result
	err error
}

type generateDoneMsg struct {
	res *pipeline.GenerateResult
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// formField is one labeled widget: either a single-line input or an area.
type formField struct {
	label string
	input *textinput.Model
	area  *textarea.Model
}

func (f *formField) focus() tea.Cmd {
	if f.input != nil {
		return f.input.Focus()
	}
	return f.area.Focus()
}

func (f *formField) blur() {
	if f.input != nil {
		f.input.Blur()
		return
	}
	f.area.Blur()
}

func (f *formField) value() string {
	if f.input != nil {
		return f.input.Value()
	}
	return f.area.Value()
}

func (f *formField) setValue(v string) {
	if f.input != nil {
		f.input.SetValue(v)
		return
	}
	f.area.SetValue(v)
}

func (f *formField) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.input != nil {
		*f.input, cmd = f.input.Update(msg)
		return cmd
	}
	*f.area, cmd = f.area.Update(msg)
	return cmd
}

func (f *formField) view() string {
	if f.input != nil {
		return f.input.View()
	}
	return f.area.View()
}

type generateFormModel struct {
	session GenerateSession

	fields   []*formField
	jobField *formField
	role     *formField // CV only
	skills   *formField // CV only
	company  *formField // cover letter only
	position *formField // cover letter only
	achieve  *formField // cover letter only
	motive   *formField // cover letter only

	focusIdx    int
	providerIdx int
	state       formState
	busy        bool
	busyLabel   string
	status      string

	result   *pipeline.GenerateResult
	resultVP viewport.Model
	exported string

	width, height int
	ready         bool
}

func newTextInput(placeholder string) *textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 60
	return &in
}

func newTextArea(placeholder string, height int) *textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.SetHeight(height)
	ta.SetWidth(76)
	ta.CharLimit = 0
	return &ta
}

func newGenerateForm(s GenerateSession) generateFormModel {
	m := generateFormModel{session: s}

	m.jobField = &formField{label: "Job posting (URL or pasted text)", area: newTextArea("https://... or paste the description", 8)}
	m.fields = append(m.fields, m.jobField)

	if s.Kind == model.KindCoverLetter {
		m.company = &formField{label: "Company", input: newTextInput("Acme Corp")}
		m.position = &formField{label: "Position", input: newTextInput("Staff Engineer")}
		m.achieve = &formField{label: "Key achievements", area: newTextArea("What should the letter highlight?", 4)}
		m.motive = &formField{label: "Motivation", area: newTextArea("Why this company?", 4)}
		m.fields = append(m.fields, m.company, m.position, m.achieve, m.motive)
	} else {
		m.role = &formField{label: "Target role", input: newTextInput("e.g. Platform Engineer")}
		m.role.setValue(s.Profile.JobRole)
		m.skills = &formField{label: "Skills for this application", area: newTextArea("comma separated or free form", 4)}
		m.skills.setValue(s.Profile.Skills)
		m.fields = append(m.fields, m.role, m.skills)
	}

	for i, p := range s.Providers {
		if p == s.Provider {
			m.providerIdx = i
		}
	}
	return m
}

func (m generateFormModel) Init() tea.Cmd {
	return m.fields[0].focus()
}

func (m generateFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, f := range m.fields {
			if f.area != nil {
				f.area.SetWidth(min(m.width-6, 100))
			} else {
				f.input.Width = min(m.width-10, 80)
			}
		}
		if m.state == stateResult {
			m.resizeResult()
		}
		m.ready = true
		return m, nil

	case scrapeDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.applyScrape(msg.res)
		return m, nil

	case generateDoneMsg:
		m.busy = false
		if msg.res == nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		// A result can arrive together with an error (for example when the
		// draft succeeded but recording it failed). Show the draft anyway.
		m.result = msg.res
		m.exported = ""
		m.state = stateResult
		m.status = ""
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		}
		m.resizeResult()
		return m, nil

	case exportDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.exported = msg.path
			m.status = okStyle.Render("exported to " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.state == stateResult {
			return m.updateResult(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m generateFormModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.fields[m.focusIdx].blur()
		if msg.String() == "tab" {
			m.focusIdx = (m.focusIdx + 1) % len(m.fields)
		} else {
			m.focusIdx = (m.focusIdx - 1 + len(m.fields)) % len(m.fields)
		}
		return m, m.fields[m.focusIdx].focus()
	case "ctrl+p":
		if len(m.session.Providers) > 0 {
			m.providerIdx = (m.providerIdx + 1) % len(m.session.Providers)
		}
		return m, nil
	case "ctrl+s":
		return m.startScrape()
	case "ctrl+g":
		return m.startGenerate()
	}

	cmd := m.fields[m.focusIdx].update(msg)
	return m, cmd
}

func (m generateFormModel) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "b":
		m.state = stateForm
		m.status = ""
		return m, nil
	case "e":
		return m.startExport()
	case "o":
		if m.exported != "" {
			openPath(m.exported)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultVP, cmd = m.resultVP.Update(msg)
	return m, cmd
}

func (m generateFormModel) startScrape() (tea.Model, tea.Cmd) {
	input := m.jobField.value()
	if _, ok := scrape.LooksLikeURL(input); !ok {
		m.status = errorStyle.Render("job field does not contain a URL; paste text or a http(s) link")
		return m, nil
	}

	m.busy = true
	m.busyLabel = "Scraping posting"
	m.status = ""
	scraper := m.session.Scraper
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), workTimeout)
		defer cancel()
		res, err := scraper.Scrape(ctx, input)
		return scrapeDoneMsg{res: res, err: err}
	}
}

// applyScrape replaces the job text with the scraped posting and fills any
// empty form fields from it.
func (m *generateFormModel) applyScrape(res *scrape.Result) {
	m.jobField.setValue(res.Text)

	fields := extract.Extract(res.Text)
	fv := extract.FormValues{}
	if m.role != nil {
		fv.JobRole = m.role.value()
	}
	if m.skills != nil {
		fv.Skills = m.skills.value()
	}
	if m.company != nil {
		fv.Company = m.company.value()
	}
	if m.position != nil {
		fv.Position = m.position.value()
	}

	merged := extract.Merge(fv, fields)

	if m.role != nil {
		m.role.setValue(merged.JobRole)
	}
	if m.skills != nil {
		m.skills.setValue(merged.Skills)
	}
	if m.company != nil {
		m.company.setValue(merged.Company)
	}
	if m.position != nil {
		m.position.setValue(merged.Position)
	}

	m.status = okStyle.Render(fmt.Sprintf("scraped %s via %s", res.URL, res.Site))
	if res.FromCache {
		m.status = okStyle.Render(fmt.Sprintf("loaded %s from cache", res.URL))
	}
}

func (m generateFormModel) startGenerate() (tea.Model, tea.Cmd) {
	req := m.buildRequest()
	provider := m.session.Providers[m.providerIdx]
	factory := m.session.NewRunner

	m.busy = true
	m.busyLabel = "Drafting with " + provider
	m.status = ""
	return m, func() tea.Msg {
		runner, err := factory(provider)
		if err != nil {
			return generateDoneMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), workTimeout)
		defer cancel()
		res, err := runner.Run(ctx, req)
		return generateDoneMsg{res: res, err: err}
	}
}

func (m generateFormModel) buildRequest() pipeline.GenerateRequest {
	req := pipeline.GenerateRequest{
		Kind:     m.session.Kind,
		Profile:  m.session.Profile,
		JobInput: m.jobField.value(),
	}

	if m.session.Kind == model.KindCoverLetter {
		req.Details = model.CoverLetterDetails{
			Company:      m.company.value(),
			Position:     m.position.value(),
			Achievements: m.achieve.value(),
			Motivation:   m.motive.value(),
		}
	} else {
		req.Profile.JobRole = m.role.value()
		req.Profile.Skills = m.skills.value()
	}
	return req
}

func (m generateFormModel) startExport() (tea.Model, tea.Cmd) {
	if m.result == nil {
		return m, nil
	}
	name := pdf.DefaultFilename(m.session.Kind, m.session.Profile.Name, time.Now())
	path := filepath.Join(m.session.ExportDir, name)
	content := m.result.Record.Output

	m.busy = true
	m.busyLabel = "Exporting PDF"
	return m, func() tea.Msg {
		return exportDoneMsg{path: path, err: pdf.Export(content, path)}
	}
}

func (m *generateFormModel) resizeResult() {
	w := max(m.width-4, 40)
	h := max(m.height-6, 10)
	m.resultVP = viewport.New(w, h)
	if m.result != nil {
		m.resultVP.SetContent(wordWrap(m.result.Record.Output, w-2))
	}
}

func (m generateFormModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.state == stateResult {
		return m.viewResult()
	}
	return m.viewForm()
}

func (m generateFormModel) viewForm() string {
	s := titleStyle.Render("Generate " + m.session.Kind.Label())
	s += "\n"

	provider := m.session.Providers[m.providerIdx]
	s += itemStyle.Render(labelStyle.Render("Provider: ")+provider+dimStyle.Render("  (ctrl+p to switch)")) + "\n\n"

	for i, f := range m.fields {
		label := labelStyle.Render(f.label)
		if i == m.focusIdx {
			label = focusedLabelStyle.Render(f.label)
		}
		s += itemStyle.Render(label) + "\n"
		s += itemStyle.Render(f.view()) + "\n\n"
	}

	if m.busy {
		s += itemStyle.Render(dimStyle.Render(m.busyLabel+"...")) + "\n"
	} else if m.status != "" {
		s += itemStyle.Render(m.status) + "\n"
	}

	s += "\n" + statusBarStyle.Width(max(m.width, 20)).Render(
		" tab fields  ctrl+s scrape URL  ctrl+g generate  ctrl+p provider  esc back")
	return s
}

func (m generateFormModel) viewResult() string {
	title := titleStyle.Render(m.session.Kind.Label() + " draft")

	meta := fmt.Sprintf(" %s · %s", m.result.Record.Provider, m.result.Record.Model)
	if m.result.Record.Company != "" {
		meta += " · " + m.result.Record.Company
	}
	if m.exported != "" {
		meta += " · saved " + m.exported
	}

	body := borderStyle.Width(max(m.width-2, 40)).Render(m.resultVP.View())

	status := " e export PDF  b back to form  ↑/↓ scroll  esc done"
	if m.exported != "" {
		status = " o open PDF  b back to form  ↑/↓ scroll  esc done"
	}
	if m.busy {
		status = " " + m.busyLabel + "..."
	} else if m.status != "" {
		status = " " + m.status
	}

	return title + dimStyle.Render(meta) + "\n" + body + "\n" +
		statusBarStyle.Width(max(m.width, 20)).Render(status)
}

// RunGenerateForm drives one generate session: fill the form, draft, review
// the result, optionally export it.
func RunGenerateForm(s GenerateSession) error {
	p := tea.NewProgram(newGenerateForm(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
