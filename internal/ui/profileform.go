package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cvforge/internal/model"
)

type profileFormModel struct {
	fields   []*formField
	focusIdx int
	saved    bool

	width  int
	height int
}

func newProfileForm(p model.Profile) profileFormModel {
	mk := func(label, placeholder, value string) *formField {
		f := &formField{label: label, input: newTextInput(placeholder)}
		f.setValue(value)
		return f
	}
	mkArea := func(label, placeholder, value string, height int) *formField {
		f := &formField{label: label, area: newTextArea(placeholder, height)}
		f.setValue(value)
		return f
	}

	m := profileFormModel{
		fields: []*formField{
			mk("Name", "Jane Doe", p.Name),
			mk("Email", "jane@example.com", p.Email),
			mk("Phone", "+1 555 000 0000", p.Phone),
			mk("Current role", "Software Engineer", p.JobRole),
			mkArea("Summary", "A few sentences about you", p.Summary, 3),
			mkArea("Education", "Degrees, schools, years", p.Education, 3),
			mkArea("Experience", "Roles, companies, highlights", p.Experience, 4),
			mkArea("Skills", "comma separated", p.Skills, 2),
			mkArea("Certifications", "optional", p.Certifications, 2),
		},
	}
	return m
}

func (m profileFormModel) Init() tea.Cmd {
	return m.fields[0].focus()
}

func (m profileFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			m.saved = true
			return m, tea.Quit
		case "tab", "shift+tab":
			m.fields[m.focusIdx].blur()
			if msg.String() == "tab" {
				m.focusIdx = (m.focusIdx + 1) % len(m.fields)
			} else {
				m.focusIdx = (m.focusIdx - 1 + len(m.fields)) % len(m.fields)
			}
			return m, m.fields[m.focusIdx].focus()
		}

		cmd := m.fields[m.focusIdx].update(msg)
		return m, cmd
	}
	return m, nil
}

func (m profileFormModel) View() string {
	s := titleStyle.Render("Edit profile") + "\n"

	for i, f := range m.fields {
		label := labelStyle.Render(f.label)
		if i == m.focusIdx {
			label = focusedLabelStyle.Render(f.label)
		}
		s += itemStyle.Render(label) + "\n"
		s += itemStyle.Render(f.view()) + "\n"
	}

	s += "\n" + statusBarStyle.Width(max(m.width, 20)).Render(
		" tab fields  ctrl+s save  esc cancel")
	return s
}

func (m profileFormModel) collect() model.Profile {
	return model.Profile{
		Name:           m.fields[0].value(),
		Email:          m.fields[1].value(),
		Phone:          m.fields[2].value(),
		JobRole:        m.fields[3].value(),
		Summary:        m.fields[4].value(),
		Education:      m.fields[5].value(),
		Experience:     m.fields[6].value(),
		Skills:         m.fields[7].value(),
		Certifications: m.fields[8].value(),
	}
}

// RunProfileEditor edits p interactively. It returns the edited profile and
// whether the user chose to save.
func RunProfileEditor(p model.Profile) (model.Profile, bool, error) {
	prog := tea.NewProgram(newProfileForm(p), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return p, false, err
	}
	m := final.(profileFormModel)
	if !m.saved {
		return p, false, nil
	}
	return m.collect(), true, nil
}
