package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptModel struct {
	title     string
	input     textinput.Model
	submitted bool
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.submitted = false
			return m, tea.Quit
		case "enter":
			m.submitted = m.input.Value() != ""
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	s := titleStyle.Render(m.title) + "\n"
	s += itemStyle.Render(m.input.View()) + "\n"
	s += hintStyle.Render("enter confirm  esc cancel")
	return s
}

// RunPrompt asks for a single line of input. ok is false when the user
// cancelled or submitted nothing.
func RunPrompt(title, placeholder string) (value string, ok bool, err error) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Width = 60
	input.Focus()

	p := tea.NewProgram(promptModel{title: title, input: input})
	result, err := p.Run()
	if err != nil {
		return "", false, err
	}
	final := result.(promptModel)
	return final.input.Value(), final.submitted, nil
}
