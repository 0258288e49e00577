package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MenuAction is what the user picked from the main menu.
type MenuAction int

const (
	ActionQuit MenuAction = iota
	ActionGenerateCV
	ActionGenerateCoverLetter
	ActionEditProfile
	ActionImportProfileURL
	ActionImportProfilePDF
	ActionHistory
	ActionSettings
)

var menuEntries = []struct {
	action MenuAction
	label  string
}{
	{ActionGenerateCV, "Generate CV"},
	{ActionGenerateCoverLetter, "Generate cover letter"},
	{ActionEditProfile, "Edit profile"},
	{ActionImportProfileURL, "Import profile from URL"},
	{ActionImportProfilePDF, "Import profile from resume PDF"},
	{ActionHistory, "History"},
	{ActionSettings, "Settings"},
	{ActionQuit, "Quit"},
}

type menuModel struct {
	cursor int
	chosen MenuAction
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chosen = ActionQuit
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuEntries)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = menuEntries[m.cursor].action
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	s := titleStyle.Render("cvforge")
	s += "\n"

	for i, entry := range menuEntries {
		if i == m.cursor {
			s += selectedItemStyle.Render("> "+entry.label) + "\n"
		} else {
			s += itemStyle.Render(entry.label) + "\n"
		}
	}

	s += hintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// RunMenu shows the main menu and returns the chosen action.
func RunMenu() (MenuAction, error) {
	p := tea.NewProgram(menuModel{})
	result, err := p.Run()
	if err != nil {
		return ActionQuit, err
	}
	return result.(menuModel).chosen, nil
}
