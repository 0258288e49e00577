package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cvforge/internal/ai"
	"cvforge/internal/config"
)

type modelsListedMsg struct {
	models []string
	err    error
}

type settingsModel struct {
	cfg         *config.Config
	fields      []*formField
	focusIdx    int
	providerIdx int
	saved       bool
	busy        bool
	status      string

	width  int
	height int
}

const (
	fieldAnthropicKey = iota
	fieldAnthropicModel
	fieldOpenAIKey
	fieldOpenAIModel
	fieldOllamaURL
	fieldOllamaModel
	fieldMaxTokens
	fieldTemperature
	fieldExportDir
)

func newSettingsForm(cfg *config.Config) settingsModel {
	mk := func(label, value string) *formField {
		f := &formField{label: label, input: newTextInput("")}
		f.setValue(value)
		return f
	}
	secret := func(label, value string) *formField {
		f := mk(label, value)
		f.input.EchoMode = textinput.EchoPassword
		f.input.EchoCharacter = '•'
		return f
	}

	m := settingsModel{
		cfg: cfg,
		fields: []*formField{
			secret("Anthropic API key", cfg.Anthropic.APIKey),
			mk("Anthropic model", cfg.Anthropic.Model),
			secret("OpenAI API key", cfg.OpenAI.APIKey),
			mk("OpenAI model", cfg.OpenAI.Model),
			mk("Ollama URL", cfg.Ollama.URL),
			mk("Ollama model", cfg.Ollama.Model),
			mk("Max tokens", strconv.Itoa(cfg.MaxTokens)),
			mk("Temperature (0-1)", strconv.FormatFloat(cfg.Temperature, 'g', -1, 64)),
			mk("Export directory", cfg.ExportDir),
		},
	}
	for i, p := range config.Providers {
		if p == cfg.Provider {
			m.providerIdx = i
		}
	}
	return m
}

func (m settingsModel) Init() tea.Cmd {
	return m.fields[0].focus()
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, f := range m.fields {
			f.input.Width = min(m.width-10, 80)
		}
		return m, nil

	case modelsListedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render("ollama: " + msg.err.Error())
		} else if len(msg.models) == 0 {
			m.status = dimStyle.Render("ollama has no models pulled")
		} else {
			m.status = okStyle.Render("ollama models: " + strings.Join(msg.models, ", "))
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy && msg.String() != "ctrl+c" {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			return m.save()
		case "ctrl+p":
			m.providerIdx = (m.providerIdx + 1) % len(config.Providers)
			return m, nil
		case "ctrl+l":
			return m.listOllamaModels()
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

// save validates the edited values and quits with saved set when they hold.
func (m settingsModel) save() (tea.Model, tea.Cmd) {
	cfg, err := m.collect()
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	if err := config.Validate(cfg); err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	m.cfg = cfg
	m.saved = true
	return m, tea.Quit
}

func (m settingsModel) collect() (*config.Config, error) {
	maxTokens, err := strconv.Atoi(strings.TrimSpace(m.fields[fieldMaxTokens].value()))
	if err != nil {
		return nil, fmt.Errorf("max tokens must be a number, got %q", m.fields[fieldMaxTokens].value())
	}
	temp, err := strconv.ParseFloat(strings.TrimSpace(m.fields[fieldTemperature].value()), 64)
	if err != nil {
		return nil, fmt.Errorf("temperature must be a number, got %q", m.fields[fieldTemperature].value())
	}

	cfg := *m.cfg
	cfg.Provider = config.Providers[m.providerIdx]
	cfg.Anthropic.APIKey = strings.TrimSpace(m.fields[fieldAnthropicKey].value())
	cfg.Anthropic.Model = strings.TrimSpace(m.fields[fieldAnthropicModel].value())
	cfg.OpenAI.APIKey = strings.TrimSpace(m.fields[fieldOpenAIKey].value())
	cfg.OpenAI.Model = strings.TrimSpace(m.fields[fieldOpenAIModel].value())
	cfg.Ollama.URL = strings.TrimSpace(m.fields[fieldOllamaURL].value())
	cfg.Ollama.Model = strings.TrimSpace(m.fields[fieldOllamaModel].value())
	cfg.MaxTokens = maxTokens
	cfg.Temperature = temp
	cfg.ExportDir = strings.TrimSpace(m.fields[fieldExportDir].value())
	return &cfg, nil
}

// listOllamaModels queries the URL currently in the form, not the saved one,
// so the endpoint can be checked before saving.
func (m settingsModel) listOllamaModels() (tea.Model, tea.Cmd) {
	url := strings.TrimSpace(m.fields[fieldOllamaURL].value())
	if url == "" {
		m.status = errorStyle.Render("set the Ollama URL first")
		return m, nil
	}

	m.busy = true
	m.status = dimStyle.Render("querying ollama...")
	return m, func() tea.Msg {
		probe := config.Default()
		probe.Ollama.URL = url
		ctx, cancel := context.WithTimeout(context.Background(), workTimeout)
		defer cancel()
		models, err := ai.NewOllama(probe).ListModels(ctx)
		return modelsListedMsg{models: models, err: err}
	}
}

func (m settingsModel) View() string {
	s := titleStyle.Render("Settings") + "\n"

	provider := config.Providers[m.providerIdx]
	s += itemStyle.Render(labelStyle.Render("Provider: ")+provider+dimStyle.Render("  (ctrl+p to switch)")) + "\n\n"

	for i, f := range m.fields {
		label := labelStyle.Render(f.label)
		if i == m.focusIdx {
			label = focusedLabelStyle.Render(f.label)
		}
		s += itemStyle.Render(label+"  "+f.view()) + "\n"
	}

	if m.status != "" {
		s += "\n" + itemStyle.Render(m.status) + "\n"
	}

	s += "\n" + statusBarStyle.Width(max(m.width, 20)).Render(
		" tab fields  ctrl+p provider  ctrl+l list ollama models  ctrl+s save  esc cancel")
	return s
}

// RunSettings edits cfg interactively. It returns the updated config and
// whether the user chose to save; the caller persists it.
func RunSettings(cfg *config.Config) (*config.Config, bool, error) {
	prog := tea.NewProgram(newSettingsForm(cfg), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return cfg, false, err
	}
	m := final.(settingsModel)
	if !m.saved {
		return cfg, false, nil
	}
	return m.cfg, true, nil
}
