package setup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/router"
	"github.com/Chirchirp/Interview-Coach/internal/screen"
	sessionscreen "github.com/Chirchirp/Interview-Coach/internal/screens/session"
	"github.com/Chirchirp/Interview-Coach/internal/session"
	"github.com/Chirchirp/Interview-Coach/internal/store"
	"github.com/Chirchirp/Interview-Coach/internal/ui/components"
	"github.com/Chirchirp/Interview-Coach/internal/ui/layout"
)

// Form rows. Which rows are visible depends on the provider and on
// whether this is a quick session.
const (
	rowProvider = iota
	rowModel
	rowKey
	rowEndpoint
	rowResume
	rowJob
	rowField
	rowExperience
	rowFocus
	rowCount
)

var providerNames = []string{"anthropic", "openai", "groq", "openrouter", "gemini", "ollama", "mock"}

// defaultModels mirrors llm.DefaultConfig, for placeholder text only.
var defaultModels = map[string]string{
	"anthropic":  "claude-haiku",
	"openai":     "gpt-4o-mini",
	"groq":       "llama-3.3-70b-versatile",
	"openrouter": "google/gemini-2.0-flash-exp",
	"gemini":     "gemini-flash",
	"ollama":     "llama3.1",
}

const verifyTimeout = 15 * time.Second

// SetupScreen collects provider access and candidate materials, then
// builds the session driver and hands off to the interview screen.
type SetupScreen struct {
	store *store.Store
	quick bool

	providerIdx int
	inputs      [rowCount]components.TextInput // rowProvider slot unused

	focus    int // index into visibleRows()
	starting bool
	spinner  components.Spinner
	errMsg   string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup form, pre-filled from flag and environment defaults.
func New(st *store.Store, defaults session.SetupInput, quick bool) *SetupScreen {
	s := &SetupScreen{
		store: st,
		quick: quick,
	}

	for i, name := range providerNames {
		if name == defaults.Provider {
			s.providerIdx = i
			break
		}
	}

	s.inputs[rowModel] = components.NewTextInput("", 120)
	s.inputs[rowKey] = components.NewMaskedInput("sk-...", 256)
	s.inputs[rowEndpoint] = components.NewTextInput("http://localhost:11434", 200)
	s.inputs[rowResume] = components.NewTextInput("~/resume.pdf (blank to skip)", 300)
	s.inputs[rowJob] = components.NewTextInput("~/job-posting.txt (blank to skip)", 300)
	s.inputs[rowField] = components.NewTextInput("e.g. Backend Engineering", 120)
	s.inputs[rowExperience] = components.NewTextInput("e.g. Senior (6-10 yrs)", 120)
	s.inputs[rowFocus] = components.NewTextInput("comma-separated, e.g. system design, leadership", 200)

	s.inputs[rowModel].SetValue(defaults.Model)
	s.inputs[rowKey].SetValue(defaults.APIKey)
	s.inputs[rowEndpoint].SetValue(defaults.Endpoint)
	s.inputs[rowResume].SetValue(defaults.ResumePath)
	s.inputs[rowJob].SetValue(defaults.JobPath)
	s.inputs[rowField].SetValue(defaults.Field)
	s.inputs[rowExperience].SetValue(defaults.Experience)
	s.inputs[rowFocus].SetValue(strings.Join(defaults.Focus, ", "))

	s.refreshModelPlaceholder()
	return s
}

func (s *SetupScreen) refreshModelPlaceholder() {
	if def, ok := defaultModels[providerNames[s.providerIdx]]; ok {
		s.inputs[rowModel].Model.Placeholder = def + " (default)"
	} else {
		s.inputs[rowModel].Model.Placeholder = ""
	}
}

func (s *SetupScreen) Title() string {
	if s.quick {
		return "Quick Session"
	}
	return "Interview Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.starting {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "◂▸", Description: "Provider"},
		{Key: "Enter", Description: "Next"},
		{Key: "Ctrl+S", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	// Focus starts on the provider row; no input is active yet.
	return nil
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !s.starting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case sessionReadyMsg:
		next := sessionscreen.New(msg.driver, msg.state)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case setupFailedMsg:
		s.starting = false
		s.errMsg = msg.err.Error()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.updateFocused(msg)
}

func (s *SetupScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.starting {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "shift+tab":
		return s, s.moveFocus(-1)
	case "down", "tab":
		return s, s.moveFocus(1)
	case "enter":
		if s.focus == len(s.visibleRows())-1 {
			return s.submit()
		}
		return s, s.moveFocus(1)
	case "ctrl+s":
		return s.submit()
	}

	if s.visibleRows()[s.focus] == rowProvider {
		switch msg.String() {
		case "left", "h":
			s.cycleProvider(-1)
		case "right", "l":
			s.cycleProvider(1)
		}
		return s, nil
	}

	return s.updateFocused(msg)
}

// updateFocused forwards a message to the focused text input.
func (s *SetupScreen) updateFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	row := s.visibleRows()[s.focus]
	if row == rowProvider {
		return s, nil
	}
	var cmd tea.Cmd
	s.inputs[row], cmd = s.inputs[row].Update(msg)
	return s, cmd
}

// visibleRows returns the form rows for the current provider and mode,
// in focus order.
func (s *SetupScreen) visibleRows() []int {
	rows := []int{rowProvider, rowModel}
	switch providerNames[s.providerIdx] {
	case "ollama":
		rows = append(rows, rowEndpoint)
	case "mock":
		// no credential
	default:
		rows = append(rows, rowKey)
	}
	if s.quick {
		rows = append(rows, rowField, rowExperience, rowFocus)
	} else {
		rows = append(rows, rowResume, rowJob)
	}
	return rows
}

func (s *SetupScreen) moveFocus(delta int) tea.Cmd {
	vis := s.visibleRows()
	if row := vis[s.focus]; row != rowProvider {
		s.inputs[row].Blur()
	}
	s.focus = (s.focus + delta + len(vis)) % len(vis)
	if row := vis[s.focus]; row != rowProvider {
		return s.inputs[row].Focus()
	}
	return nil
}

func (s *SetupScreen) cycleProvider(delta int) {
	s.providerIdx = (s.providerIdx + delta + len(providerNames)) % len(providerNames)
	s.errMsg = ""
	s.refreshModelPlaceholder()
}

// collect builds the SetupInput from the current form values.
func (s *SetupScreen) collect() session.SetupInput {
	in := session.SetupInput{
		Provider: providerNames[s.providerIdx],
		Model:    strings.TrimSpace(s.inputs[rowModel].Value()),
		APIKey:   strings.TrimSpace(s.inputs[rowKey].Value()),
		Endpoint: strings.TrimSpace(s.inputs[rowEndpoint].Value()),
		Quick:    s.quick,
	}
	if s.quick {
		in.Field = strings.TrimSpace(s.inputs[rowField].Value())
		in.Experience = strings.TrimSpace(s.inputs[rowExperience].Value())
		in.Focus = splitFocus(s.inputs[rowFocus].Value())
	} else {
		in.ResumePath = expandPath(s.inputs[rowResume].Value())
		in.JobPath = expandPath(s.inputs[rowJob].Value())
	}
	return in
}

func (s *SetupScreen) submit() (screen.Screen, tea.Cmd) {
	in := s.collect()
	if err := in.Validate(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.errMsg = ""
	s.starting = true
	s.spinner = components.NewSpinner("Reading materials and checking the provider...")
	return s, tea.Batch(s.spinner.Init(), buildSession(s.store, in))
}

// buildSession extracts materials, builds the provider, and verifies it
// is reachable. Runs off the UI goroutine.
func buildSession(st *store.Store, in session.SetupInput) tea.Cmd {
	return func() tea.Msg {
		profile, err := in.LoadMaterials()
		if err != nil {
			return setupFailedMsg{err: err}
		}

		var llmRepo store.LLMEventRepo
		var sessRepo store.SessionEventRepo
		if st != nil {
			llmRepo = st.EventRepo()
			sessRepo = st.EventRepo()
		}

		provider, err := llm.NewProvider(context.Background(), in.LLMConfig(), llmRepo)
		if err != nil {
			return setupFailedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
		defer cancel()
		if err := llm.VerifyProvider(ctx, provider); err != nil {
			return setupFailedMsg{err: err}
		}

		return sessionReadyMsg{
			driver: session.NewDriver(provider, sessRepo),
			state:  session.NewState(profile),
		}
	}
}

// expandPath resolves a leading ~ against the home directory.
func expandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// splitFocus parses the comma-separated focus areas.
func splitFocus(raw string) []string {
	var areas []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			areas = append(areas, part)
		}
	}
	return areas
}
