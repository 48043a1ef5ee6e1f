package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Chirchirp/Interview-Coach/internal/router"
	"github.com/Chirchirp/Interview-Coach/internal/screen"
	"github.com/Chirchirp/Interview-Coach/internal/screens/history"
	"github.com/Chirchirp/Interview-Coach/internal/screens/setup"
	"github.com/Chirchirp/Interview-Coach/internal/session"
	"github.com/Chirchirp/Interview-Coach/internal/store"
	"github.com/Chirchirp/Interview-Coach/internal/ui/components"
)

// Deps carries what the home screen and everything reachable from it need.
type Deps struct {
	Store    *store.Store
	Defaults session.SetupInput
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string

	completed int
	avgScore  int
	answered  int
	hasKey    bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Lifetime stats come from the event store;
// a missing or failing store just zeroes them out.
func New(deps Deps) *HomeScreen {
	var completed, avgScore, answered int
	if deps.Store != nil {
		summaries, _ := deps.Store.EventRepo().QuerySessionSummaries(context.Background(), store.QueryOpts{})
		scoreSum := 0
		for _, s := range summaries {
			answered += s.QuestionsAnswered
			if s.Kind == store.SessionCompleted {
				completed++
				scoreSum += s.OverallScore
			}
		}
		if completed > 0 {
			avgScore = scoreSum / completed
		}
	}

	menuLabels := []string{"START INTERVIEW", "QUICK SESSION", "SESSION HISTORY", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(deps.Store, deps.Defaults, false)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(deps.Store, deps.Defaults, true)}
			}
		}},
		{Label: menuLabels[2], Disabled: deps.Store == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Store)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		completed:  completed,
		avgScore:   avgScore,
		answered:   answered,
		hasKey:     deps.Defaults.APIKey != "",
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := contentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	sections = append(sections, renderStatsBar(
		h.completed, h.avgScore, h.answered, cw, compact))

	disabled := map[int]bool{}
	for i, item := range h.menu.Items {
		if item.Disabled {
			disabled[i] = true
		}
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, disabled))
	}

	if !h.hasKey {
		sections = append(sections, renderKeyTip(cw))
	}

	content := strings.Join(sections, "\n\n")

	return renderHomeFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
