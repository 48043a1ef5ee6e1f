package setup

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Chirchirp/Interview-Coach/internal/ui/theme"
)

var rowLabels = map[int]string{
	rowProvider:   "Provider",
	rowModel:      "Model",
	rowKey:        "API key",
	rowEndpoint:   "Endpoint",
	rowResume:     "Resume",
	rowJob:        "Job posting",
	rowField:      "Field",
	rowExperience: "Experience",
	rowFocus:      "Focus areas",
}

func (s *SetupScreen) View(width, height int) string {
	if s.starting {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.spinner.View())
	}

	var b strings.Builder

	intro := "Point the coach at your documents. Blank fields fall back to a generic session."
	if s.quick {
		intro = "Name a field and the coach plans the interview around it. No documents needed."
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + intro))
	b.WriteString("\n\n")

	vis := s.visibleRows()
	for i, row := range vis {
		focused := i == s.focus

		marker := "    "
		label := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%-12s", rowLabels[row]))
		if focused {
			marker = "  " + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
			label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%-12s", rowLabels[row]))
		}

		var control string
		if row == rowProvider {
			control = s.renderProvider(focused)
		} else {
			control = s.inputs[row].View()
		}

		b.WriteString(marker + label + control + "\n")

		// Keep credential and materials sections visually apart.
		if row == rowModel || rowEndsSection(row) {
			b.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⚠ "+s.errMsg))
		b.WriteString("\n")
	}

	if s.focus == len(vis)-1 {
		b.WriteString("\n")
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Enter starts the interview"))
	}

	content := lipgloss.NewStyle().Padding(1, 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}

func (s *SetupScreen) renderProvider(focused bool) string {
	name := providerNames[s.providerIdx]

	value := "  " + name + "  "
	if focused {
		value = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("◂ "+name+" ▸") +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d/%d", s.providerIdx+1, len(providerNames)))
	} else {
		value = lipgloss.NewStyle().Foreground(theme.Text).Render(value)
	}

	if name == "mock" {
		value += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  canned responses, no key needed")
	}
	return value
}

// rowEndsSection reports whether a blank line should follow the row.
func rowEndsSection(row int) bool {
	return row == rowKey || row == rowEndpoint
}
