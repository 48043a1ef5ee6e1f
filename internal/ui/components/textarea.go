package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TextArea wraps bubbles/textarea for multi-line answer entry.
type TextArea struct {
	Model textarea.Model
}

// NewTextArea creates a new styled multi-line input.
func NewTextArea(placeholder string, charLimit, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	if charLimit > 0 {
		ta.CharLimit = charLimit
	}
	ta.SetWidth(width)
	ta.SetHeight(height)

	return TextArea{Model: ta}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text area.
func (t TextArea) View() string {
	return t.Model.View()
}

// Value returns the current contents.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// SetValue replaces the current contents.
func (t *TextArea) SetValue(v string) {
	t.Model.SetValue(v)
}

// Reset clears the contents.
func (t *TextArea) Reset() {
	t.Model.Reset()
}

// Focus gives the area keyboard focus.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextArea) Blur() {
	t.Model.Blur()
}

// Focused reports whether the area has keyboard focus.
func (t TextArea) Focused() bool {
	return t.Model.Focused()
}

// SetSize resizes the visible editing region.
func (t *TextArea) SetSize(width, height int) {
	t.Model.SetWidth(width)
	t.Model.SetHeight(height)
}
