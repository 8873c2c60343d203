package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// SectionObserver watches whether a section of a viewport's content, starting
// at a given line and running to the end, is on screen.
type SectionObserver struct {
	viewport *viewport.Model
	line     int
	callback func() tea.Cmd
}

func NewSectionObserver(vp *viewport.Model) *SectionObserver {
	return &SectionObserver{viewport: vp}
}

func (o *SectionObserver) Observe(callback func() tea.Cmd) {
	o.callback = callback
}

func (o *SectionObserver) Disconnect() {
	o.callback = nil
}

func (o *SectionObserver) SetSectionLine(line int) {
	o.line = line
}

func (o *SectionObserver) Visible() bool {
	if o.viewport.Height <= 0 {
		return false
	}
	return o.line < o.viewport.YOffset+o.viewport.Height
}

// Check runs the callback if the section is visible. Call it whenever the
// viewport scrolls, resizes or changes content.
func (o *SectionObserver) Check() tea.Cmd {
	if o.callback == nil || !o.Visible() {
		return nil
	}
	return o.callback()
}
