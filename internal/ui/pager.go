package ui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/noborus/ov/oviewer"
)

// Pager shows long text outside the TUI
type Pager interface {
	Show(title, content string) error
}

// OvPager pages text with the ov library, suspending the Bubble Tea program
// while it runs
type OvPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewOvPager creates a pager; SetProgram must be called before Show
func NewOvPager() *OvPager {
	return &OvPager{}
}

// SetProgram sets the program whose terminal is released while paging
func (p *OvPager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages content using ov
func (p *OvPager) Show(title, content string) error {
	if p.program == nil {
		return errors.New("pager: program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(title + "\n\n" + content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}

// Clipboard writes text to the system clipboard
type Clipboard func(text string) error

// SystemClipboard uses the platform clipboard
func SystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// pagerCmd runs the pager off the update loop and reports back
func pagerCmd(p Pager, title, content string) tea.Cmd {
	return func() tea.Msg {
		return pagerDoneMsg{err: p.Show(title, content)}
	}
}

// copyCmd copies text and reports back
func copyCmd(c Clipboard, text string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{err: c(text)}
	}
}
