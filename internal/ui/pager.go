package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"valu/internal/portfolio"
	"valu/internal/ui/views"
)

// historyPagerMsg carries the result of a pager run
type historyPagerMsg struct {
	err error
}

// pauseRenderingMsg signals that an external pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals that the pager has exited
type resumeRenderingMsg struct{}

// RenderHistory renders the transaction ledger and value history as plain
// text for the pager and the history command.
func RenderHistory(p *portfolio.Portfolio) string {
	var b strings.Builder
	b.WriteString("Recent transactions\n\n")
	for _, tx := range p.Transactions {
		fmt.Fprintf(&b, "  %-12s %-22s %-10s %10s\n", tx.Date, tx.Title, tx.Kind, views.FormatAmount(tx.Amount))
	}

	b.WriteString("\nPortfolio value\n\n")
	for _, pt := range p.History {
		fmt.Fprintf(&b, "  %-10s %12s\n", pt.Date.Format("Jan 2006"), portfolio.FormatUSD(int(pt.Value)))
	}

	fmt.Fprintf(&b, "\nTotal value %s, cost %s, gain %s\n",
		portfolio.FormatUSD(p.TotalValue()),
		portfolio.FormatUSD(p.TotalCost()),
		portfolio.FormatSigned(p.Gain()))
	return b.String()
}

// RunPager shows content in ov. The caller owns the terminal while it runs.
func RunPager(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// terminal is the part of tea.Program the pager needs
type terminal interface {
	ReleaseTerminal() error
	RestoreTerminal() error
	Send(msg tea.Msg)
}

// PagerOps hands the terminal to ov and takes it back afterwards
type PagerOps struct {
	program terminal
	run     func(io.Reader) error
}

// NewPagerOps creates pager operations bound to program
func NewPagerOps(program terminal) *PagerOps {
	return &PagerOps{program: program, run: RunPager}
}

// Show runs the pager over content
func (o *PagerOps) Show(content string) error {
	if o.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// ov needs a moment to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = o.program.RestoreTerminal()
	}()

	return o.run(strings.NewReader(content))
}

// showHistory returns a command that pauses rendering around the pager
func (o *PagerOps) showHistory(content string) tea.Cmd {
	return func() tea.Msg {
		o.program.Send(pauseRenderingMsg{})
		err := o.Show(content)
		o.program.Send(resumeRenderingMsg{})
		return historyPagerMsg{err: err}
	}
}
