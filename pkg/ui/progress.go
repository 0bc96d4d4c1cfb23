package ui

import (
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/pterm/pterm"
)

// Progress tracks a known number of steps
type Progress interface {
	Increment()
	Stop()
}

// NewProgress starts a pterm progress bar. When disabled, or when the bar
// cannot start, a no-op Progress is returned.
func NewProgress(title string, total int, enabled bool) Progress {
	if !enabled || total <= 0 {
		return noProgress{}
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		logger := logging.GetLogger("ui")
		logger.Debug().Err(err).Msg("progress bar unavailable")
		return noProgress{}
	}
	return &barProgress{bar: bar}
}

type barProgress struct {
	bar *pterm.ProgressbarPrinter
}

func (p *barProgress) Increment() { p.bar.Increment() }

func (p *barProgress) Stop() { _, _ = p.bar.Stop() }

type noProgress struct{}

func (noProgress) Increment() {}
func (noProgress) Stop()      {}
