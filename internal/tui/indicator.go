package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh/spinner"
)

// Indicator shows progress while a blocking action runs.
type Indicator interface {
	Run(ctx context.Context, title string, action func(context.Context) error) error
}

// SpinnerIndicator renders a transient spinner on the terminal.
type SpinnerIndicator struct{}

var _ Indicator = SpinnerIndicator{}

// Run shows title next to a spinner until action returns.
func (SpinnerIndicator) Run(ctx context.Context, title string, action func(context.Context) error) error {
	return spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Context(ctx).
		ActionWithErr(action).
		Run()
}

// PlainIndicator prints the title once and runs the action.
type PlainIndicator struct {
	Out io.Writer
}

var _ Indicator = PlainIndicator{}

// Run prints "title..." and runs action.
func (p PlainIndicator) Run(ctx context.Context, title string, action func(context.Context) error) error {
	if p.Out != nil {
		fmt.Fprintf(p.Out, "%s...\n", title)
	}
	return action(ctx)
}
