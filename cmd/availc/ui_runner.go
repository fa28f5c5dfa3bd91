package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"availc/internal/driver"
	"availc/internal/ui"
)

type checkOutcome struct {
	result *driver.CheckResult
	err    error
}

// runCheckWithUI runs driver.Check over paths while a Bubble Tea view
// renders the per-file progress of files on w.
func runCheckWithUI(ctx context.Context, w io.Writer, title string, paths, files []string, opts driver.Options) (*driver.CheckResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = func(ev driver.ProgressEvent) { events <- ev }
		res, err := driver.Check(ctx, paths, opts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(w), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// программа могла выйти раньше (ctrl+c), дочитываем события
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
