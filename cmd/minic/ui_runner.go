package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"minic/internal/driver"
	"minic/internal/ui"
)

type checkOutcome struct {
	results []*driver.Result
	err     error
}

func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options, jobs int) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CompileFiles(ctx, files, opts, jobs)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
