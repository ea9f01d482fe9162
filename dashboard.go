package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"valu/internal/eventbus"
	"valu/internal/ui"
)

// forwardedEvents reach the UI as ui.EventMsg
var forwardedEvents = []eventbus.EventType{
	eventbus.EventSlideChanged,
	eventbus.EventLikeToggled,
	eventbus.EventStoreSaved,
	eventbus.EventError,
}

func (a *app) runDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()

	p, err := a.loadPortfolio(cmd)
	if err != nil {
		return err
	}

	// Query the background before bubbletea owns stdin.
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	zones := ui.NewZones()
	defer zones.Close()

	model, err := ui.NewModel(ui.Deps{
		Bus:           a.bus,
		Config:        a.cfg,
		Portfolio:     p,
		Market:        a.marketService(),
		Logger:        a.logger,
		Zones:         zones,
		RendererStyle: style,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(program)

	// Handlers only enqueue; one goroutine sends to the program.
	events := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case events <- e:
		default:
			a.logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
		}
	}
	for _, t := range forwardedEvents {
		unsubscribe := a.bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case e := <-events:
				program.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()

	a.logger.Info("starting dashboard",
		zap.Int("assets", len(p.Assets)),
		zap.Bool("ephemeral", a.opts.ephemeral))
	_, err = program.Run()
	close(done)
	if err != nil {
		a.logger.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("dashboard exited normally")
	return nil
}
