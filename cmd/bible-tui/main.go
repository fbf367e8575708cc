// Command bible-tui is a bilingual Bible reader. The default mode is the
// controller; -display runs a passive surface that mirrors it and -serve runs
// the HTTP relay.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/do/v2"

	"bible-tui/internal/api"
	"bible-tui/internal/config"
	"bible-tui/internal/di"
	"bible-tui/internal/di/providers"
	"bible-tui/internal/settings"
	"bible-tui/internal/ui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}

	injector := di.NewContainer(cfg)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	switch cfg.App.Mode {
	case config.ModeDisplay:
		err = runDisplay(ctx, injector)
	case config.ModeServe:
		err = runServe(ctx, injector)
	default:
		err = runController(ctx, injector)
	}
	stop()

	if log, logErr := do.Invoke[*providers.LoggerHandle](injector); logErr == nil {
		if err != nil {
			log.Error("bible-tui exited with error", "error", err)
		}
		if shutdownErr := injector.Shutdown(); shutdownErr != nil {
			log.Error("Shutdown error", "error", shutdownErr)
		}
	} else {
		_ = injector.Shutdown()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runController(ctx context.Context, injector do.Injector) error {
	log := do.MustInvoke[*providers.LoggerHandle](injector)
	ch := do.MustInvoke[*providers.ChannelHandle](injector)

	m := ui.NewModel(ui.Deps{
		Context:   ctx,
		Client:    do.MustInvoke[*api.Client](injector),
		Settings:  do.MustInvoke[*settings.Store](injector),
		Publisher: do.MustInvoke[*providers.ControllerHandle](injector).Controller,
		Channel:   ch.Channel,
		Slot:      do.MustInvoke[*providers.SlotHandle](injector).Slot,
		Logger:    log.Logger.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func runDisplay(ctx context.Context, injector do.Injector) error {
	log := do.MustInvoke[*providers.LoggerHandle](injector)

	m, err := ui.NewPopup(ui.PopupDeps{
		Context:  ctx,
		Source:   do.MustInvoke[*api.Client](injector),
		Channel:  do.MustInvoke[*providers.ChannelHandle](injector).Channel,
		Slot:     do.MustInvoke[*providers.SlotHandle](injector).Slot,
		Settings: do.MustInvoke[*settings.Store](injector),
		Logger:   log.Logger.Logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func runServe(ctx context.Context, injector do.Injector) error {
	log := do.MustInvoke[*providers.LoggerHandle](injector)
	srv := do.MustInvoke[*providers.HTTPServerHandle](injector)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP relay listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down relay gracefully...")
		return nil
	}
}
