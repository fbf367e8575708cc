package providers

import (
	"context"

	"github.com/samber/do/v2"

	"bible-tui/internal/broadcast"
	"bible-tui/internal/config"
	"bible-tui/internal/scroll"
	"bible-tui/internal/storage"
)

// ChannelHandle closes the sync channel on shutdown.
type ChannelHandle struct {
	broadcast.Channel
}

// Shutdown implements do.Shutdownable.
func (h *ChannelHandle) Shutdown() error {
	return h.Close()
}

// ProvideChannel probes the configured backends once. The result holds for
// the whole session.
func ProvideChannel(i do.Injector) (*ChannelHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)
	store := do.MustInvoke[*storage.Store](i)

	ch := broadcast.Open(context.Background(), broadcast.Options{
		Name:         cfg.ChannelName(broadcast.ChannelName),
		RedisURL:     cfg.Sync.RedisURL,
		ProbeTimeout: cfg.Sync.ProbeTimeout,
		Store:        store,
		Logger:       log.Logger.Logger,
	})
	log.Info("Sync channel open", "backend", ch.Backend())
	return &ChannelHandle{Channel: ch}, nil
}

// SlotHandle is the scroll-target slot. The controller clears the pending
// target when its session ends.
type SlotHandle struct {
	scroll.Slot
	clearOnShutdown bool
}

// Shutdown implements do.Shutdownable.
func (h *SlotHandle) Shutdown() error {
	if !h.clearOnShutdown {
		return nil
	}
	return h.Clear(context.Background())
}

// ProvideScrollSlot keeps the slot next to the channel: in Redis when the
// channel is on Redis, in storage otherwise.
func ProvideScrollSlot(i do.Injector) (*SlotHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	ch := do.MustInvoke[*ChannelHandle](i)

	var slot scroll.Slot
	if r, ok := ch.Channel.(*broadcast.Redis); ok {
		slot = scroll.NewRedisSlot(r.Client(), cfg.ChannelName(broadcast.ChannelName), 0)
	} else {
		slot = scroll.NewStorageSlot(do.MustInvoke[*storage.Store](i))
	}
	return &SlotHandle{Slot: slot, clearOnShutdown: cfg.App.Mode == config.ModeController}, nil
}

// ControllerHandle stops the publisher on shutdown.
type ControllerHandle struct {
	*broadcast.Controller
}

// Shutdown implements do.Shutdownable.
func (h *ControllerHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideController starts the publishing side of the channel.
func ProvideController(i do.Injector) (*ControllerHandle, error) {
	ch := do.MustInvoke[*ChannelHandle](i)
	log := do.MustInvoke[*LoggerHandle](i)

	c := broadcast.NewController(ch.Channel, log.Logger.Logger)
	if err := c.Start(context.Background()); err != nil {
		return nil, err
	}
	return &ControllerHandle{Controller: c}, nil
}
