package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"bible-tui/internal/api"
	"bible-tui/internal/config"
	"bible-tui/internal/httpapi"
)

// RelayHandle detaches the relay from the channel on shutdown.
type RelayHandle struct {
	*httpapi.Server
}

// ProvideRelay builds the HTTP relay and subscribes it to the channel.
func ProvideRelay(i do.Injector) (*RelayHandle, error) {
	client := do.MustInvoke[*api.Client](i)
	ch := do.MustInvoke[*ChannelHandle](i)
	log := do.MustInvoke[*LoggerHandle](i)

	s := httpapi.NewServer(client, ch.Channel, log.Logger.Logger)
	if err := s.Start(context.Background()); err != nil {
		return nil, err
	}
	return &RelayHandle{Server: s}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the relay's HTTP server. The caller starts it.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	relay := do.MustInvoke[*RelayHandle](i)

	return &HTTPServerHandle{Server: &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           relay,
		ReadHeaderTimeout: 10 * time.Second,
	}}, nil
}
