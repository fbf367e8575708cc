package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bible-tui/internal/broadcast"
	"bible-tui/internal/id"
)

const streamBuffer = 16

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if ctx.Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		s.logger.Error("failed to flush headers", "error", err)
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientID, err := id.Generate("sse")
	if err != nil {
		http.Error(w, "Failed to establish connection", http.StatusInternalServerError)
		return
	}
	logger := s.logger.With(slog.String("client_id", clientID))

	events := make(chan broadcast.Snapshot, streamBuffer)
	recv := broadcast.NewReceiver(relay{Memory: s.hub, upstream: s.upstream}, s.lastSnapshot(), logger)
	detach, err := recv.Attach(ctx, func(snap broadcast.Snapshot) {
		select {
		case events <- snap:
		default:
			logger.Warn("stream client too slow, dropping snapshot")
		}
	})
	if err != nil {
		logger.Error("failed to attach stream client", "error", err)
		http.Error(w, "Failed to establish connection", http.StatusInternalServerError)
		return
	}
	s.connect(clientID)
	defer func() {
		detach()
		s.disconnect(clientID)
		logger.Info("stream client released")
	}()

	if err := s.sendEvent(w, rc, "connected", map[string]string{
		"client_id": clientID,
		"backend":   string(s.upstream.Backend()),
	}); err != nil {
		return
	}
	if current := recv.Current(); current.Complete() {
		if err := s.sendEvent(w, rc, "snapshot", current); err != nil {
			return
		}
	}

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case snap := <-events:
			if err := s.sendEvent(w, rc, "snapshot", snap); err != nil {
				logger.Info("client disconnected during send")
				return
			}
		case t := <-heartbeat.C:
			if err := s.sendEvent(w, rc, "heartbeat", map[string]int64{"time": t.UnixMilli()}); err != nil {
				logger.Info("client disconnected during heartbeat")
				return
			}
		case <-s.done:
			logger.Info("stream closed by server shutdown")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) sendEvent(w http.ResponseWriter, rc *http.ResponseController, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return rc.Flush()
}

func (s *Server) connect(clientID string) {
	s.mu.Lock()
	s.clients[clientID] = time.Now()
	n := len(s.clients)
	s.mu.Unlock()
	s.logger.Info("stream client connected", "client_id", clientID, "clients", n)
}

func (s *Server) disconnect(clientID string) {
	s.mu.Lock()
	delete(s.clients, clientID)
	s.mu.Unlock()
}
