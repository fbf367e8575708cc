package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn after another connection commits to the store. It wakes on
// file events for the database and its WAL and on a polling ticker, and
// filters wake-ups with PRAGMA data_version, so notifications can coalesce
// but never fire without a commit. The baseline is taken before Watch
// returns. Call stop, or cancel ctx, to end watching.
func (s *Store) Watch(ctx context.Context, fn func()) (stop func(), err error) {
	ctx, cancel := context.WithCancel(ctx)

	conn, err := s.db.Conn(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("reserve watch connection: %w", err)
	}

	version, err := dataVersion(ctx, conn)
	if err != nil {
		conn.Close()
		cancel()
		return nil, err
	}

	// File events are an optimisation; polling still works without them.
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("fsnotify unavailable, polling only", "error", err)
		fw = nil
	} else if err := fw.Add(filepath.Dir(s.path)); err != nil {
		s.logger.Warn("failed to watch store dir, polling only", "path", s.path, "error", err)
		fw.Close()
		fw = nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer conn.Close()
		if fw != nil {
			defer fw.Close()
		}
		s.watchLoop(ctx, conn, fw, version, fn)
	}()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
	return stop, nil
}

func (s *Store) watchLoop(ctx context.Context, conn *sql.Conn, fw *fsnotify.Watcher, version int64, fn func()) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	var events <-chan fsnotify.Event
	var errs <-chan error
	if fw != nil {
		events = fw.Events
		errs = fw.Errors
	}
	base := filepath.Base(s.path)

	check := func() {
		v, err := dataVersion(ctx, conn)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("data_version check failed", "error", err)
			}
			return
		}
		if v != version {
			version = v
			fn()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if strings.HasPrefix(filepath.Base(ev.Name), base) && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				check()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.logger.Debug("fsnotify error", "error", err)
		case <-ticker.C:
			check()
		}
	}
}

func dataVersion(ctx context.Context, conn *sql.Conn) (int64, error) {
	var v int64
	if err := conn.QueryRowContext(ctx, "PRAGMA data_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read data_version: %w", err)
	}
	return v, nil
}
