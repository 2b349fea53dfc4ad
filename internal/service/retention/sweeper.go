package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/internal/storage/sessionlog"
	"github.com/sandevgo/medagent/pkg/log"
)

// Sweeper enforces the session retention policy: only the newest keep
// sessions survive, both in the index and on disk. Without it the log
// directory grows without bound.
type Sweeper struct {
	index    core.SessionIndex
	logs     *sessionlog.Writer
	keep     int
	interval time.Duration
	done     chan struct{}
}

func NewSweeper(index core.SessionIndex, logs *sessionlog.Writer, keep int, interval time.Duration) *Sweeper {
	return &Sweeper{
		index:    index,
		logs:     logs,
		keep:     keep,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start sweeps once immediately, then on every tick until the context is
// cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Int("keep", s.keep).Dur("interval", s.interval).Msg("starting retention sweeper")

	if err := s.Sweep(ctx); err != nil {
		logger.Error().Err(err).Msg("retention sweep failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			close(s.done)
			return nil
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				logger.Error().Err(err).Msg("retention sweep failed")
			}
		}
	}
}

func (s *Sweeper) Shutdown(ctx context.Context) error {
	select {
	case <-s.done:
	case <-ctx.Done():
	}
	return nil
}

// Sweep removes every session beyond the newest keep entries: log files
// first, then the index row, so a crash between the two leaves a row that
// the next sweep retries.
func (s *Sweeper) Sweep(ctx context.Context) error {
	expired, err := s.index.ListBeyond(ctx, s.keep)
	if err != nil {
		return fmt.Errorf("failed to list expired sessions: %w", err)
	}

	logger := log.FromCtx(ctx)
	for _, entry := range expired {
		if err := s.logs.Remove(entry.SessionID); err != nil {
			logger.Error().Err(err).Str("session", entry.SessionID).Msg("failed to remove session logs")
			continue
		}
		if err := s.index.Delete(ctx, entry.SessionID); err != nil {
			logger.Error().Err(err).Str("session", entry.SessionID).Msg("failed to delete session index row")
			continue
		}
		logger.Debug().Str("session", entry.SessionID).Msg("swept expired session")
	}
	if len(expired) > 0 {
		logger.Info().Int("swept", len(expired)).Msg("retention sweep complete")
	}
	return nil
}
