package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database/tokens"
)

// TokenCleanupScheduler periodically removes expired bearer tokens. Expired
// tokens are already rejected at authentication time; this keeps the table
// from growing without bound.
type TokenCleanupScheduler struct {
	tokens *tokens.Repository
	cfg    config.Config

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewTokenCleanupScheduler creates a new scheduler instance.
func NewTokenCleanupScheduler(repo *tokens.Repository, cfg config.Config) *TokenCleanupScheduler {
	return &TokenCleanupScheduler{
		tokens: repo,
		cfg:    cfg,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled and tokens expire at all.
func (s *TokenCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.TokenCleanup.Enabled {
		log.Printf("Token cleanup scheduler: disabled")
		return nil
	}

	if s.cfg.Auth.TokenExpiry <= 0 {
		log.Printf("Token cleanup scheduler: tokens never expire, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.TokenCleanup.Schedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule token cleanup: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Token cleanup scheduler: started with schedule '%s'", s.cfg.TokenCleanup.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *TokenCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Token cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *TokenCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow triggers an immediate cleanup pass.
func (s *TokenCleanupScheduler) RunNow() {
	s.runCleanup()
}

func (s *TokenCleanupScheduler) runCleanup() {
	cutoff := time.Now().Add(-s.cfg.Auth.TokenExpiry)

	deleted, err := s.tokens.DeleteCreatedBefore(cutoff)
	if err != nil {
		log.Printf("Token cleanup: failed to delete expired tokens: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("Token cleanup: removed %d expired token(s)", deleted)
	}
}
