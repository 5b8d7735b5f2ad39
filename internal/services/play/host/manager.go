// Package host runs many play sessions side by side. Each session owns its
// controller, so sessions never share mutable state.
package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
	"github.com/NickTran11/masterbait/internal/platform/id"
	"github.com/NickTran11/masterbait/internal/platform/random"
	"github.com/NickTran11/masterbait/internal/platform/schedule"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
	"github.com/NickTran11/masterbait/internal/services/play/domain/minigame"
	"github.com/NickTran11/masterbait/internal/services/play/journal"
)

// DefaultSubscriberBuffer is the per-subscriber event backlog.
const DefaultSubscriberBuffer = 64

// Config wires a Manager. Only Catalog is required.
type Config struct {
	Catalog             *catalog.Catalog
	Scheduler           schedule.Scheduler
	Now                 func() time.Time
	Logger              *zap.Logger
	Seed                int64
	CountdownInterval   time.Duration
	DistractionInterval time.Duration
	JournalCapacity     int
	SubscriberBuffer    int
	// NewID overrides session id generation.
	NewID func() (string, error)
}

// Manager owns the live sessions.
type Manager struct {
	cfg Config
	log *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	seq      int64
}

// NewManager builds an empty manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	if cfg.SubscriberBuffer <= 0 {
		cfg.SubscriberBuffer = DefaultSubscriberBuffer
	}
	return &Manager{cfg: cfg, log: cfg.Logger, sessions: make(map[string]*Session)}, nil
}

// Create starts a new session at level 1.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	sessionID, err := m.cfg.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	m.mu.Lock()
	m.seq++
	seed := m.cfg.Seed
	if seed != 0 {
		seed += m.seq * 2
	}
	m.mu.Unlock()

	ctrlRand, err := random.NewSource(seed)
	if err != nil {
		return nil, err
	}
	gameSeed := seed
	if gameSeed != 0 {
		gameSeed++
	}
	gameRand, err := random.NewSource(gameSeed)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:      sessionID,
		Journal: journal.New(m.cfg.JournalCapacity),
		buffer:  m.cfg.SubscriberBuffer,
		rng:     gameRand,
		deck:    minigame.NewDeck(m.cfg.Catalog.Flashcards),
		subs:    make(map[int]chan level.Event),
	}
	ctrl, err := level.NewController(level.Config{
		Catalog:             m.cfg.Catalog,
		Scheduler:           m.cfg.Scheduler,
		Random:              ctrlRand,
		Now:                 m.cfg.Now,
		Listener:            s,
		Logger:              m.log.With(zap.String("session_id", sessionID)),
		CountdownInterval:   m.cfg.CountdownInterval,
		DistractionInterval: m.cfg.DistractionInterval,
	})
	if err != nil {
		return nil, err
	}
	s.Controller = ctrl

	m.mu.Lock()
	m.sessions[sessionID] = s
	m.mu.Unlock()

	m.log.Info("session created", zap.String("session_id", sessionID))
	return s, nil
}

// Get returns the session with id.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeSessionNotFound,
			fmt.Sprintf("session %q not found", sessionID),
			map[string]string{"SessionID": sessionID})
	}
	return s, nil
}

// Close stops the session's level, closes its subscribers and forgets it.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeSessionNotFound,
			fmt.Sprintf("session %q not found", sessionID),
			map[string]string{"SessionID": sessionID})
	}
	s.close()
	m.log.Info("session closed", zap.String("session_id", sessionID))
	return nil
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
	if len(sessions) > 0 {
		m.log.Info("sessions closed", zap.Int("count", len(sessions)))
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
