package tryon

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	productRepo "github.com/muhammadheryan/eyewear-store/repository/product"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"go.uber.org/zap"
)

// TryOnApp keeps one compositor per signed-in user.
type TryOnApp interface {
	// Open returns the user's compositor, restoring its state on first use.
	Open(ctx context.Context, userID string) (*Compositor, error)
	Leave(userID string)
	HandleAuthChange(change model.AuthChange)
	Close()
}

type entry struct {
	compositor *Compositor
	lastUsed   time.Time
}

type tryOnAppImpl struct {
	cfg         config.TryOnConfig
	store       kv.Store
	productRepo productRepo.ProductRepository
	httpClient  *http.Client
	now         func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	// one change subscription and one janitor serve every open compositor;
	// both run only while at least one compositor is open
	unsubscribe func()
	stopJanitor context.CancelFunc
}

// NewTryOnApp builds the registry. httpClient may be nil; overlay fetches then
// use a client bounded by the configured fetch timeout.
func NewTryOnApp(cfg config.TryOnConfig, store kv.Store, productRepo productRepo.ProductRepository, httpClient *http.Client) TryOnApp {
	if cfg.BaseWidthPercent <= 0 {
		cfg.BaseWidthPercent = 25
	}
	if cfg.BrightnessThreshold == 0 {
		cfg.BrightnessThreshold = 240
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if httpClient == nil {
		timeout := cfg.FetchTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &tryOnAppImpl{
		cfg:         cfg,
		store:       store,
		productRepo: productRepo,
		httpClient:  httpClient,
		now:         time.Now,
		entries:     make(map[string]*entry),
	}
}

func (s *tryOnAppImpl) Open(ctx context.Context, userID string) (*Compositor, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[userID]; ok {
		e.lastUsed = s.now()
		return e.compositor, nil
	}

	c := &Compositor{
		userID:      userID,
		key:         constant.StorageKey(constant.StorageKeyTryOn, userID),
		cfg:         s.cfg,
		store:       s.store,
		productRepo: s.productRepo,
		httpClient:  s.httpClient,
		overlays:    make(map[string]*cachedOverlay),
	}
	state, err := c.restore(ctx)
	if err != nil {
		return nil, err
	}
	c.state = state

	if len(s.entries) == 0 {
		s.startLocked()
	}
	s.entries[userID] = &entry{compositor: c, lastUsed: s.now()}
	return c, nil
}

// startLocked subscribes to store changes and starts the idle janitor.
func (s *tryOnAppImpl) startLocked() {
	unsubscribe, err := s.store.Subscribe(context.Background(), s.dispatch)
	if err != nil {
		// compositors still work, just without refresh from other views
		logger.Warn("[tryon] err store.Subscribe", zap.String("error", err.Error()))
	}
	s.unsubscribe = unsubscribe

	ctx, cancel := context.WithCancel(context.Background())
	s.stopJanitor = cancel
	go s.janitor(ctx)
}

// stopLocked releases what startLocked acquired. Called once the registry is
// empty.
func (s *tryOnAppImpl) stopLocked() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.stopJanitor != nil {
		s.stopJanitor()
		s.stopJanitor = nil
	}
}

func (s *tryOnAppImpl) dispatch(change kv.Change) {
	userID, ok := strings.CutPrefix(change.Key, constant.StorageKey(constant.StorageKeyTryOn, ""))
	if !ok {
		return
	}

	s.mu.Lock()
	e, ok := s.entries[userID]
	s.mu.Unlock()
	if !ok {
		return
	}

	if err := e.compositor.Reload(context.Background()); err != nil {
		logger.Warn("[tryon] reload after change failed", zap.String("user_id", userID), zap.String("error", err.Error()))
	}
}

func (s *tryOnAppImpl) janitor(ctx context.Context) {
	interval := s.cfg.IdleTimeout / 2
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *tryOnAppImpl) evictIdle() {
	cutoff := s.now().Add(-s.cfg.IdleTimeout)

	s.mu.Lock()
	var idle []*Compositor
	for userID, e := range s.entries {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.compositor)
			delete(s.entries, userID)
		}
	}
	if len(idle) > 0 && len(s.entries) == 0 {
		s.stopLocked()
	}
	s.mu.Unlock()

	for _, c := range idle {
		logger.Debug("[tryon] evicting idle compositor", zap.String("user_id", c.UserID()))
		c.Close()
	}
}

func (s *tryOnAppImpl) Leave(userID string) {
	s.mu.Lock()
	e, ok := s.entries[userID]
	delete(s.entries, userID)
	if ok && len(s.entries) == 0 {
		s.stopLocked()
	}
	s.mu.Unlock()

	if ok {
		e.compositor.Close()
	}
}

func (s *tryOnAppImpl) HandleAuthChange(change model.AuthChange) {
	if change.Event != constant.AuthEventSignedOut {
		return
	}
	s.Leave(change.UserID)
}

func (s *tryOnAppImpl) Close() {
	s.mu.Lock()
	entries := s.entries
	s.entries = make(map[string]*entry)
	s.stopLocked()
	s.mu.Unlock()

	for _, e := range entries {
		e.compositor.Close()
	}
}
