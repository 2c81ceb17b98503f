package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/vpshub/site/internal/platform/id"
	"github.com/vpshub/site/internal/platform/timeouts"
	apperrors "github.com/vpshub/site/internal/services/web/platform/errors"
	"github.com/vpshub/site/internal/services/web/storage"
)

const tokenPrefix = "mock_token_"

// Config tunes the simulated backend.
type Config struct {
	LoginLatency  time.Duration
	SocialLatency time.Duration
	// Sleep waits for d or until ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
	// Random returns the random segment of fabricated tokens.
	Random func() (string, error)
	Logger *log.Logger
}

// DefaultConfig returns the production latencies.
func DefaultConfig() Config {
	return Config{
		LoginLatency:  timeouts.LoginLatency,
		SocialLatency: timeouts.SocialLoginLatency,
	}
}

// Store reads and writes one visitor's auth state.
type Store struct {
	storage storage.Storage
	cfg     Config
}

// NewStore binds cfg to st. A nil st models a context without browser
// storage: reads are unauthenticated and writes fail.
func NewStore(st storage.Storage, cfg Config) *Store {
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Random == nil {
		cfg.Random = id.NewID
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Store{storage: st, cfg: cfg}
}

// GetAuthState returns the persisted state. A partial or unreadable record is
// cleared and reported as unauthenticated.
func (s *Store) GetAuthState(ctx context.Context) State {
	if s == nil || s.storage == nil {
		return unauthenticated()
	}
	values, err := s.storage.GetMany(ctx, TokenKey, UserKey)
	if err != nil {
		s.cfg.Logger.Printf("auth: read state failed err=%v", err)
		return unauthenticated()
	}
	token, hasToken := values[TokenKey]
	rawUser, hasUser := values[UserKey]
	if !hasToken && !hasUser {
		return unauthenticated()
	}
	if hasToken && hasUser && token != "" {
		var user User
		if err := json.Unmarshal([]byte(rawUser), &user); err == nil {
			return State{User: &user, Token: token, IsAuthenticated: true}
		}
		s.cfg.Logger.Printf("auth: stored user is corrupt, clearing state")
	}
	if err := s.Logout(ctx); err != nil {
		s.cfg.Logger.Printf("auth: clear partial state failed err=%v", err)
	}
	return unauthenticated()
}

// Login accepts any credentials after the simulated latency; the password is
// not checked. The username is the part of identifier before "@".
func (s *Store) Login(ctx context.Context, identifier string, _ string) (Session, error) {
	if err := s.wait(ctx, s.cfg.LoginLatency); err != nil {
		return Session{}, err
	}
	username, _, _ := strings.Cut(identifier, "@")
	return s.persist(ctx, User{Username: username, Email: identifier})
}

// SocialLogin signs in through provider after the simulated latency.
// providerToken is only logged; email defaults to user@<provider>.com.
func (s *Store) SocialLogin(ctx context.Context, provider Provider, providerToken string, email string) (Session, error) {
	if _, err := ParseProvider(string(provider)); err != nil {
		return Session{}, err
	}
	if err := s.wait(ctx, s.cfg.SocialLatency); err != nil {
		return Session{}, err
	}
	if provider == ProviderGoogle && providerToken != "" {
		s.cfg.Logger.Printf("auth: forwarding google token to backend token=%s", redact(providerToken))
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = "user@" + string(provider) + ".com"
	}
	return s.persist(ctx, User{Username: string(provider) + "_user", Email: email})
}

// Logout removes both keys. Removing absent keys is not an error.
func (s *Store) Logout(ctx context.Context) error {
	if s == nil || s.storage == nil {
		return nil
	}
	return s.storage.RemoveMany(ctx, TokenKey, UserKey)
}

func (s *Store) persist(ctx context.Context, user User) (Session, error) {
	if s.storage == nil {
		return Session{}, apperrors.E(apperrors.KindUnavailable, "visitor storage is unavailable")
	}
	token, err := s.newToken()
	if err != nil {
		return Session{}, err
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return Session{}, fmt.Errorf("encode user: %w", err)
	}
	// Both keys land together so a concurrent GetAuthState never sees a
	// partial state and clears it.
	if err := s.storage.SetMany(ctx, map[string]string{TokenKey: token, UserKey: string(payload)}); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return Session{User: user, Token: token}, nil
}

// newToken fabricates mock_token_<random>_<unix millis>.
func (s *Store) newToken() (string, error) {
	random, err := s.cfg.Random()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return tokenPrefix + random + "_" + strconv.FormatInt(s.cfg.Now().UnixMilli(), 10), nil
}

func (s *Store) wait(ctx context.Context, d time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.cfg.Sleep(ctx, d); err != nil {
		return fmt.Errorf("simulated latency: %w", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// redact keeps a short prefix of a credential for log correlation.
func redact(value string) string {
	const keep = 6
	if len(value) <= keep {
		return "***"
	}
	return value[:keep] + "***"
}
