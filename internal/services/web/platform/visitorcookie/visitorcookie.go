// Package visitorcookie issues and verifies the signed cookie that identifies
// one browser across requests.
package visitorcookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vpshub/site/internal/platform/id"
	"github.com/vpshub/site/internal/services/web/platform/requestmeta"
)

// Name is the visitor cookie name.
const Name = "vpshub_visitor"

const (
	issuer        = "vpshub-web"
	defaultMaxAge = 365 * 24 * time.Hour
	minSecretLen  = 16
)

// ErrInvalid reports a cookie that failed signature or claim validation.
var ErrInvalid = errors.New("visitor cookie is invalid")

// Config controls cookie signing.
type Config struct {
	Secret string
	MaxAge time.Duration
	Policy requestmeta.SchemePolicy
	Now    func() time.Time
	NewID  func() (string, error)
}

// Codec signs visitor ids into HS256 tokens and reads them back.
type Codec struct {
	secret []byte
	maxAge time.Duration
	policy requestmeta.SchemePolicy
	now    func() time.Time
	newID  func() (string, error)
}

// New validates cfg and returns a Codec.
func New(cfg Config) (*Codec, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("visitor cookie secret must be at least %d bytes", minSecretLen)
	}
	c := &Codec{
		secret: []byte(secret),
		maxAge: cfg.MaxAge,
		policy: cfg.Policy,
		now:    cfg.Now,
		newID:  cfg.NewID,
	}
	if c.maxAge <= 0 {
		c.maxAge = defaultMaxAge
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = id.NewID
	}
	return c, nil
}

// Encode signs visitorID.
func (c *Codec) Encode(visitorID string) (string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return "", errors.New("visitor id is required")
	}
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign visitor cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns the visitor id it carries.
func (c *Codec) Decode(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalid)
	}
	return claims.Subject, nil
}

// Read returns the visitor id from a valid cookie on r.
func (c *Codec) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	visitorID, err := c.Decode(cookie.Value)
	if err != nil {
		return "", false
	}
	return visitorID, true
}

// Ensure returns the visitor id on r, issuing a fresh cookie when the request
// carries none or an invalid one.
func (c *Codec) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if visitorID, ok := c.Read(r); ok {
		return visitorID, nil
	}
	visitorID, err := c.newID()
	if err != nil {
		return "", fmt.Errorf("generate visitor id: %w", err)
	}
	if err := c.Write(w, r, visitorID); err != nil {
		return "", err
	}
	return visitorID, nil
}

// Write sets the signed cookie for visitorID.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, visitorID string) error {
	if w == nil {
		return nil
	}
	value, err := c.Encode(visitorID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge / time.Second),
		HttpOnly: true,
		Secure:   c.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
