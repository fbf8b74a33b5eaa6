// Package session keeps the authenticated identity and pending flash notices
// in an HS256-signed cookie. Nothing is stored server side.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"TravelPlanner_WebProject/internal/models"
)

const (
	DefaultCookieName = "session"
	DefaultMaxAge     = 24 * time.Hour
	issuer            = "travelplanner-web"
)

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashDanger  = "danger"
)

var ErrInvalidToken = errors.New("invalid session token")

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the per-request view of the cookie contents.
type Session struct {
	ID        string
	UserID    string
	UserName  string
	UserEmail string
	Flashes   []Flash
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// Login records user as the session identity. The session ID is rotated on
// the next save.
func (s *Session) Login(user *models.User) {
	s.ID = ""
	s.UserID = user.ID
	s.UserName = user.Name
	s.UserEmail = user.Email
}

// Clear drops the identity and any pending flashes.
func (s *Session) Clear() {
	*s = Session{}
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns the pending flashes and empties the queue.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

func (s *Session) empty() bool {
	return !s.Authenticated() && len(s.Flashes) == 0
}

// Claims is the signed cookie payload.
type Claims struct {
	UserID    string  `json:"uid,omitempty"`
	UserName  string  `json:"name,omitempty"`
	UserEmail string  `json:"email,omitempty"`
	Flashes   []Flash `json:"flashes,omitempty"`
	jwt.RegisteredClaims
}

// Store encodes sessions into cookies and back.
type Store struct {
	secret     []byte
	cookieName string
	maxAge     time.Duration
	secure     bool
	now        func() time.Time
}

type Option func(*Store)

func WithMaxAge(d time.Duration) Option {
	return func(s *Store) { s.maxAge = d }
}

func WithSecure(secure bool) Option {
	return func(s *Store) { s.secure = secure }
}

func WithCookieName(name string) Option {
	return func(s *Store) { s.cookieName = name }
}

// NewStore returns a store signing cookies with secret.
func NewStore(secret string, opts ...Option) *Store {
	s := &Store{
		secret:     []byte(secret),
		cookieName: DefaultCookieName,
		maxAge:     DefaultMaxAge,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the session cookie from r. A missing, expired or tampered
// cookie yields an empty session.
func (s *Store) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}
	sess, err := s.Decode(cookie.Value)
	if err != nil {
		return &Session{}
	}
	return sess
}

// Save writes sess to w as a cookie, or expires the cookie when the session
// holds nothing.
func (s *Store) Save(w http.ResponseWriter, sess *Session) error {
	if sess.empty() {
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
		return nil
	}

	token, err := s.Encode(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		Expires:  s.now().Add(s.maxAge),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Encode signs sess into a token string.
func (s *Store) Encode(sess *Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	now := s.now()
	claims := &Claims{
		UserID:    sess.UserID,
		UserName:  sess.UserName,
		UserEmail: sess.UserEmail,
		Flashes:   sess.Flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns the session it carries.
func (s *Store) Decode(token string) (*Session, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Issuer != issuer {
		return nil, ErrInvalidToken
	}

	return &Session{
		ID:        claims.ID,
		UserID:    claims.UserID,
		UserName:  claims.UserName,
		UserEmail: claims.UserEmail,
		Flashes:   claims.Flashes,
	}, nil
}
