package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"invoice_idor/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionNotFound = errors.New("session not found")
)

// SessionManager keeps sessions in process memory. The cookie carries an
// HS256 token whose jti is the session id; the signature ties it to the
// configured secret. Sessions never expire on their own.
type SessionManager struct {
	secret []byte
	now    func() time.Time
	newID  func() string

	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{
		secret:   []byte(secret),
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]models.Session),
	}
}

// CreateOrReuse returns the live session named by cookie. When the cookie
// is missing, forged, or names a destroyed session, a new anonymous session
// is created and its signed token returned for the caller to set.
// The returned token is empty when the existing cookie is still good.
func (m *SessionManager) CreateOrReuse(cookie string) (models.Session, string, error) {
	if cookie != "" {
		if id, err := m.ParseToken(cookie); err == nil {
			if s, ok := m.Session(id); ok {
				return s, "", nil
			}
		}
	}

	s := models.NewSession(m.newID(), m.now())
	token, err := m.issueToken(s.ID)
	if err != nil {
		return models.Session{}, "", err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, token, nil
}

// Authenticate binds userID to the session.
func (m *SessionManager) Authenticate(sessionID string, userID int) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	s = s.Login(userID)
	m.sessions[sessionID] = s
	return s, nil
}

func (m *SessionManager) IsAuthenticated(sessionID string) bool {
	s, ok := m.Session(sessionID)
	return ok && s.IsAuthenticated()
}

func (m *SessionManager) Session(sessionID string) (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// Destroy invalidates the session. Its token will no longer resolve.
func (m *SessionManager) Destroy(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

// ParseToken verifies a cookie token and returns the session id it names.
func (m *SessionManager) ParseToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

func (m *SessionManager) issueToken(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		ID:       sessionID,
		IssuedAt: jwt.NewNumericDate(m.now()),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
