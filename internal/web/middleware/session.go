package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	sessionCookieName = "photo_report_session"
	sessionDuration   = 24 * time.Hour
	janitorInterval   = time.Hour
)

// Session identifies one browser working on a draft report. There is no
// login; a session is issued on first contact with the API.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionManager issues and validates signed session cookies. Sessions and
// the drafts keyed by them live in memory only; restarting the server drops
// them all.
type SessionManager struct {
	secret   []byte
	sessions map[string]*Session
	mu       sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
	expired  func(sessionID string)
}

// NewSessionManager creates a session manager. An empty secret gets replaced
// by a random per-process key, which invalidates cookies across restarts.
func NewSessionManager(secret string) *SessionManager {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("failed to generate session secret: " + err.Error())
		}
	}
	sm := &SessionManager{
		secret:   key,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go sm.janitor()
	return sm
}

// OnExpire registers a callback invoked with the ID of every session removed
// by expiry, so dependent state can be dropped alongside it.
func (sm *SessionManager) OnExpire(fn func(sessionID string)) {
	sm.mu.Lock()
	sm.expired = fn
	sm.mu.Unlock()
}

// Ensure returns the request's session, creating one and setting its cookie
// when the request carries none.
func (sm *SessionManager) Ensure(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if session := sm.GetSessionFromRequest(r); session != nil {
		return session, nil
	}
	session, err := sm.CreateSession()
	if err != nil {
		return nil, err
	}
	sm.SetSessionCookie(w, session)
	return session, nil
}

// CreateSession creates and stores a new session.
func (sm *SessionManager) CreateSession() (*Session, error) {
	idBytes := make([]byte, 32)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, err
	}
	session := &Session{
		ID:        base64.URLEncoding.EncodeToString(idBytes),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(sessionDuration),
	}

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by ID, treating expired sessions as absent.
func (sm *SessionManager) GetSession(sessionID string) *Session {
	sm.mu.RLock()
	session, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		sm.DeleteSession(sessionID)
		return nil
	}
	return session
}

// DeleteSession removes a session and notifies the expiry callback.
func (sm *SessionManager) DeleteSession(sessionID string) {
	sm.mu.Lock()
	_, existed := sm.sessions[sessionID]
	delete(sm.sessions, sessionID)
	fn := sm.expired
	sm.mu.Unlock()

	if existed && fn != nil {
		fn(sessionID)
	}
}

// SetSessionCookie sets the signed session cookie on the response.
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, session *Session) {
	cookieValue := session.ID + "." + sm.signData(session.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionDuration.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// GetSessionFromRequest extracts a valid session from the signed cookie or,
// for non-browser clients, from a bearer token carrying the session ID.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) *Session {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		parts := strings.SplitN(cookie.Value, ".", 2)
		if len(parts) == 2 && sm.verifySignature(parts[0], parts[1]) {
			if session := sm.GetSession(parts[0]); session != nil {
				return session
			}
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if session := sm.GetSession(strings.TrimPrefix(authHeader, "Bearer ")); session != nil {
			return session
		}
	}

	return nil
}

// Stop terminates the expiry janitor.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() { close(sm.stop) })
}

// janitor drops expired sessions periodically so abandoned drafts do not
// accumulate for longer than the session lifetime.
func (sm *SessionManager) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sm.stop:
			return
		case <-ticker.C:
			sm.mu.RLock()
			var expired []string
			now := time.Now()
			for id, session := range sm.sessions {
				if now.After(session.ExpiresAt) {
					expired = append(expired, id)
				}
			}
			sm.mu.RUnlock()

			for _, id := range expired {
				sm.DeleteSession(id)
			}
		}
	}
}

func (sm *SessionManager) signData(data string) string {
	h := hmac.New(sha256.New, sm.secret)
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

func (sm *SessionManager) verifySignature(data, signature string) bool {
	expected := sm.signData(data)
	return hmac.Equal([]byte(signature), []byte(expected))
}
