package api

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	SessionCookieName = "courtside_session"

	// Sessions outlive a match comfortably.
	SessionDuration = 6 * time.Hour

	CookieSecure   = false // behind HTTPS set to true
	CookieHTTPOnly = true
	CookieSameSite = http.SameSiteLaxMode
)

// Session is one authenticated scorekeeper session.
type Session struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionManager authenticates scorekeepers with a shared password and
// HMAC-signed session cookies. When the password is empty, every
// mutating route is open; that is the normal mode on a closed LAN.
type SessionManager struct {
	mu sync.RWMutex

	sessions map[string]*Session
	secret   []byte
	password string
}

// NewSessionManager creates a session manager with the given shared
// password.
func NewSessionManager(password string) *SessionManager {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Printf("⚠️ Failed to generate session secret, using fallback")
		secret = []byte("courtside-fallback-session-key-32")
	}

	sm := &SessionManager{
		sessions: make(map[string]*Session),
		secret:   secret,
		password: password,
	}
	go sm.cleanupExpiredSessions()
	return sm
}

// HandleLogin checks the shared password and issues a session cookie.
func (sm *SessionManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(sm.password)) != 1 {
		writeError(w, "wrong password", http.StatusUnauthorized)
		return
	}

	sessionID := generateSessionID()
	session := &Session{
		Name:      req.Name,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(SessionDuration),
	}

	sm.mu.Lock()
	sm.sessions[sessionID] = session
	sm.mu.Unlock()

	log.Printf("🔐 Scorekeeper session created for %q", req.Name)
	sm.SetSessionCookie(w, sessionID)
	writeJSON(w, map[string]interface{}{
		"name":      session.Name,
		"expiresAt": session.ExpiresAt.Unix(),
	})
}

// Middleware requires a valid session on every request it wraps. With
// an empty password the manager is a pass-through.
func (sm *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sm.password == "" {
			next.ServeHTTP(w, r)
			return
		}
		if sm.ValidateSession(r) == nil {
			writeError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateSession checks the request's session cookie.
func (sm *SessionManager) ValidateSession(r *http.Request) *Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	sessionID, err := sm.decodeCookie(cookie.Value)
	if err != nil {
		return nil
	}
	return sm.getSession(sessionID)
}

func (sm *SessionManager) getSession(sessionID string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[sessionID]
	if !exists || time.Now().After(session.ExpiresAt) {
		return nil
	}
	return session
}

// HandleLogout clears the session.
func (sm *SessionManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if sessionID, err := sm.decodeCookie(cookie.Value); err == nil {
			sm.mu.Lock()
			delete(sm.sessions, sessionID)
			sm.mu.Unlock()
		}
	}
	sm.ClearSessionCookie(w)
	writeJSON(w, map[string]bool{"loggedOut": true})
}

// SetSessionCookie sets the signed session cookie.
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sm.encodeCookie(sessionID),
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: CookieHTTPOnly,
		Secure:   CookieSecure,
		SameSite: CookieSameSite,
	})
}

// ClearSessionCookie removes the session cookie.
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: CookieHTTPOnly,
		Secure:   CookieSecure,
		SameSite: CookieSameSite,
	})
}

func (sm *SessionManager) encodeCookie(sessionID string) string {
	mac := hmac.New(sha256.New, sm.secret)
	mac.Write([]byte(sessionID))
	signature := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(sessionID + "." + signature))
}

func (sm *SessionManager) decodeCookie(cookieValue string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(cookieValue)
	if err != nil {
		return "", fmt.Errorf("invalid cookie encoding")
	}

	parts := strings.SplitN(string(decoded), ".", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid cookie format")
	}

	sessionID, providedSig := parts[0], parts[1]
	mac := hmac.New(sha256.New, sm.secret)
	mac.Write([]byte(sessionID))
	expectedSig := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(providedSig), []byte(expectedSig)) {
		return "", fmt.Errorf("invalid cookie signature")
	}
	return sessionID, nil
}

func (sm *SessionManager) cleanupExpiredSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	for range ticker.C {
		sm.mu.Lock()
		now := time.Now()
		for id, session := range sm.sessions {
			if now.After(session.ExpiresAt) {
				delete(sm.sessions, id)
			}
		}
		sm.mu.Unlock()
	}
}

func generateSessionID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
