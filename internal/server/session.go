package server

import (
	"crypto/sha256"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/mreyes/finboard/internal/changelog"
)

// sessionName is the dashboard session cookie.
const sessionName = "finboard-session"

const sessionKeyID = "id"

// sessionManager gives each browser session its own change-request
// log. The cookie carries only an opaque session ID; the logs live in
// memory and vanish with the process.
type sessionManager struct {
	cookies *sessions.CookieStore

	mu   sync.Mutex
	logs map[string]*changelog.MemoryStore
}

// newSessionManager builds the cookie store. The secret is hashed to a
// 32-byte signing key, so any passphrase works.
func newSessionManager(secret string) *sessionManager {
	key := sha256.Sum256([]byte(secret))
	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   8 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &sessionManager{
		cookies: store,
		logs:    make(map[string]*changelog.MemoryStore),
	}
}

// logFor returns the change-request log for the caller's session,
// creating the session and the log on first contact.
func (m *sessionManager) logFor(c echo.Context) (changelog.Store, error) {
	sess, err := m.cookies.Get(c.Request(), sessionName)
	if err != nil {
		// A cookie signed with a stale key decodes to a fresh session.
		sess, _ = m.cookies.New(c.Request(), sessionName)
	}

	id, ok := sess.Values[sessionKeyID].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Values[sessionKeyID] = id
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	log, ok := m.logs[id]
	if !ok {
		log = changelog.NewMemoryStore()
		m.logs[id] = log
	}
	return log, nil
}
