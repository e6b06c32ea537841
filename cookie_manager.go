/*

A secure, cookie based session Manager implementation.

*/

package memsession

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieManager is a secure, cookie based session Manager implementation.
// Only the session ID is transmitted / stored at the clients, and it is managed using cookies.
type CookieManager struct {
	store Store // Backing Store

	sessIDCookieName string        // Name of the cookie used for storing the session id
	cookieSecure     bool          // Tells if session ID cookies are to be sent only over HTTPS
	cookieMaxAge     time.Duration // Max age for session ID cookies
	cookiePath       string        // Cookie path to use
	logger           *slog.Logger
}

// CookieMngrOptions defines options that may be passed when creating a new CookieManager.
// All fields are optional; default value will be used for any field that has the zero value.
type CookieMngrOptions struct {
	// Name of the cookie used for storing the session id; default value is "sessid"
	SessIDCookieName string

	// Tells if session ID cookies are allowed to be sent over unsecure HTTP too (else only HTTPS);
	// default value is false (only HTTPS)
	AllowHTTP bool

	// Max age for session ID cookies and stored sessions; default value is 30 days
	CookieMaxAge time.Duration

	// Cookie path to use; default value is the root: "/"
	CookiePath string

	// Logger to log store failures to; default value is slog.Default()
	Logger *slog.Logger
}

// DefaultSessIDCookieName is the default name of the cookie used for storing the session id.
const DefaultSessIDCookieName = "sessid"

// Pointer to zero value of CookieMngrOptions to be reused for efficiency.
var zeroCookieMngrOptions = new(CookieMngrOptions)

// NewCookieManager returns a new, cookie based session Manager with default options.
// Default values of options are listed in the CookieMngrOptions type.
func NewCookieManager(store Store) *CookieManager {
	return NewCookieManagerOptions(store, zeroCookieMngrOptions)
}

// NewCookieManagerOptions returns a new, cookie based session Manager with the specified options.
func NewCookieManagerOptions(store Store, o *CookieMngrOptions) *CookieManager {
	m := &CookieManager{
		store:            store,
		cookieSecure:     !o.AllowHTTP,
		sessIDCookieName: o.SessIDCookieName,
		cookieMaxAge:     o.CookieMaxAge,
		cookiePath:       o.CookiePath,
		logger:           o.Logger,
	}
	if m.sessIDCookieName == "" {
		m.sessIDCookieName = DefaultSessIDCookieName
	}
	if m.cookieMaxAge == 0 {
		m.cookieMaxAge = 30 * 24 * time.Hour
	}
	if m.cookiePath == "" {
		m.cookiePath = "/"
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Store returns the backing Store.
func (m *CookieManager) Store() Store {
	return m.store
}

// SessIDCookieName returns the name of the cookie used for storing the session id.
func (m *CookieManager) SessIDCookieName() string {
	return m.sessIDCookieName
}

// Get is to implement Manager.Get().
func (m *CookieManager) Get(r *http.Request) *Session {
	c, err := r.Cookie(m.sessIDCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	sess, err := m.store.Get(c.Value)
	if err != nil {
		m.logger.Warn("Failed to load session", "id", c.Value, "err", err)
		return nil
	}
	return sess
}

// Add is to implement Manager.Add().
// A session without an id gets a new, random one. A session without cookie metadata
// gets the cookie settings of the manager, so it expires from the Store together with the cookie.
func (m *CookieManager) Add(sess *Session, w http.ResponseWriter) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Cookie == nil {
		sess.SetMaxAge(m.cookieMaxAge)
		sess.Cookie.Path = m.cookiePath
		sess.Cookie.Secure = m.cookieSecure
		sess.Cookie.HTTPOnly = true
	}

	// HttpOnly: do not allow non-HTTP access to it (like javascript) to prevent stealing it...
	// Secure: only send it over HTTPS
	// MaxAge: to specify the max age of the cookie in seconds, else it's a session cookie and gets deleted after the browser is closed.
	c := http.Cookie{
		Name:     m.sessIDCookieName,
		Value:    sess.ID,
		Path:     m.cookiePath,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		MaxAge:   int(m.cookieMaxAge.Seconds()),
	}
	http.SetCookie(w, &c)

	return m.store.Set(sess.ID, sess)
}

// Remove is to implement Manager.Remove().
func (m *CookieManager) Remove(sess *Session, w http.ResponseWriter) error {
	// Set the cookie with empty value and 0 max age
	c := http.Cookie{
		Name:     m.sessIDCookieName,
		Value:    "",
		Path:     m.cookiePath,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		MaxAge:   -1, // MaxAge<0 means delete cookie now, equivalently 'Max-Age: 0'
	}
	http.SetCookie(w, &c)

	return m.store.Destroy(sess.ID)
}
