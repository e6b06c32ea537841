package memsession

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/icza/mighty"
)

func newInMemStore(t *testing.T) *MemcacheStore {
	c := NewInMemClient()
	t.Cleanup(c.Close)
	return newTestStore(c, "sess:")
}

func TestCookieManager_Store(t *testing.T) {
	eq := mighty.Eq(t)

	store := newInMemStore(t)
	manager := NewCookieManager(store)
	eq(true, manager.Store() == Store(store))
}

func TestCookieManager_SessIDCookieName(t *testing.T) {
	eq := mighty.Eq(t)

	manager := NewCookieManager(newInMemStore(t))
	eq(DefaultSessIDCookieName, manager.SessIDCookieName())

	const cookieName = "SessID-Test"
	manager = NewCookieManagerOptions(manager.Store(), &CookieMngrOptions{SessIDCookieName: cookieName})
	eq(cookieName, manager.SessIDCookieName())
}

func TestCookieManager_AddGetRemove(t *testing.T) {
	eq, neq := mighty.EqNeq(t)

	store := newInMemStore(t)
	manager := NewCookieManagerOptions(store, &CookieMngrOptions{
		AllowHTTP:    true,
		CookieMaxAge: time.Hour,
		Logger:       nopLogger(),
	})

	sess := NewSession()
	sess.SetAttr("counter", float64(1))
	w := httptest.NewRecorder()
	eq(nil, manager.Add(sess, w))
	neq("", sess.ID)

	cookies := w.Result().Cookies()
	eq(1, len(cookies))
	c := cookies[0]
	eq(DefaultSessIDCookieName, c.Name)
	eq(sess.ID, c.Value)
	eq(3600, c.MaxAge)
	eq(true, c.HttpOnly)
	eq(false, c.Secure)

	ms, ok := sess.MaxAge()
	eq(true, ok)
	eq(float64(3600*1000), ms)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: DefaultSessIDCookieName, Value: sess.ID})
	got := manager.Get(r)
	eq(true, got != nil)
	eq(sess.ID, got.ID)
	eq(float64(1), got.Attr("counter"))

	w = httptest.NewRecorder()
	eq(nil, manager.Remove(got, w))
	eq(-1, w.Result().Cookies()[0].MaxAge)
	eq(true, manager.Get(r) == nil)
}

func TestCookieManager_GetNoCookie(t *testing.T) {
	eq := mighty.Eq(t)

	manager := NewCookieManagerOptions(newInMemStore(t), &CookieMngrOptions{Logger: nopLogger()})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	eq(true, manager.Get(r) == nil)

	r.AddCookie(&http.Cookie{Name: DefaultSessIDCookieName, Value: "unknown"})
	eq(true, manager.Get(r) == nil)
}

func TestCookieManager_GetStoreError(t *testing.T) {
	eq := mighty.Eq(t)

	rc := newRecordingClient()
	rc.data["bad"] = []byte("{")
	manager := NewCookieManagerOptions(newTestStore(rc, ""), &CookieMngrOptions{Logger: nopLogger()})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: DefaultSessIDCookieName, Value: "bad"})
	eq(true, manager.Get(r) == nil)
}
