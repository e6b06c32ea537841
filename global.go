/*

A global session Manager and delegator functions - for easy to use.

*/

package memsession

import (
	"net/http"
)

// Global is the default session Manager to which the top-level functions such as Get, Add and Remove
// are wrappers of Manager.
// It keeps sessions in an in-memory client; replace it with a Manager backed by
// a memcached MemcacheStore for anything but development.
var Global Manager = NewCookieManager(NewMemcacheStoreOptions(&MemcacheStoreOptions{
	Client: NewInMemClient(),
}))

// Get delegates to Global.Get(); returns the session specified by the HTTP request.
// nil is returned if the request does not contain a session, or the contained session is not known by this manager.
func Get(r *http.Request) *Session {
	return Global.Get(r)
}

// Add delegates to Global.Add(); adds the session to the HTTP response and saves it.
// This means to let the client know about the specified session by including the session id in the response somehow.
func Add(sess *Session, w http.ResponseWriter) error {
	return Global.Add(sess, w)
}

// Remove delegates to Global.Remove(); removes the session from the HTTP response and the store.
func Remove(sess *Session, w http.ResponseWriter) error {
	return Global.Remove(sess, w)
}
