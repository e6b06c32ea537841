/*

Session Manager interface.

*/

package memsession

import (
	"net/http"
)

// Manager is a session manager interface.
// A session manager is responsible to acquire a Session from an (incoming) HTTP request,
// and to add a Session to an HTTP response to let the client know about the session.
// A Manager has a backing Store which is responsible to keep Session values at server side.
type Manager interface {
	// Get returns the session specified by the HTTP request.
	// nil is returned if the request does not contain a session, or the contained session is not known by this manager.
	Get(r *http.Request) *Session

	// Add adds the session to the HTTP response and saves it in the backing Store.
	// This means to let the client know about the specified session by including the session id in the response somehow.
	// Add has to be called again to save changes made to a session.
	Add(sess *Session, w http.ResponseWriter) error

	// Remove removes the session from the HTTP response and from the backing Store.
	Remove(sess *Session, w http.ResponseWriter) error
}
