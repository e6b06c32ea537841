/*

Session store interface.

*/

package memsession

// Store is the session store contract expected by session middleware.
type Store interface {
	// Get returns the session specified by its id.
	// (nil, nil) is returned if there is no such session.
	Get(id string) (*Session, error)

	// Set stores the session under the specified id.
	Set(id string, sess *Session) error

	// Destroy removes the session specified by its id.
	Destroy(id string) error

	// Length returns the number of stored sessions.
	// known is false if the store cannot count its sessions.
	Length() (n int, known bool, err error)

	// Clear removes all sessions.
	Clear() error
}
