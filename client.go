/*

Key-value client contract consumed by the session store.

*/

package memsession

// Client is the key-value client a MemcacheStore talks to.
// Networking, pooling and the wire protocol are the client's business.
//
// A Client must also offer a deletion operation, either as ShortDeleter or
// as Deleter; see MemcacheStore.Destroy().
type Client interface {
	// Get returns the value stored under key.
	// A missing key is reported as a nil value with a nil error.
	Get(key string) ([]byte, error)

	// Set stores value under key, expiring after ttl seconds.
	Set(key string, value []byte, ttl uint32) error

	// Flush invalidates all entries.
	Flush() error
}

// ShortDeleter is implemented by clients that name their deletion operation Del.
// It is preferred over Deleter if a client implements both.
type ShortDeleter interface {
	Del(key string) error
}

// Deleter is implemented by clients that name their deletion operation Delete.
type Deleter interface {
	Delete(key string) error
}

// deleteFunc returns the deletion operation offered by c, Del first.
// nil is returned if c offers neither.
func deleteFunc(c Client) func(key string) error {
	if d, ok := c.(ShortDeleter); ok {
		return d.Del
	}
	if d, ok := c.(Deleter); ok {
		return d.Delete
	}
	return nil
}

// Callback receives the outcome of an asynchronous store operation.
// A nil Callback is valid and means the caller is not interested in the outcome.
type Callback func(err error)

// GetCallback receives the outcome of MemcacheStore.GetFunc().
type GetCallback func(sess *Session, err error)

// LengthCallback receives the outcome of MemcacheStore.LengthFunc().
type LengthCallback func(n int, known bool, err error)

func (fn Callback) call(err error) {
	if fn != nil {
		fn(err)
	}
}

func (fn GetCallback) call(sess *Session, err error) {
	if fn != nil {
		fn(sess, err)
	}
}

func (fn LengthCallback) call(n int, known bool, err error) {
	if fn != nil {
		fn(n, known, err)
	}
}
