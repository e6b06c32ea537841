/*

Callback based variants of the store operations.

*/

package memsession

// GetFunc is the asynchronous variant of Get().
// It returns immediately; fn is called from a new goroutine once the client responds.
// fn may be nil.
func (s *MemcacheStore) GetFunc(id string, fn GetCallback) {
	go func() {
		fn.call(s.Get(id))
	}()
}

// SetFunc is the asynchronous variant of Set().
// The session is marshaled before SetFunc returns: if that fails, fn is called
// with the error in the caller's goroutine and the client is not called.
// Otherwise fn is called from a new goroutine once the client responds.
// fn may be nil.
func (s *MemcacheStore) SetFunc(id string, sess *Session, fn Callback) {
	key, data, ttl, err := s.encode(id, sess)
	if err != nil {
		fn.call(err)
		return
	}
	go func() {
		fn.call(s.set(id, key, data, ttl))
	}()
}

// DestroyFunc is the asynchronous variant of Destroy().
// fn may be nil.
func (s *MemcacheStore) DestroyFunc(id string, fn Callback) {
	go func() {
		fn.call(s.Destroy(id))
	}()
}

// LengthFunc is the asynchronous variant of Length().
// As there is nothing to wait for, fn is called before LengthFunc returns.
// fn may be nil.
func (s *MemcacheStore) LengthFunc(fn LengthCallback) {
	fn.call(s.Length())
}

// ClearFunc is the asynchronous variant of Clear().
// fn may be nil.
func (s *MemcacheStore) ClearFunc(fn Callback) {
	go func() {
		fn.call(s.Clear())
	}()
}
