/*

A memcached session store implementation.

The store translates session ids into cache keys (an optional prefix and the id
concatenated), stores sessions in their textual form, and derives the expiration
of stored sessions from the max age of the session cookie.

Limitations based on memcached:

- Since session ids are used in the cache keys, a prefix and a session id together
can't be longer than 250 bytes, and can't contain spaces or control characters.

- The number of stored sessions cannot be queried, Length() always reports an unknown count.

*/

package memsession

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
)

// DefaultTTL is the expiration, in seconds, of sessions whose cookie has no max age (one day).
const DefaultTTL = 86400

// ErrDeleteUnsupported is returned by Destroy if the client offers no deletion operation.
var ErrDeleteUnsupported = errors.New("memsession: client has no Del or Delete method")

// MemcacheStore is a Store backed by a memcached-like key-value Client.
//
// A MemcacheStore is immutable after construction and safe for concurrent use
// as long as its Client is. It never closes its Client.
type MemcacheStore struct {
	client  Client                 // Key-value client, owned for the lifetime of the store
	del     func(key string) error // Deletion operation of client; nil if it has none
	prefix  string                 // Prefix to use in front of session ids to construct the cache key
	codec   Codec                  // Codec used to marshal and unmarshal sessions
	logger  *slog.Logger           // Logger to log operations to
	metrics *Metrics               // Metrics to record operations in, optional
}

var _ Store = (*MemcacheStore)(nil)

// NewMemcacheStore returns a new MemcacheStore with the default options,
// talking to a memcached server at DefaultHost.
// Default values of options are listed in the MemcacheStoreOptions type.
func NewMemcacheStore() *MemcacheStore {
	return NewMemcacheStoreOptions(zeroMemcacheStoreOptions)
}

// NewMemcacheStoreOptions returns a new MemcacheStore with the specified options.
//
// If o.Client is nil, a client is constructed by o.NewClient from the comma-joined
// hosts and o itself.
func NewMemcacheStoreOptions(o *MemcacheStoreOptions) *MemcacheStore {
	s := &MemcacheStore{
		client:  o.Client,
		prefix:  o.Prefix,
		codec:   o.Codec,
		logger:  o.Logger,
		metrics: o.Metrics,
	}
	if s.client == nil {
		hosts := o.Hosts
		if len(hosts) == 0 {
			hosts = []string{DefaultHost}
		}
		newClient := o.NewClient
		if newClient == nil {
			newClient = NewMemcacheClient
		}
		s.client = newClient(strings.Join(hosts, ","), o)
	}
	if s.codec == nil {
		s.codec = JSONCodec
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.del = deleteFunc(s.client)
	return s
}

// Client returns the key-value client of the store.
func (s *MemcacheStore) Client() Client {
	return s.client
}

// Key returns the cache key of the session specified by its id.
func (s *MemcacheStore) Key(id string) string {
	return s.prefix + id
}

// TTL returns the expiration in seconds to store sess with:
// the cookie max age truncated to whole seconds, or DefaultTTL if there is none.
//
// A max age under a second gives 0, which memcached takes as no expiration.
// A negative max age (an already expired cookie) gives 1 second instead of 0,
// so such a session does not outlive its cookie. Max ages beyond the uint32
// range saturate at math.MaxUint32.
func TTL(sess *Session) uint32 {
	ms, ok := sess.MaxAge()
	if !ok || math.IsNaN(ms) {
		return DefaultTTL
	}
	if ms < 0 {
		return 1
	}
	if secs := math.Floor(ms / 1000); secs < math.MaxUint32 {
		return uint32(secs)
	}
	return math.MaxUint32
}

// Get is to implement Store.Get().
// A missing key and a stored null payload both yield (nil, nil).
//
// If the client fails, the error is returned together with an empty, non-nil
// session so callers expecting a session value always get one.
// A payload that cannot be unmarshaled is reported with an error wrapping ErrUnmarshal.
func (s *MemcacheStore) Get(id string) (*Session, error) {
	key := s.Key(id)
	start := time.Now()

	data, err := s.client.Get(key)
	if err != nil {
		s.metrics.observe(opGet, "error", start)
		s.logger.Error("Failed to get session", "id", id, "key", key, "err", err)
		return NewSession(), err
	}
	if data == nil || isNull(data) {
		s.metrics.observe(opGet, "miss", start)
		return nil, nil
	}

	sess := &Session{}
	if err = s.codec.Unmarshal(data, sess); err != nil {
		s.metrics.observe(opGet, "error", start)
		s.logger.Error("Invalid session payload", "id", id, "key", key, "err", err)
		return nil, err
	}
	sess.ID = id

	s.metrics.observe(opGet, "hit", start)
	return sess, nil
}

// Set is to implement Store.Set().
// If sess cannot be marshaled, the client is not called.
func (s *MemcacheStore) Set(id string, sess *Session) error {
	key, data, ttl, err := s.encode(id, sess)
	if err != nil {
		return err
	}
	return s.set(id, key, data, ttl)
}

// encode derives everything a set request needs from the session.
func (s *MemcacheStore) encode(id string, sess *Session) (key string, data []byte, ttl uint32, err error) {
	key = s.Key(id)
	if sess == nil {
		err = fmt.Errorf("%w: nil session", ErrMarshal)
	} else {
		data, err = s.codec.Marshal(sess)
	}
	if err != nil {
		s.logger.Error("Failed to marshal session", "id", id, "err", err)
		return "", nil, 0, err
	}
	return key, data, TTL(sess), nil
}

func (s *MemcacheStore) set(id, key string, data []byte, ttl uint32) error {
	start := time.Now()
	if err := s.client.Set(key, data, ttl); err != nil {
		s.metrics.observe(opSet, "error", start)
		s.logger.Error("Failed to set session", "id", id, "key", key, "err", err)
		return err
	}
	s.metrics.observe(opSet, "ok", start)
	s.logger.Debug("Session set", "id", id, "key", key, "ttl", ttl)
	return nil
}

// Destroy is to implement Store.Destroy().
// The client's Del method is used if it has one, Delete otherwise.
func (s *MemcacheStore) Destroy(id string) error {
	key := s.Key(id)
	if s.del == nil {
		return ErrDeleteUnsupported
	}

	start := time.Now()
	if err := s.del(key); err != nil {
		s.metrics.observe(opDestroy, "error", start)
		s.logger.Error("Failed to destroy session", "id", id, "key", key, "err", err)
		return err
	}
	s.metrics.observe(opDestroy, "ok", start)
	s.logger.Debug("Session destroyed", "id", id, "key", key)
	return nil
}

// Length is to implement Store.Length().
// memcached has no way to count keys, so the count is always unknown.
func (s *MemcacheStore) Length() (n int, known bool, err error) {
	return 0, false, nil
}

// Clear is to implement Store.Clear().
// It flushes the whole cache, not only the keys carrying the prefix.
func (s *MemcacheStore) Clear() error {
	start := time.Now()
	if err := s.client.Flush(); err != nil {
		s.metrics.observe(opClear, "error", start)
		s.logger.Error("Failed to clear sessions", "err", err)
		return err
	}
	s.metrics.observe(opClear, "ok", start)
	s.logger.Debug("Sessions cleared")
	return nil
}
