/*

An in-memory key-value client implementation.

*/

package memsession

import (
	"sync"
	"time"
)

// inMemEntry is a value stored by inMemClient.
type inMemEntry struct {
	value   []byte
	expires time.Time // Zero means the entry never expires
}

func (e *inMemEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// InMemClient is an in-memory Client, useful for development and tests.
// It has an automatic expired entry cleaner which runs in its own goroutine;
// call Close to stop it.
type InMemClient struct {
	entries     map[string]*inMemEntry // Map of entries (mapped from key)
	mux         *sync.RWMutex          // mutex to synchronize access to entries
	closeTicker chan struct{}          // Channel to signal close for the cleaner
	closeOnce   sync.Once
}

// InMemClientOptions defines options that may be passed when creating a new InMemClient.
// All fields are optional; default value will be used for any field that has the zero value.
type InMemClientOptions struct {
	// Expired entry cleaner check interval, default is 10 seconds.
	CleanerInterval time.Duration
}

// Pointer to zero value of InMemClientOptions to be reused for efficiency.
var zeroInMemClientOptions = new(InMemClientOptions)

// NewInMemClient returns a new InMemClient with the default options.
// Default values of options are listed in the InMemClientOptions type.
func NewInMemClient() *InMemClient {
	return NewInMemClientOptions(zeroInMemClientOptions)
}

// NewInMemClientOptions returns a new InMemClient with the specified options.
func NewInMemClientOptions(o *InMemClientOptions) *InMemClient {
	c := &InMemClient{
		entries:     make(map[string]*inMemEntry),
		mux:         &sync.RWMutex{},
		closeTicker: make(chan struct{}),
	}

	interval := o.CleanerInterval
	if interval == 0 {
		interval = 10 * time.Second
	}

	go c.cleaner(interval)

	return c
}

// cleaner periodically removes expired entries in an endless loop.
// This method is to be started as a new goroutine.
func (c *InMemClient) cleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)

	for {
		select {
		case <-c.closeTicker:
			ticker.Stop()
			return
		case now := <-ticker.C:
			// Removal is rare compared to the number of checks, so do a
			// "quick" check with read-lock to see if there's anything to remove:
			needRemove := func() bool {
				c.mux.RLock()
				defer c.mux.RUnlock()

				for _, e := range c.entries {
					if e.expired(now) {
						return true
					}
				}
				return false
			}()
			if !needRemove {
				continue
			}

			c.mux.Lock()
			for key, e := range c.entries {
				if e.expired(now) {
					delete(c.entries, key)
				}
			}
			c.mux.Unlock()
		}
	}
}

// Get is to implement Client.Get().
func (c *InMemClient) Get(key string) ([]byte, error) {
	c.mux.RLock()
	defer c.mux.RUnlock()

	e := c.entries[key]
	if e == nil || e.expired(time.Now()) {
		return nil, nil
	}
	return append([]byte{}, e.value...), nil
}

// Set is to implement Client.Set().
// A ttl of 0 means the entry never expires.
func (c *InMemClient) Set(key string, value []byte, ttl uint32) error {
	e := &inMemEntry{value: append([]byte{}, value...)}
	if ttl > 0 {
		e.expires = time.Now().Add(time.Duration(ttl) * time.Second)
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	c.entries[key] = e
	return nil
}

// Delete is to implement Deleter.Delete().
func (c *InMemClient) Delete(key string) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	delete(c.entries, key)
	return nil
}

// Flush is to implement Client.Flush().
func (c *InMemClient) Flush() error {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.entries = make(map[string]*inMemEntry)
	return nil
}

// Len returns the number of entries, expired but not yet cleaned ones included.
func (c *InMemClient) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return len(c.entries)
}

// Close stops the expired entry cleaner. It is safe to call Close multiple times.
func (c *InMemClient) Close() {
	c.closeOnce.Do(func() { close(c.closeTicker) })
}
