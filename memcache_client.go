/*

A memcached key-value client implementation based on gomemcache.

*/

package memsession

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// maxRelativeExpiration is the largest expiration memcached takes as relative
// seconds (30 days); larger values are taken as absolute Unix times.
const maxRelativeExpiration = 30 * 24 * 60 * 60

// memcacheClient adapts *memcache.Client to Client and Deleter.
type memcacheClient struct {
	mc  *memcache.Client
	now func() time.Time
}

// NewMemcacheClient returns a Client talking to the memcached servers listed
// in servers, separated by commas. Timeout and MaxIdleConns of o are applied
// if set; o may be nil.
//
// This is the default MemcacheStoreOptions.NewClient.
func NewMemcacheClient(servers string, o *MemcacheStoreOptions) Client {
	var addrs []string
	for _, addr := range strings.Split(servers, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, addr)
		}
	}

	mc := memcache.New(addrs...)
	if o != nil {
		if o.Timeout > 0 {
			mc.Timeout = o.Timeout
		}
		if o.MaxIdleConns > 0 {
			mc.MaxIdleConns = o.MaxIdleConns
		}
	}
	return WrapMemcacheClient(mc)
}

// WrapMemcacheClient returns a Client using an existing *memcache.Client.
func WrapMemcacheClient(mc *memcache.Client) Client {
	return &memcacheClient{mc: mc, now: time.Now}
}

func (c *memcacheClient) Get(key string) ([]byte, error) {
	item, err := c.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.Value == nil {
		return []byte{}, nil
	}
	return item.Value, nil
}

// Set sends ttls over 30 days as an absolute Unix time, saturating at MaxInt32.
func (c *memcacheClient) Set(key string, value []byte, ttl uint32) error {
	return c.mc.Set(&memcache.Item{Key: key, Value: value, Expiration: c.expiration(ttl)})
}

func (c *memcacheClient) expiration(ttl uint32) int32 {
	exp := int64(ttl)
	if ttl > maxRelativeExpiration {
		exp += c.now().Unix()
	}
	if exp > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(exp)
}

// Delete treats a missing key as success.
func (c *memcacheClient) Delete(key string) error {
	if err := c.mc.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}

func (c *memcacheClient) Flush() error {
	return c.mc.FlushAll()
}
