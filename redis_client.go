/*

A Redis key-value client implementation.

*/

package memsession

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient adapts a go-redis client to Client and ShortDeleter.
type redisClient struct {
	rdb redis.UniversalClient
}

// NewRedisClient returns a Client backed by Redis, for deployments that keep
// sessions in Redis instead of memcached. A ttl of 0 stores keys without expiration,
// and Flush empties the current database.
func NewRedisClient(rdb redis.UniversalClient) Client {
	return &redisClient{rdb: rdb}
}

func (c *redisClient) Get(key string) ([]byte, error) {
	data, err := c.rdb.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *redisClient) Set(key string, value []byte, ttl uint32) error {
	return c.rdb.Set(context.Background(), key, value, time.Duration(ttl)*time.Second).Err()
}

func (c *redisClient) Del(key string) error {
	return c.rdb.Del(context.Background(), key).Err()
}

func (c *redisClient) Flush() error {
	return c.rdb.FlushDB(context.Background()).Err()
}
