package memsession

import (
	"testing"
	"time"

	"github.com/icza/mighty"
)

func TestInMemClient(t *testing.T) {
	eq := mighty.Eq(t)

	c := NewInMemClient()
	defer c.Close()

	v, err := c.Get("asdf")
	eq(true, v == nil)
	eq(nil, err)

	eq(nil, c.Set("a", []byte("1"), 0))
	v, err = c.Get("a")
	eq("1", string(v))
	eq(nil, err)
	eq(1, c.Len())

	eq(nil, c.Delete("a"))
	v, err = c.Get("a")
	eq(true, v == nil)
	eq(nil, err)

	eq(nil, c.Set("a", []byte("1"), 0))
	eq(nil, c.Set("b", []byte{}, 0))
	v, err = c.Get("b")
	eq(true, v != nil)
	eq(nil, err)

	eq(nil, c.Flush())
	eq(0, c.Len())

	c.Close() // Closing twice is fine
}

func TestInMemClientCleaner(t *testing.T) {
	eq := mighty.Eq(t)

	c := NewInMemClientOptions(&InMemClientOptions{CleanerInterval: 10 * time.Millisecond})
	defer c.Close()

	eq(nil, c.Set("a", []byte("1"), 1))
	eq(nil, c.Set("b", []byte("2"), 0))
	eq(2, c.Len())

	time.Sleep(30 * time.Millisecond)
	v, err := c.Get("a")
	eq("1", string(v))
	eq(nil, err)

	time.Sleep(1100 * time.Millisecond)
	v, err = c.Get("a")
	eq(true, v == nil)
	eq(nil, err)
	eq(1, c.Len())
}
