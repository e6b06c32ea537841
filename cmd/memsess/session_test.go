package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSessionCommands(t *testing.T) {
	mr := miniredis.RunT(t)
	common := []string{"--redis", mr.Addr(), "--prefix", "sess:", "--log-level", "error"}

	out, err := run(append([]string{"set", "abc123", `{"cookie":{"maxAge":5000},"user":"alice"}`}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "'sess:abc123' for 5s")

	raw, err := mr.Get("sess:abc123")
	require.NoError(t, err)
	assert.Equal(t, `{"cookie":{"maxAge":5000},"user":"alice"}`, raw)
	assert.Equal(t, 5*time.Second, mr.TTL("sess:abc123"))

	out, err = run(append([]string{"get", "abc123"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"user": "alice"`)

	out, err = run(append([]string{"length"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "unknown\n", out)

	out, err = run(append([]string{"destroy", "abc123"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Destroyed session 'abc123'")

	_, err = run(append([]string{"get", "abc123"}, common...)...)
	assert.ErrorContains(t, err, "not found")

	_, err = run(append([]string{"set", "x", `not json`}, common...)...)
	assert.Error(t, err)

	require.NoError(t, mr.Set("other", "v"))
	out, err = run(append([]string{"clear"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")
	assert.False(t, mr.Exists("other"))
}
