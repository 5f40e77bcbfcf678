package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_WritesBodyToFile(t *testing.T) {
	payload := []byte("fake mp4 payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "in.mp4")
	c := NewClient()

	err := c.Fetch(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFetch_RemoteStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "in.mp4")
	c := NewClient()

	err := c.Fetch(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteStatus)
	assert.NotErrorIs(t, err, ErrTransport)

	// No file should exist for a failed fetch.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetch_TransportError(t *testing.T) {
	// A server that is closed immediately gives us a reliably refused port.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	dest := filepath.Join(t.TempDir(), "in.mp4")
	c := NewClient()

	err := c.Fetch(context.Background(), url, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient()
	err := c.Fetch(ctx, srv.URL, filepath.Join(t.TempDir(), "in.mp4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}
