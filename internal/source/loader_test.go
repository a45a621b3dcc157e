// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senvora/epg/internal/platform/httpx"
)

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/epg.xml.gz"))
	assert.True(t, IsRemote("HTTP://example.com/epg.xml"))
	assert.False(t, IsRemote("tmp_xml/epg.xml"))
	assert.False(t, IsRemote("/srv/epg/https.xml"))
}

func TestLoader_FetchSuccess(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<tv></tv>"))
	}))
	defer srv.Close()

	l := NewLoader(httpx.NewClient(5 * time.Second))
	data, err := l.Load(context.Background(), srv.URL+"/epg.xml")
	require.NoError(t, err)
	assert.Equal(t, "<tv></tv>", string(data))
	assert.True(t, strings.HasPrefix(gotUA, "senvora-epg/"))
}

func TestLoader_FetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.Client()).Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPStatus))

	var srcErr *Error
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, http.StatusNotFound, srcErr.Status)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLoader_FetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<tv/>"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(srv.Client()).Load(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoader_FetchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 128)))
	}))
	defer srv.Close()

	l := NewLoader(srv.Client())
	l.MaxBytes = 64
	_, err := l.Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestLoader_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epg.xml")
	require.NoError(t, os.WriteFile(path, []byte("<tv/>"), 0o600))

	data, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<tv/>", string(data))
}

func TestLoader_ReadMissingFile(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRead))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_NoClient(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), "https://example.invalid/epg.xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}
