// SPDX-License-Identifier: MIT

// Package source loads raw guide documents from HTTP(S) URLs or local files.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/senvora/epg/internal/version"
)

// MaxSourceSize caps the raw bytes read from one source.
const MaxSourceSize = 256 << 20

// Fetcher loads the raw bytes behind a reference.
type Fetcher interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// Loader fetches http and https references with its client and reads
// anything else from the filesystem.
type Loader struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64
}

// NewLoader returns a Loader using client.
func NewLoader(client *http.Client) *Loader {
	return &Loader{
		Client:    client,
		UserAgent: "senvora-epg/" + version.Version,
		MaxBytes:  MaxSourceSize,
	}
}

// IsRemote reports whether ref is fetched over HTTP.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load returns the raw bytes of ref. Compression is left to the decoder.
func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	if IsRemote(ref) {
		return l.fetch(ctx, ref)
	}
	return l.readFile(ref)
}

func (l *Loader) limit() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return MaxSourceSize
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	u, ok := parseDirectHTTPURL(url)
	if !ok {
		return nil, &Error{Sentinel: ErrFetch, Op: "parse url", Ref: url, Err: fmt.Errorf("not a direct http(s) url")}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &Error{Sentinel: ErrFetch, Op: "build request", Ref: url, Err: err}
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	client := l.Client
	if client == nil {
		return nil, &Error{Sentinel: ErrFetch, Op: "fetch", Ref: url, Err: fmt.Errorf("no http client configured")}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Sentinel: ErrFetch, Op: "fetch", Ref: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &Error{Sentinel: ErrHTTPStatus, Op: "fetch", Ref: url, Status: resp.StatusCode}
	}

	data, err := readLimited(resp.Body, l.limit())
	if err != nil {
		return nil, l.readError("fetch", url, err)
	}
	return data, nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Sentinel: ErrRead, Op: "open", Ref: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, l.limit())
	if err != nil {
		return nil, l.readError("read", path, err)
	}
	return data, nil
}

func (l *Loader) readError(op, ref string, err error) error {
	if err == ErrTooLarge {
		return &Error{Sentinel: ErrTooLarge, Op: op, Ref: ref, Err: fmt.Errorf("limit %d bytes", l.limit())}
	}
	return &Error{Sentinel: ErrRead, Op: op, Ref: ref, Err: err}
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
