// SPDX-License-Identifier: MIT

// Package artifact writes reproducible compressed guide files.
package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/gzip"
)

// Info describes a written artifact.
type Info struct {
	Path            string
	RawBytes        int
	CompressedBytes int
	SHA256          string
}

// Compress gzips data into a container whose bytes depend only on data: the
// header carries no file name, no comment and a zero modification time.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("create gzip writer: %w", err)
	}
	zw.Header = gzip.Header{ModTime: time.Unix(0, 0), OS: 255}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish gzip stream: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteGzip compresses data and atomically replaces path with it, creating the
// parent directory when missing.
func WriteGzip(path string, data []byte) (Info, error) {
	compressed, err := Compress(data)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeAtomic(path, compressed); err != nil {
		return Info{}, err
	}

	sum := sha256.Sum256(compressed)
	return Info{
		Path:            path,
		RawBytes:        len(data),
		CompressedBytes: len(compressed),
		SHA256:          hex.EncodeToString(sum[:]),
	}, nil
}

// writeAtomic writes with full durability guarantees using renameio: the
// pending file is fsynced before it replaces path.
func writeAtomic(path string, data []byte) (err error) {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		// no-op after a successful CloseAtomicallyReplace
		if cerr := pendingFile.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("cleanup pending file: %w", cerr)
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}
