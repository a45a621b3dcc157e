// SPDX-License-Identifier: MIT

package epg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/net/html/charset"
)

// MaxDocumentSize caps the decompressed size of a single guide document.
const MaxDocumentSize = 256 << 20

// ErrDocumentTooLarge is returned when a document exceeds MaxDocumentSize.
var ErrDocumentTooLarge = errors.New("xmltv document exceeds size limit")

// IsGzip sniffs the gzip magic number.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// Decode parses a guide document, transparently decompressing gzip input
// regardless of where the bytes came from.
func Decode(data []byte) (*TV, error) {
	return decodeLimited(data, MaxDocumentSize)
}

func decodeLimited(data []byte, limit int64) (*TV, error) {
	var r io.Reader = bytes.NewReader(data)
	if IsGzip(data) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	lr := &io.LimitedReader{R: r, N: limit + 1}
	var doc TV
	dec := xml.NewDecoder(lr)
	dec.Strict = true
	// No custom entities: DOCTYPE declared entities fail to resolve instead of expanding.
	dec.Entity = map[string]string{}
	dec.CharsetReader = charset.NewReaderLabel

	if err := dec.Decode(&doc); err != nil {
		if lr.N <= 0 {
			return nil, ErrDocumentTooLarge
		}
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode xmltv: empty document")
		}
		return nil, fmt.Errorf("decode xmltv: %w", err)
	}
	if lr.N <= 0 {
		return nil, ErrDocumentTooLarge
	}
	return &doc, nil
}
