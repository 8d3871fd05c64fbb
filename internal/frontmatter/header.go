// Package frontmatter reads the optional metadata header at the start of a
// content file.
//
// The header is opened by the three bytes "---" and holds flat "key: value"
// lines. It ends at the first line starting with "-" or at end of input:
//
//	---
//	title: Hello
//	layout: post.html
//	---
//	Body text
//
// Each line is split on its first colon and both sides are trimmed; a line
// without a colon is ignored and a blank key is kept as "". Values are plain
// strings; no YAML typing or nesting is applied.
package frontmatter

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Delimiter opens a metadata header when it is the first three bytes of a file.
const Delimiter = "---"

// Metadata is the flat key/value mapping of a header.
type Metadata map[string]string

// Clone returns an independent copy of m (never nil).
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Read consumes the metadata header from r, which must be positioned at the
// start of the file. On return r is positioned at the first byte of the body:
// past the closing line when a header was present, or rewound to offset zero
// when it was not. A file without a header yields an empty, non-nil mapping.
func Read(r io.ReadSeeker) (Metadata, error) {
	meta := Metadata{}

	var open [len(Delimiter)]byte
	n, err := io.ReadFull(r, open[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	if n < len(open) || string(open[:]) != Delimiter {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return meta, nil
	}

	// bufio reads ahead, so the body offset is tracked by hand and the
	// underlying reader is re-seeked once the header is done.
	consumed := int64(len(open))
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		consumed += int64(len(line))
		if strings.HasPrefix(line, "-") {
			break
		}
		if key, value, ok := strings.Cut(line, ":"); ok {
			meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, readErr
		}
	}

	if _, err := r.Seek(consumed, io.SeekStart); err != nil {
		return nil, err
	}
	return meta, nil
}
