// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package output renders digests as checksum lines.
package output

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/multiformats/go-multibase"
	"github.com/valyala/fasttemplate"

	"github.com/minio/hashsum"
	"github.com/minio/hashsum/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options selects how lines are rendered.
type Options struct {
	// Encoding is one of config.OutputHex, OutputBase64 or OutputMultihash.
	Encoding string
	// Untagged selects "digest  name" instead of "ALGO (name) = digest".
	Untagged bool
	// Format is a template with {algo}, {ALGO}, {digest} and {name} tags.
	// It overrides Untagged.
	Format string
	// JSON writes one JSON object per line and overrides Format.
	JSON bool
}

// Record is the JSON form of one line.
type Record struct {
	Name      string `json:"name"`
	Algorithm string `json:"algorithm"`
	Encoding  string `json:"encoding"`
	Digest    string `json:"digest"`
}

// Writer writes one line per digest.
type Writer struct {
	w    io.Writer
	opts Options
	tmpl *fasttemplate.Template
}

// New returns a Writer for w.
func New(w io.Writer, opts Options) (*Writer, error) {
	if opts.Encoding == "" {
		opts.Encoding = config.OutputHex
	}
	switch opts.Encoding {
	case config.OutputHex, config.OutputBase64, config.OutputMultihash:
	default:
		return nil, fmt.Errorf("unknown output encoding %q", opts.Encoding)
	}

	out := &Writer{w: w, opts: opts}
	if opts.Format != "" && !opts.JSON {
		tmpl, err := fasttemplate.NewTemplate(opts.Format, "{", "}")
		if err != nil {
			return nil, fmt.Errorf("invalid format %q: %w", opts.Format, err)
		}
		out.tmpl = tmpl
	}
	return out, nil
}

// Encode renders d with the configured encoding.
func (w *Writer) Encode(d hashsum.Digest) (string, error) {
	switch w.opts.Encoding {
	case config.OutputBase64:
		return d.Base64(), nil
	case config.OutputMultihash:
		return d.Multibase(multibase.Base32)
	}
	return d.Hex(), nil
}

// Line renders the line for the input called name, without a newline.
func (w *Writer) Line(name string, d hashsum.Digest) (string, error) {
	digest, err := w.Encode(d)
	if err != nil {
		return "", err
	}

	switch {
	case w.opts.JSON:
		b, err := json.Marshal(Record{
			Name:      name,
			Algorithm: d.Algorithm().String(),
			Encoding:  w.opts.Encoding,
			Digest:    digest,
		})
		if err != nil {
			return "", err
		}
		return string(b), nil
	case w.tmpl != nil:
		return w.tmpl.ExecuteString(map[string]interface{}{
			"algo":   d.Algorithm().String(),
			"ALGO":   d.Algorithm().Tag(),
			"digest": digest,
			"name":   name,
		}), nil
	case w.opts.Untagged:
		return digest + "  " + name, nil
	}
	return fmt.Sprintf("%s (%s) = %s", d.Algorithm().Tag(), name, digest), nil
}

// Write writes the line for name followed by a newline.
func (w *Writer) Write(name string, d hashsum.Digest) error {
	line, err := w.Line(name, d)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w.w, line+"\n")
	return err
}
