// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/minio/hashsum"
)

// stdinJob reads standard input. It never closes it.
func stdinJob(stdin io.Reader) hashsum.Job {
	return hashsum.Job{
		Name: "-",
		Size: -1,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(stdin), nil },
	}
}

// multiCloser closes a decompressor before the stream underneath it.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// decompressing wraps job so that .gz and .zst inputs are hashed after
// decompression. Other inputs are left alone.
func decompressing(job hashsum.Job) hashsum.Job {
	var wrap func(io.Reader) (io.ReadCloser, error)
	switch {
	case strings.HasSuffix(job.Name, ".gz"):
		wrap = func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }
	case strings.HasSuffix(job.Name, ".zst"):
		wrap = func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		}
	default:
		return job
	}

	open := job.Open
	job.Size = -1
	job.Open = func() (io.ReadCloser, error) {
		rc, err := open()
		if err != nil {
			return nil, err
		}
		dec, err := wrap(rc)
		if err != nil {
			rc.Close()
			return nil, errors.Wrap(err, "decompress")
		}
		return &multiCloser{Reader: dec, closers: []io.Closer{dec, rc}}, nil
	}
	return job
}
