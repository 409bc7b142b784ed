// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerFiles(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(0xabad1dea))

	var jobs []Job
	var inputs [][]byte
	for i := 0; i < 24; i++ {
		input := make([]byte, rng.Intn(1<<16))
		rng.Read(input)
		path := filepath.Join(dir, fmt.Sprintf("file-%02d", i))
		require.NoError(t, os.WriteFile(path, input, 0o644))
		jobs = append(jobs, FileJob(path))
		inputs = append(inputs, input)
	}
	jobs = append(jobs, FileJob(filepath.Join(dir, "missing")))

	server := NewServer(WithWorkers(4), WithAlgorithms(MD5, SHA1))
	require.Equal(t, 4, server.Workers())
	require.Equal(t, []Algorithm{MD5, SHA1}, server.Algorithms())

	results := server.Sum(context.Background(), jobs)
	require.Len(t, results, len(jobs))

	for i, input := range inputs {
		r := results[i]
		require.NoError(t, r.Err)
		require.Equal(t, jobs[i].Name, r.Name)
		require.Equal(t, int64(len(input)), jobs[i].Size)
		require.Equal(t, reference(MD5, input), r.Digests[MD5].Bytes())
		require.Equal(t, reference(SHA1, input), r.Digests[SHA1].Bytes())
	}

	missing := results[len(results)-1]
	require.Error(t, missing.Err)
	require.True(t, errors.Is(missing.Err, os.ErrNotExist))
	require.Nil(t, missing.Digests)
	require.Equal(t, int64(-1), jobs[len(jobs)-1].Size)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
func (r failingReader) Close() error             { return nil }

func TestServerReadError(t *testing.T) {
	errBoom := errors.New("boom")
	jobs := []Job{
		{Name: "ok", Size: -1, Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("abc"))), nil
		}},
		{Name: "bad", Size: -1, Open: func() (io.ReadCloser, error) {
			return failingReader{errBoom}, nil
		}},
	}

	results := NewServer().Sum(context.Background(), jobs)
	require.NoError(t, results[0].Err)
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", results[0].Digests[MD5].Hex())
	require.ErrorIs(t, results[1].Err, errBoom)
	require.Contains(t, results[1].Err.Error(), "bad")
	require.Nil(t, results[1].Digests)
}

func TestServerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opened := false
	jobs := []Job{{Name: "never", Size: 1, Open: func() (io.ReadCloser, error) {
		opened = true
		return io.NopCloser(bytes.NewReader(nil)), nil
	}}}

	results := NewServer(WithWorkers(1)).Sum(ctx, jobs)
	require.False(t, opened)
	require.ErrorIs(t, results[0].Err, context.Canceled)
	require.Equal(t, "never", results[0].Name)
}

func TestServerDefaults(t *testing.T) {
	s := NewServer(WithWorkers(0), WithAlgorithms())
	require.Greater(t, s.Workers(), 0)
	require.Equal(t, []Algorithm{MD5}, s.Algorithms())
}
