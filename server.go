// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"context"
	"io"
	"os"
	"runtime"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/klauspost/cpuid"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
)

var log = logging.Logger("hashsum/server")

// Job is one independent input for a Server.
type Job struct {
	// Name identifies the input in results, e.g. a file path or "-".
	Name string
	// Size is the input length in bytes if known, -1 otherwise. It only
	// affects scheduling.
	Size int64
	// Open returns the input stream. The server closes it when done.
	Open func() (io.ReadCloser, error)
}

// FileJob returns a job reading the named file.
func FileJob(path string) Job {
	size := int64(-1)
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		size = fi.Size()
	}
	return Job{
		Name: path,
		Size: size,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// Result holds the outcome of a Job. Exactly one of Digests and Err is set.
type Result struct {
	Name    string
	Digests Digests
	Err     error
}

// Server hashes many independent inputs in parallel. Every input gets its
// own engines; nothing is shared between computations.
type Server struct {
	workers int
	algs    []Algorithm
}

// Option configures a Server.
type Option func(*Server)

// WithWorkers limits the number of inputs hashed at the same time. Values
// below 1 select the default, one worker per logical core.
func WithWorkers(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithAlgorithms selects the digests computed for every job.
func WithAlgorithms(algs ...Algorithm) Option {
	return func(s *Server) {
		if len(algs) > 0 {
			s.algs = append([]Algorithm(nil), algs...)
		}
	}
}

// NewServer - Create new object for parallel processing handling
func NewServer(opts ...Option) *Server {
	s := &Server{workers: defaultWorkers(), algs: []Algorithm{MD5}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultWorkers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Workers returns the concurrency limit.
func (s *Server) Workers() int { return s.workers }

// Algorithms returns the digests computed for every job.
func (s *Server) Algorithms() []Algorithm { return s.algs }

// Sum hashes all jobs and returns their results in input order. Once ctx is
// done no further jobs are started; those jobs report ctx.Err().
func (s *Server) Sum(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	swg := sizedwaitgroup.New(s.workers)

	for _, idx := range scheduleJobs(jobs) {
		job := jobs[idx]
		results[idx].Name = job.Name

		err := ctx.Err()
		if err == nil {
			err = swg.AddWithContext(ctx)
		}
		if err != nil {
			results[idx].Err = errors.Wrapf(err, "hashsum: %s not started", job.Name)
			continue
		}

		go func(idx int, job Job) {
			defer swg.Done()
			results[idx].Digests, results[idx].Err = s.run(job)
		}(idx, job)
	}
	swg.Wait()
	return results
}

// run hashes a single job.
func (s *Server) run(job Job) (Digests, error) {
	start := time.Now()
	rc, err := job.Open()
	if err != nil {
		log.Debugw("open failed", "name", job.Name, "err", err)
		return nil, errors.Wrapf(err, "hashsum: opening %s", job.Name)
	}
	defer rc.Close()

	ds, err := SumReaderAll(rc, s.algs...)
	if err != nil {
		log.Debugw("hash failed", "name", job.Name, "err", err)
		return nil, errors.Wrapf(err, "hashsum: hashing %s", job.Name)
	}
	log.Debugw("hashed", "name", job.Name, "size", job.Size, "elapsed", time.Since(start))
	return ds, nil
}
