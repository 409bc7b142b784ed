// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	logging "github.com/ipfs/go-log/v2"

	"github.com/minio/hashsum"
	"github.com/minio/hashsum/internal/config"
	"github.com/minio/hashsum/internal/output"
)

var (
	version = "dev"
	commit  = "n/a"
)

var log = logging.Logger("hashsum")

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	helpInfoMsg = "Try 'hashsum --help' for more information."
)

const usageText = `Usage: hashsum [OPTION]... [FILE]...
With no FILE, or when FILE is -, read standard input.

Options:
    -a, --algorithm=DIGEST    Select the digest type to use. DIGEST is md5 or
                                sha1; a comma separated list computes several.
    -b, --base64              Emit base64-encoded digests instead of hexadecimal.
        --multihash           Emit base32 multibase multihashes.
    -u, --untagged            Create a reversed style checksum, without digest type.
                                Default is a BSD-style checksum.
        --format=TEMPLATE     Render lines from TEMPLATE using the tags {algo},
                                {ALGO}, {digest} and {name}.
        --json                Emit one JSON object per digest.
        --decompress          Hash the decompressed contents of .gz and .zst files.
    -j, --jobs=N              Hash up to N files in parallel (default: one per core).
        --config=FILE         Read defaults from a TOML file.
        --verbose             Enable debug logging.
    -h, --help                Display this help and exit.
    -V, --version             Output version information and exit.
`

// options holds the command line after parsing.
type options struct {
	configPath string
	algorithm  string
	base64     bool
	multihash  bool
	untagged   bool
	format     string
	json       bool
	decompress bool
	jobs       int
	verbose    bool
	help       bool
	version    bool
	files      []string
	set        map[string]bool
}

func parseArgs(args []string) (*options, error) {
	opts := &options{set: map[string]bool{}}

	fs := flag.NewFlagSet("hashsum", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "")
	fs.StringVar(&opts.algorithm, "a", "", "")
	fs.StringVar(&opts.algorithm, "algorithm", "", "")
	fs.BoolVar(&opts.base64, "b", false, "")
	fs.BoolVar(&opts.base64, "base64", false, "")
	fs.BoolVar(&opts.multihash, "multihash", false, "")
	fs.BoolVar(&opts.untagged, "u", false, "")
	fs.BoolVar(&opts.untagged, "untagged", false, "")
	fs.StringVar(&opts.format, "format", "", "")
	fs.BoolVar(&opts.json, "json", false, "")
	fs.BoolVar(&opts.decompress, "decompress", false, "")
	fs.IntVar(&opts.jobs, "j", 0, "")
	fs.IntVar(&opts.jobs, "jobs", 0, "")
	fs.BoolVar(&opts.verbose, "verbose", false, "")
	fs.BoolVar(&opts.help, "h", false, "")
	fs.BoolVar(&opts.help, "help", false, "")
	fs.BoolVar(&opts.version, "V", false, "")
	fs.BoolVar(&opts.version, "version", false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.files = fs.Args()
	return opts, nil
}

// settings merges the config file, if any, with the flags that were set.
func (o *options) settings() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(o.configPath); err != nil {
			return nil, err
		}
	}

	if o.set["a"] || o.set["algorithm"] {
		cfg.Algorithm = o.algorithm
	}
	setBase64 := o.set["b"] || o.set["base64"]
	if setBase64 && o.set["multihash"] {
		return nil, errors.New("options '--base64' and '--multihash' are mutually exclusive")
	}
	if setBase64 {
		cfg.Output = config.OutputBase64
	}
	if o.set["multihash"] {
		cfg.Output = config.OutputMultihash
	}
	if o.set["u"] || o.set["untagged"] {
		cfg.Untagged = o.untagged
	}
	if o.set["format"] {
		cfg.Format = o.format
	}
	if o.set["decompress"] {
		cfg.Decompress = o.decompress
	}
	if o.set["j"] || o.set["jobs"] {
		cfg.Jobs = o.jobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseAlgorithms(list string) ([]hashsum.Algorithm, error) {
	var algs []hashsum.Algorithm
	for _, name := range strings.Split(list, ",") {
		alg, err := hashsum.ParseAlgorithm(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q for '--algorithm'\nValid arguments are:\n    - 'md5'\n    - 'sha1'", name)
		}
		algs = append(algs, alg)
	}
	return algs, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err == flag.ErrHelp {
		fmt.Fprint(stdout, usageText)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "hashsum: %v\n%s\n", err, helpInfoMsg)
		return exitUsage
	}
	if opts.help {
		fmt.Fprint(stdout, usageText)
		return exitOK
	}
	if opts.version {
		fmt.Fprintf(stdout, "hashsum version %s (commit %s)\n", version, commit)
		return exitOK
	}
	if opts.verbose {
		for _, name := range []string{"hashsum", "hashsum/server"} {
			if err := logging.SetLogLevel(name, "debug"); err != nil {
				fmt.Fprintf(stderr, "hashsum: %v\n", err)
				return exitUsage
			}
		}
	}

	cfg, err := opts.settings()
	if err != nil {
		fmt.Fprintf(stderr, "hashsum: %v\n%s\n", err, helpInfoMsg)
		return exitUsage
	}
	algs, err := parseAlgorithms(cfg.Algorithm)
	if err != nil {
		fmt.Fprintf(stderr, "hashsum: %v\n%s\n", err, helpInfoMsg)
		return exitUsage
	}
	out, err := output.New(stdout, output.Options{
		Encoding: cfg.Output,
		Untagged: cfg.Untagged,
		Format:   cfg.Format,
		JSON:     opts.json,
	})
	if err != nil {
		fmt.Fprintf(stderr, "hashsum: %v\n", err)
		return exitUsage
	}

	files := opts.files
	if len(files) == 0 {
		files = []string{"-"}
	}
	jobs := make([]hashsum.Job, len(files))
	stdinTaken := false
	for i, name := range files {
		if name == "-" {
			// Standard input can be read once; later operands see it at EOF.
			if stdinTaken {
				jobs[i] = stdinJob(bytes.NewReader(nil))
			} else {
				jobs[i] = stdinJob(stdin)
				stdinTaken = true
			}
		} else {
			jobs[i] = hashsum.FileJob(name)
		}
		if cfg.Decompress {
			jobs[i] = decompressing(jobs[i])
		}
	}

	server := hashsum.NewServer(hashsum.WithWorkers(cfg.Jobs), hashsum.WithAlgorithms(algs...))
	log.Debugw("hashing", "inputs", len(jobs), "workers", server.Workers(), "algorithms", cfg.Algorithm)

	status := exitOK
	for _, r := range server.Sum(ctx, jobs) {
		if r.Err != nil {
			log.Debugw("input failed", "name", r.Name, "err", r.Err)
			fmt.Fprintf(stderr, "hashsum: %s: %v\n", r.Name, r.Err)
			status = exitFailed
			continue
		}
		for _, alg := range algs {
			if err := out.Write(r.Name, r.Digests[alg]); err != nil {
				fmt.Fprintf(stderr, "hashsum: %v\n", err)
				return exitFailed
			}
		}
	}
	return status
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
