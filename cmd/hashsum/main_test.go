// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func runHashsum(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestStdin(t *testing.T) {
	code, out, errOut := runHashsum(t, "abc")
	require.Equal(t, exitOK, code, errOut)
	require.Equal(t, "MD5 (-) = 900150983cd24fb0d6963f7d28e17f72\n", out)

	code, out, _ = runHashsum(t, "abc", "-u", "-a", "sha1", "-")
	require.Equal(t, exitOK, code)
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d  -\n", out)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("abc"))
	b := writeFile(t, dir, "b.txt", nil)

	code, out, _ := runHashsum(t, "", "--algorithm", "sha1", a, b)
	require.Equal(t, exitOK, code)
	require.Equal(t,
		"SHA1 ("+a+") = a9993e364706816aba3e25717850c26c9cd0d89d\n"+
			"SHA1 ("+b+") = da39a3ee5e6b4b0d3255bfef95601890afd80709\n", out)

	code, out, _ = runHashsum(t, "", "-a", "md5,sha1", "-b", "-u", a)
	require.Equal(t, exitOK, code)
	require.Equal(t,
		"kAFQmDzST7DWlj99KOF/cg==  "+a+"\n"+
			"qZk+NkcGgWq6PiVxeFDCbJzQ2J0=  "+a+"\n", out)
}

func TestMissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("abc"))
	code, out, errOut := runHashsum(t, "", "-u", filepath.Join(dir, "missing"), a)
	require.Equal(t, exitFailed, code)
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72  "+a+"\n", out)
	require.Contains(t, errOut, "missing")
}

func TestFormatAndJSON(t *testing.T) {
	code, out, _ := runHashsum(t, "abc", "--format", "{ALGO}={digest}")
	require.Equal(t, exitOK, code)
	require.Equal(t, "MD5=900150983cd24fb0d6963f7d28e17f72\n", out)

	code, out, _ = runHashsum(t, "abc", "--json", "-a", "sha1")
	require.Equal(t, exitOK, code)
	require.JSONEq(t, `{"name":"-","algorithm":"sha1","encoding":"hex","digest":"a9993e364706816aba3e25717850c26c9cd0d89d"}`, out)
}

func TestDecompress(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write([]byte("abc"))
	require.NoError(t, zw.Close())
	gzPath := writeFile(t, dir, "a.gz", gz.Bytes())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zstPath := writeFile(t, dir, "a.zst", enc.EncodeAll([]byte("abc"), nil))
	require.NoError(t, enc.Close())

	code, out, errOut := runHashsum(t, "", "--decompress", "-u", gzPath, zstPath)
	require.Equal(t, exitOK, code, errOut)
	require.Equal(t,
		"900150983cd24fb0d6963f7d28e17f72  "+gzPath+"\n"+
			"900150983cd24fb0d6963f7d28e17f72  "+zstPath+"\n", out)

	// Without the flag the compressed bytes are hashed.
	_, out, _ = runHashsum(t, "", "-u", gzPath)
	require.NotContains(t, out, "900150983cd24fb0d6963f7d28e17f72")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "hashsum.toml", []byte("algorithm = \"sha1\"\nuntagged = true\n"))

	code, out, _ := runHashsum(t, "abc", "--config", cfg)
	require.Equal(t, exitOK, code)
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d  -\n", out)

	// Flags win over the file.
	code, out, _ = runHashsum(t, "abc", "--config", cfg, "-a", "md5")
	require.Equal(t, exitOK, code)
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72  -\n", out)

	bad := writeFile(t, dir, "bad.toml", []byte("jobs = -3\n"))
	code, _, errOut := runHashsum(t, "abc", "--config", bad)
	require.Equal(t, exitUsage, code)
	require.Contains(t, errOut, "jobs")
}

func TestUsageErrors(t *testing.T) {
	code, _, errOut := runHashsum(t, "", "-a", "sha256")
	require.Equal(t, exitUsage, code)
	require.Contains(t, errOut, "sha256")
	require.Contains(t, errOut, helpInfoMsg)

	code, _, errOut = runHashsum(t, "", "--bogus")
	require.Equal(t, exitUsage, code)
	require.Contains(t, errOut, helpInfoMsg)

	code, _, _ = runHashsum(t, "", "--jobs", "-1")
	require.Equal(t, exitUsage, code)

	code, _, errOut = runHashsum(t, "", "-j", "100000")
	require.Equal(t, exitUsage, code)
	require.Contains(t, errOut, "jobs")

	for _, args := range [][]string{{"-b", "--multihash"}, {"--multihash", "--base64"}} {
		code, out, errOut := runHashsum(t, "abc", args...)
		require.Equal(t, exitUsage, code)
		require.Empty(t, out)
		require.Contains(t, errOut, "mutually exclusive")
	}
}

func TestStdinTwice(t *testing.T) {
	input := strings.Repeat("0123456789abcdef", 1<<16)
	want := fmt.Sprintf("%x  -\nd41d8cd98f00b204e9800998ecf8427e  -\n", md5.Sum([]byte(input)))

	for i := 0; i < 4; i++ {
		code, out, errOut := runHashsum(t, input, "-u", "-j", "4", "-", "-")
		require.Equal(t, exitOK, code, errOut)
		require.Equal(t, want, out)
	}
}

func TestAlgorithmSpellings(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "hashsum.toml", []byte("algorithm = \"SHA-1, md5\"\nuntagged = true\n"))

	code, out, errOut := runHashsum(t, "abc", "--config", cfg)
	require.Equal(t, exitOK, code, errOut)
	require.Equal(t,
		"a9993e364706816aba3e25717850c26c9cd0d89d  -\n"+
			"900150983cd24fb0d6963f7d28e17f72  -\n", out)

	code, out, errOut = runHashsum(t, "abc", "-u", "-a", "SHA1")
	require.Equal(t, exitOK, code, errOut)
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d  -\n", out)
}

func TestVerbose(t *testing.T) {
	code, out, errOut := runHashsum(t, "abc", "--verbose", "-u")
	require.Equal(t, exitOK, code, errOut)
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72  -\n", out)
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := runHashsum(t, "", "--help")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "Usage: hashsum")

	code, out, _ = runHashsum(t, "", "-V")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "hashsum version")
}
