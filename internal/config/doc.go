// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package config loads hashsum defaults from an optional TOML file.
//
// Example file:
//
//	algorithm = "sha1"
//	output = "base64"
//	untagged = true
//	jobs = 4
//	format = "{digest}  {name}"
//	decompress = false
//
// Every key is optional. Command-line flags take precedence over values
// read from the file.
package config
