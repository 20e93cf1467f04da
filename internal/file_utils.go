// Copyright (c) 2022 Contributors to the Eclipse Foundation
//
// See the NOTICE file(s) distributed with this work for additional
// information regarding copyright ownership.
//
// This program and the accompanying materials are made available under the
// terms of the Eclipse Public License 2.0 which is available at
// http://www.eclipse.org/legal/epl-2.0
//
// SPDX-License-Identifier: EPL-2.0

package panel

import (
	"os"
	"path/filepath"
	"strings"
)

func isFile(link string) bool {
	if fs, err := os.Stat(link); err == nil && !fs.IsDir() {
		return true
	}
	return false
}

func isDir(dir string) bool {
	if fs, err := os.Stat(dir); err == nil && fs.IsDir() {
		return true
	}
	return false
}

// readTrimmed returns the file content without surrounding white space.
func readTrimmed(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// sameFile reports whether both paths point to the same location once made absolute.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
