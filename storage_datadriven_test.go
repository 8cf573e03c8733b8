// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lsmkv

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// runPutCmd applies one put(key, value) per input line, "key value"
// space-separated.
func runPutCmd(t testing.TB, td *datadriven.TestData, s *Storage) string {
	var buf bytes.Buffer
	for _, line := range strings.Split(td.Input, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if err := s.Put([]byte(fields[0]), []byte(fields[1])); err != nil {
			fmt.Fprintf(&buf, "%s: %s\n", line, err)
		}
	}
	return buf.String()
}

// runDeleteCmd deletes one key per input line.
func runDeleteCmd(t testing.TB, td *datadriven.TestData, s *Storage) string {
	var buf bytes.Buffer
	for _, line := range strings.Split(td.Input, "\n") {
		if line == "" {
			continue
		}
		if err := s.Delete([]byte(line)); err != nil {
			fmt.Fprintf(&buf, "%s: %s\n", line, err)
		}
	}
	return buf.String()
}

// runGetCmd reports, one line per input key, "key:value" or "key: <err>".
func runGetCmd(t testing.TB, td *datadriven.TestData, s *Storage) string {
	var buf bytes.Buffer
	for _, key := range strings.Split(td.Input, "\n") {
		if key == "" {
			continue
		}
		v, ok, err := s.Get([]byte(key))
		switch {
		case err != nil:
			fmt.Fprintf(&buf, "%s: %s\n", key, err)
		case !ok:
			fmt.Fprintf(&buf, "%s: <missing>\n", key)
		default:
			fmt.Fprintf(&buf, "%s:%s\n", key, v)
		}
	}
	return buf.String()
}

// runScanCmd scans the whole keyspace and reports "key:value" per line.
func runScanCmd(t testing.TB, td *datadriven.TestData, s *Storage) string {
	it, err := s.Scan(Bound{Kind: Unbounded}, Bound{Kind: Unbounded})
	if err != nil {
		return err.Error()
	}
	var buf bytes.Buffer
	for it.Valid() {
		fmt.Fprintf(&buf, "%s:%s\n", it.Key(), it.Value())
		if err := it.Next(); err != nil {
			fmt.Fprintf(&buf, "error: %s\n", err)
			break
		}
	}
	return buf.String()
}

func TestStorageDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata/storage", func(t *testing.T, path string) {
		s, err := Open(t.TempDir(), nil)
		if err != nil {
			t.Fatal(err)
		}
		datadriven.RunTest(t, path, func(t *testing.T, td *datadriven.TestData) string {
			switch td.Cmd {
			case "put":
				return runPutCmd(t, td, s)
			case "delete":
				return runDeleteCmd(t, td, s)
			case "get":
				return runGetCmd(t, td, s)
			case "scan":
				return runScanCmd(t, td, s)
			case "flush":
				if err := s.Flush(); err != nil {
					return err.Error()
				}
				return ""
			case "flush-l0":
				if err := s.FlushOldestToL0(); err != nil {
					return err.Error()
				}
				return ""
			default:
				t.Fatalf("unknown command %s", td.Cmd)
				return ""
			}
		})
	})
}
