// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "log"

// Logger is the logging sink used by the storage coordinator for version
// installation and flush events; the coordinator itself only logs at Info
// level, and corruption errors are returned rather than logged. Errorf is
// part of the interface for callers' own use. It is deliberately narrow: the core
// has no metrics or tracing surface (see Non-goals), only the two levels a
// caller needs to triage a misbehaving engine.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DefaultLogger logs through the standard library's log package. It is used
// whenever Options.Logger is left nil.
var DefaultLogger Logger = stdLogger{}

type stdLogger struct{}

func (stdLogger) Infof(format string, args ...interface{}) {
	log.Printf("lsmkv: "+format, args...)
}

func (stdLogger) Errorf(format string, args ...interface{}) {
	log.Printf("lsmkv: ERROR: "+format, args...)
}
