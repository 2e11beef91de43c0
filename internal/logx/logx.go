// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the leveled, structured diagnostics used across the
// build and synthesis pipelines. It is a thin wrapper over charmbracelet/log
// so call sites never depend on the concrete logging library directly.
package logx

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the shared interface used throughout the pipeline.
type Logger = *log.Logger

var base = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "catavoz",
})

// New returns a named sub-logger; it shares base output but tags every line
// with the given component name (e.g. "selector", "build").
func New(component string) Logger {
	return base.WithPrefix("catavoz:" + component)
}

// SetVerbose raises or lowers the global log level (debug when on, warn
// when off); used by the CLI's -v flag.
func SetVerbose(on bool) {
	if on {
		base.SetLevel(log.DebugLevel)
	} else {
		base.SetLevel(log.WarnLevel)
	}
}

// Default returns the root logger, for call sites that don't need a
// component name.
func Default() Logger { return base }
