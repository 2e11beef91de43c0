// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cverr defines the failure taxonomy shared across the synthesis
// pipeline, so callers can branch on a stable code instead of parsing
// error strings.
package cverr

import (
	"errors"
	"fmt"
)

// Code is one of the fixed failure categories the engine can report.
type Code int

const (
	InvalidArg Code = iota
	FileNotFound
	FileRead
	FileWrite
	InvalidFormat
	VersionMismatch
	OutOfMemory
	InvalidWav
)

func (c Code) String() string {
	switch c {
	case InvalidArg:
		return "invalid_arg"
	case FileNotFound:
		return "file_not_found"
	case FileRead:
		return "file_read"
	case FileWrite:
		return "file_write"
	case InvalidFormat:
		return "invalid_format"
	case VersionMismatch:
		return "version_mismatch"
	case OutOfMemory:
		return "out_of_memory"
	case InvalidWav:
		return "invalid_wav"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with one of the fixed codes above.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap builds an Error that wraps an underlying cause.
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Code == code
}
