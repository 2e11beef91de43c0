// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import "sync"

// Shared is the process-wide compiled ruleset handle (spec.md §5's
// "Shared-resource policy: the rewrite ruleset is process-wide; first
// synthesis call loads it (idempotent); engine teardown releases it.").
//
// It is reference-counted rather than a bare package-level global so an
// engine's teardown can release its hold without tearing down a ruleset
// still in use by another concurrently-open engine in the same process.
type Shared struct {
	mu       sync.Mutex
	path     string
	rules    []Rule
	loadErr  error
	loaded   bool
	refCount int
}

var registry = struct {
	mu    sync.Mutex
	byKey map[string]*Shared
}{byKey: make(map[string]*Shared)}

// Acquire returns the process-wide Shared ruleset for path, loading it on
// first acquisition for that path. Loading is idempotent: concurrent or
// repeated Acquire calls for the same path reuse the already-loaded
// ruleset instead of re-parsing the CSV.
func Acquire(path string) (*Shared, error) {
	registry.mu.Lock()
	s, ok := registry.byKey[path]
	if !ok {
		s = &Shared{path: path}
		registry.byKey[path] = s
	}
	registry.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.rules, s.loadErr = LoadRules(path)
		s.loaded = true
	}
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	s.refCount++
	return s, nil
}

// Release drops the caller's hold on s. Once the reference count reaches
// zero the ruleset is evicted from the registry so a later Acquire for
// the same path re-reads the CSV from disk.
func (s *Shared) Release() {
	s.mu.Lock()
	s.refCount--
	empty := s.refCount <= 0
	s.mu.Unlock()

	if empty {
		registry.mu.Lock()
		if cur, ok := registry.byKey[s.path]; ok && cur == s {
			delete(registry.byKey, s.path)
		}
		registry.mu.Unlock()
	}
}

// Rules returns the loaded ruleset snapshot.
func (s *Shared) Rules() []Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules
}
