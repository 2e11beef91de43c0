// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import "github.com/brunoamaral/catavoz/internal/lower"

// Process runs the full C3 text-preprocessing pipeline (spec.md §4.2):
// number expansion, then the shared ruleset, then the Portuguese
// lowercaser.
func Process(s *Shared, text string) string {
	text = ExpandNumbers(text)
	if s != nil {
		text = Apply(s.Rules(), text)
	}
	return lower.String(text)
}
