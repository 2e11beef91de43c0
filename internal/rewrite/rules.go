// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/brunoamaral/catavoz/internal/cverr"
	"github.com/brunoamaral/catavoz/internal/logx"
)

var log = logx.New("rewrite")

// Rule is one compiled {pattern, replacement} entry of the user ruleset
// (spec.md §4.2, §9's "Rewrite rules CSV").
type Rule struct {
	Source      string
	Replacement string
	re          *regexp2.Regexp
}

// LoadRules parses a rewrite CSV: lines of `pattern,replacement`, `#`
// comments, blank lines ignored. A portable `\b` in pattern is passed
// through unchanged — regexp2's default syntax already treats `\b` as a
// word-boundary assertion, so no platform translation is required.
// Missing path is not an error (returns nil, nil), matching spec.md §7's
// "missing optional files ... are not errors". A rule whose pattern
// fails to compile is skipped with a logged diagnostic, not an error.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, cverr.Wrap(cverr.FileRead, "open rewrite ruleset", err)
	}
	defer f.Close()

	var rules []Rule
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pattern, replacement, ok := splitRuleLine(line)
		if !ok {
			log.Warn("skipping malformed rewrite rule", "line", lineNo)
			continue
		}
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			log.Warn("skipping rewrite rule with invalid pattern", "line", lineNo, "pattern", pattern, "error", err)
			continue
		}
		rules = append(rules, Rule{Source: pattern, Replacement: replacement, re: re})
	}
	if err := scanner.Err(); err != nil {
		return nil, cverr.Wrap(cverr.FileRead, "read rewrite ruleset", err)
	}
	return rules, nil
}

// splitRuleLine splits "pattern,replacement" on the first unescaped
// comma. A literal comma in the pattern may be escaped as `\,`.
func splitRuleLine(line string) (pattern, replacement string, ok bool) {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == ',' {
			b.WriteByte(',')
			i++
			continue
		}
		if c == ',' {
			return b.String(), line[i+1:], true
		}
		b.WriteByte(c)
	}
	return "", "", false
}

// Apply runs the ruleset over text in order, each rule rewriting the
// whole buffer produced by the previous one (spec.md §4.2).
func Apply(rules []Rule, text string) string {
	for _, r := range rules {
		text = r.apply(text)
	}
	return text
}

// apply rewrites every match of r in text, substituting `\0`..`\9`
// backreferences in the replacement with the corresponding capture
// group (`\0` is the whole match). regexp2 reports match positions in
// runes, so text is walked as a rune slice.
func (r Rule) apply(text string) string {
	runes := []rune(text)
	var out strings.Builder
	pos := 0
	m, err := r.re.FindStringMatch(text)
	for err == nil && m != nil {
		g := m.Groups()
		start := g[0].Capture.Index
		length := g[0].Capture.Length
		if start < pos {
			m, err = r.re.FindNextMatch(m)
			continue
		}
		out.WriteString(string(runes[pos:start]))
		out.WriteString(expandBackrefs(r.Replacement, m))
		pos = start + length
		if length == 0 {
			if pos < len(runes) {
				out.WriteRune(runes[pos])
			}
			pos++
		}
		m, err = r.re.FindNextMatch(m)
	}
	if pos < len(runes) {
		out.WriteString(string(runes[pos:]))
	}
	return out.String()
}

// expandBackrefs substitutes \0..\9 in repl with m's capture groups.
func expandBackrefs(repl string, m *regexp2.Match) string {
	var b strings.Builder
	groups := m.Groups()
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '\\' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9' {
			n, _ := strconv.Atoi(string(repl[i+1]))
			if n < len(groups) {
				b.WriteString(groups[n].String())
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
