// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"math/big"
	"regexp"
	"strings"
)

var digitRun = regexp.MustCompile(`-?[0-9]+`)

var ones = []string{
	"zero", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove",
	"dez", "onze", "doze", "treze", "catorze", "quinze",
	"dezesseis", "dezessete", "dezoito", "dezenove",
}

var tensWords = []string{
	"", "", "vinte", "trinta", "quarenta", "cinquenta",
	"sessenta", "setenta", "oitenta", "noventa",
}

var hundredsWords = []string{
	"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos",
	"seiscentos", "setecentos", "oitocentos", "novecentos",
}

var scaleSingular = []string{"", "mil", "milhão", "bilhão"}
var scalePlural = []string{"", "mil", "milhões", "bilhões"}

// ExpandNumbers replaces every maximal run of ASCII decimal digits
// (optionally preceded by a minus sign) in s with its Portuguese cardinal
// reading (spec.md §4.2).
func ExpandNumbers(s string) string {
	return digitRun.ReplaceAllStringFunc(s, func(m string) string {
		neg := false
		if strings.HasPrefix(m, "-") {
			neg = true
			m = m[1:]
		}
		n := new(big.Int)
		n.SetString(m, 10)
		out := cardinal(n)
		if neg {
			out = "menos " + out
		}
		return out
	})
}

// readGroup renders n (0..999) as words, using the internal "e" joiner
// between a hundreds component and a tens/units component under 100,
// and the irregular "cem" for exactly 100.
func readGroup(n int) string {
	if n == 0 {
		return ""
	}
	if n == 100 {
		return "cem"
	}
	h := n / 100
	r := n % 100
	var parts []string
	if h > 0 {
		parts = append(parts, hundredsWords[h])
	}
	if r > 0 {
		if r < 20 {
			parts = append(parts, ones[r])
		} else {
			t := r / 10
			u := r % 10
			if u == 0 {
				parts = append(parts, tensWords[t])
			} else {
				parts = append(parts, tensWords[t]+" e "+ones[u])
			}
		}
	}
	return strings.Join(parts, " e ")
}

// cardinal renders the non-negative magnitude n as Portuguese words.
func cardinal(n *big.Int) string {
	if n.Sign() == 0 {
		return "zero"
	}

	thousand := big.NewInt(1000)
	var groups []int
	rem := new(big.Int).Set(n)
	mod := new(big.Int)
	for rem.Sign() > 0 {
		rem.DivMod(rem, thousand, mod)
		groups = append(groups, int(mod.Int64()))
	}

	if len(groups) > len(scaleSingular) {
		return digitByDigit(n)
	}

	var chunks []string
	var chunkValues []int
	for i := len(groups) - 1; i >= 0; i-- {
		v := groups[i]
		if v == 0 {
			continue
		}
		if i == 0 {
			chunks = append(chunks, readGroup(v))
		} else if v == 1 {
			if i == 1 {
				chunks = append(chunks, scaleSingular[i])
			} else {
				chunks = append(chunks, "um "+scaleSingular[i])
			}
		} else {
			word := scalePlural[i]
			chunks = append(chunks, readGroup(v)+" "+word)
		}
		chunkValues = append(chunkValues, v)
	}

	if len(chunks) == 0 {
		return "zero"
	}
	if len(chunks) == 1 {
		return chunks[0]
	}

	var b strings.Builder
	for i, c := range chunks {
		if i == 0 {
			b.WriteString(c)
			continue
		}
		isLast := i == len(chunks)-1
		if isLast && chunkValues[i] < 100 {
			b.WriteString(" e ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(c)
	}
	return b.String()
}

// digitByDigit is the fallback for magnitudes beyond the named scales
// (spec.md only requires scales up to billions).
func digitByDigit(n *big.Int) string {
	s := n.String()
	words := make([]string, 0, len(s))
	for _, r := range s {
		d := int(r - '0')
		if d >= 0 && d <= 9 {
			words = append(words, ones[d])
		}
	}
	return strings.Join(words, " ")
}
