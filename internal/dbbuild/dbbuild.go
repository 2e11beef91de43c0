// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbbuild assembles a voice database from a dataset directory
// (spec.md §4.1's Build, §6's CLI "build" verb): two `filename|text|display`
// index files and their matching recording directories.
package dbbuild

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brunoamaral/catavoz/internal/cverr"
	"github.com/brunoamaral/catavoz/internal/dbfmt"
	"github.com/brunoamaral/catavoz/internal/logx"
	"github.com/brunoamaral/catavoz/internal/lower"
	"github.com/brunoamaral/catavoz/internal/wavio"
)

var log = logx.New("dbbuild")

// kind describes one of the two recording sets the CLI "build" verb
// expects (spec.md §6: "letters/wavs, letters/letters.txt,
// syllables/wavs, syllables/sillabes.txt").
type kind struct {
	dir       string
	wavsDir   string
	indexFile string
}

var kinds = []kind{
	{dir: "letters", wavsDir: "wavs", indexFile: "letters.txt"},
	{dir: "syllables", wavsDir: "wavs", indexFile: "sillabes.txt"},
}

// entry is one parsed line of an index file.
type entry struct {
	filename string
	text     string
}

// Build reads datasetDir's letters and syllables sets, decodes every
// recording, merges both sets into one unit list and writes the voice
// database to outputPath.
func Build(datasetDir, outputPath string) error {
	var units []dbfmt.BuildUnit

	for _, k := range kinds {
		indexPath := filepath.Join(datasetDir, k.dir, k.indexFile)
		entries, err := parseIndex(indexPath)
		if err != nil {
			return err
		}
		wavsDir := filepath.Join(datasetDir, k.dir, k.wavsDir)
		for _, e := range entries {
			samples, _, err := wavio.Load(filepath.Join(wavsDir, e.filename))
			if err != nil {
				return err
			}
			units = append(units, dbfmt.BuildUnit{
				Text:    lower.String(e.text),
				Samples: samples,
			})
		}
		log.Info("loaded unit set", "kind", k.dir, "count", len(entries))
	}

	// dbfmt.Write does the final character-count/lexicographic sort;
	// this stable pre-sort only makes merge order deterministic when
	// letters and syllables share a text value.
	sort.SliceStable(units, func(i, j int) bool { return units[i].Text < units[j].Text })

	if err := dbfmt.Write(outputPath, units); err != nil {
		return err
	}
	log.Info("wrote voice database", "path", outputPath, "units", len(units))
	return nil
}

// parseIndex reads one `filename|text|display` index file, skipping `#`
// comments and blank lines.
func parseIndex(path string) ([]entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cverr.Wrap(cverr.FileNotFound, "open index file", err)
		}
		return nil, cverr.Wrap(cverr.FileRead, "open index file", err)
	}
	defer f.Close()

	var entries []entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "|", 3)
		if len(fields) < 2 {
			log.Warn("skipping malformed index line", "file", path, "line", lineNo)
			continue
		}
		entries = append(entries, entry{filename: fields[0], text: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, cverr.Wrap(cverr.FileRead, "read index file", err)
	}
	return entries, nil
}
