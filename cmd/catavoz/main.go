// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command catavoz is the CLI front end for the concatenative
// Brazilian Portuguese speech synthesiser (spec.md §6): the `build` and
// `synth` verbs.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/brunoamaral/catavoz/internal/cverr"
	"github.com/brunoamaral/catavoz/internal/dbbuild"
	"github.com/brunoamaral/catavoz/internal/engine"
	"github.com/brunoamaral/catavoz/internal/logx"
	"github.com/brunoamaral/catavoz/internal/wavio"
)

var log = logx.New("cli")

type buildCmd struct {
	DatasetDir string `arg:"" name:"dataset_dir" help:"Dataset directory (expects letters/ and syllables/ subdirectories)." type:"existingdir"`
	Output     string `arg:"" name:"output_db" help:"Path to write the voice database to."`
}

func (c *buildCmd) Run(_ *cliFlags) error {
	return dbbuild.Build(c.DatasetDir, c.Output)
}

type synthCmd struct {
	Database string   `arg:"" name:"database" help:"Path to a voice database." type:"existingfile"`
	Text     string   `arg:"" name:"text" help:"Text to synthesise."`
	Output   string   `arg:"" name:"output_wav" help:"Path to write the synthesised WAV to."`
	Speed    *float64 `arg:"" name:"speed" help:"Playback speed factor (defaults to the config's default_speed when omitted)." optional:""`
}

func (c *synthCmd) Run(flags *cliFlags) error {
	e, err := engine.New(c.Database)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.LoadConfig(flags.Config); err != nil {
		return err
	}

	speed := e.DefaultSpeed()
	if c.Speed != nil {
		speed = *c.Speed
	}

	samples, err := e.Synthesize(c.Text, speed)
	if err != nil {
		return err
	}

	if err := wavio.Write(c.Output, samples, 22050); err != nil {
		return err
	}

	log.Info("synthesis complete", "units_found", e.UnitsFound, "units_missing", e.UnitsMissing)
	return nil
}

type cliFlags struct {
	Config  string `help:"Path to a configuration file." type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose diagnostics."`

	Build buildCmd `cmd:"" name:"build" help:"Build a voice database from a dataset directory."`
	Synth synthCmd `cmd:"" name:"synth" help:"Synthesise text into a WAV file."`
}

func main() {
	var flags cliFlags
	ctx := kong.Parse(&flags,
		kong.Name("catavoz"),
		kong.Description("Concatenative Brazilian Portuguese speech synthesiser."),
		kong.UsageOnError(),
	)

	logx.SetVerbose(flags.Verbose)

	err := ctx.Run(&flags)
	if err != nil {
		printErr(err)
		os.Exit(1)
	}
}

func printErr(err error) {
	if ce, ok := err.(*cverr.Error); ok {
		fmt.Fprintf(os.Stderr, "catavoz: %s\n", ce.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "catavoz: %v\n", err)
}
