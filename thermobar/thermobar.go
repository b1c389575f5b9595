// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermobar draws a temperature as a one line colored bar on the
// terminal using ANSI color codes.
//
// Cells fill from left to right between Opts.Min and Opts.Max, and shade from
// blue at the cold end to red at the hot end.
package thermobar

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/physic"
)

// Opts represents the options available for the bar.
type Opts struct {
	// Width is the number of cells.
	Width int
	// Min and Max are the temperatures of an empty and a full bar.
	Min, Max physic.Temperature
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// DefaultOpts covers the range of a TC72 with one cell per 5°C.
var DefaultOpts = Opts{
	Width: 36,
	Min:   physic.ZeroCelsius - 55*physic.Kelvin,
	Max:   physic.ZeroCelsius + 125*physic.Kelvin,
}

var off = color.NRGBA{0, 0, 0, 255}

// Dev is a terminal thermometer.
type Dev struct {
	w       io.Writer
	width   int
	min     physic.Temperature
	max     physic.Temperature
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev. If opts is nil, DefaultOpts is used.
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Width <= 0 {
		return nil, errors.New("thermobar: invalid width")
	}
	if opts.Min >= opts.Max {
		return nil, errors.New("thermobar: invalid temperature range")
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{w: w, width: opts.Width, min: opts.Min, max: opts.Max, palette: *p}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("Thermobar{%s..%s}", d.min, d.max)
}

// Halt implements conn.Resource.
//
// It moves to the next line and resets the colors so the terminal is not
// left corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show redraws the bar for t, followed by t as text.
func (d *Dev) Show(t physic.Temperature) error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	n := d.filled(t)
	for i := 0; i < d.width; i++ {
		c := off
		if i < n {
			c = d.cellColor(i)
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, _ = d.buf.WriteString(t.String())
	_, err := d.buf.WriteTo(d.w)
	return err
}

// filled returns the number of lit cells for t, clamped to the bar.
func (d *Dev) filled(t physic.Temperature) int {
	if t <= d.min {
		return 0
	}
	if t >= d.max {
		return d.width
	}
	return int(int64(t-d.min) * int64(d.width) / int64(d.max-d.min))
}

// cellColor shades cell i from blue to red.
func (d *Dev) cellColor(i int) color.NRGBA {
	hot := 255
	if d.width > 1 {
		hot = 255 * i / (d.width - 1)
	}
	return color.NRGBA{byte(hot), 0, byte(255 - hot), 255}
}

var _ fmt.Stringer = &Dev{}
