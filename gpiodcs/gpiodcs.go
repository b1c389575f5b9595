// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

// Package gpiodcs drives a chip select line through the Linux GPIO character
// device, for boards where the line is not known to periph's gpioreg.
//
// A *Line can be passed as the tc72.ChipSelect of a tc72.Dev.
package gpiodcs

import (
	"fmt"

	"github.com/warthog618/gpiod"
	"periph.io/x/conn/v3/gpio"
)

type valueSetter interface {
	SetValue(value int) error
	Close() error
}

// Line is a GPIO line requested as an output.
type Line struct {
	chip *gpiod.Chip
	line valueSetter
	name string
}

// Open requests line offset of chip (e.g. "gpiochip0") as an output driven
// to initial. The line stays requested until Close.
func Open(chip string, offset int, initial gpio.Level) (*Line, error) {
	c, err := gpiod.NewChip(chip, gpiod.WithConsumer("tc72"))
	if err != nil {
		return nil, fmt.Errorf("gpiodcs: failed to open GPIO chip: %w", err)
	}
	l, err := c.RequestLine(offset, gpiod.AsOutput(levelValue(initial)))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("gpiodcs: failed to request line %d: %w", offset, err)
	}
	return &Line{chip: c, line: l, name: fmt.Sprintf("%s:%d", chip, offset)}, nil
}

func (l *Line) String() string {
	return l.name
}

// Out implements tc72.ChipSelect.
func (l *Line) Out(level gpio.Level) error {
	if err := l.line.SetValue(levelValue(level)); err != nil {
		return fmt.Errorf("gpiodcs: %s: %w", l.name, err)
	}
	return nil
}

// Close releases the line and the chip.
func (l *Line) Close() error {
	err := l.line.Close()
	if l.chip != nil {
		if cerr := l.chip.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("gpiodcs: failed to close %s: %w", l.name, err)
	}
	return nil
}

func levelValue(l gpio.Level) int {
	if l == gpio.High {
		return 1
	}
	return 0
}
