// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermobar

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/physic"
)

func TestNewInvalid(t *testing.T) {
	if _, err := New(&Opts{Width: 0, Min: 0, Max: 1}); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := New(&Opts{Width: 4, Min: 1, Max: 1}); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestFilled(t *testing.T) {
	d, err := New(&Opts{Width: 10, Min: physic.ZeroCelsius, Max: physic.ZeroCelsius + 100*physic.Kelvin, W: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		t        physic.Temperature
		expected int
	}{
		{physic.ZeroCelsius - 10*physic.Kelvin, 0},
		{physic.ZeroCelsius, 0},
		{physic.ZeroCelsius + 9750*physic.MilliKelvin, 0},
		{physic.ZeroCelsius + 10*physic.Kelvin, 1},
		{physic.ZeroCelsius + 55*physic.Kelvin, 5},
		{physic.ZeroCelsius + 100*physic.Kelvin, 10},
		{physic.ZeroCelsius + 125*physic.Kelvin, 10},
	}
	for _, test := range tests {
		if got := d.filled(test.t); got != test.expected {
			t.Errorf("filled(%s) = %d, expected %d", test.t, got, test.expected)
		}
	}
}

func TestShow(t *testing.T) {
	buf := &bytes.Buffer{}
	d, err := New(&Opts{Width: 4, Min: physic.ZeroCelsius, Max: physic.ZeroCelsius + 40*physic.Kelvin, W: buf})
	if err != nil {
		t.Fatal(err)
	}
	temp := physic.ZeroCelsius + 25*physic.Kelvin
	if err := d.Show(temp); err != nil {
		t.Fatal(err)
	}
	p := ansi256.Default
	expected := "\r\033[0m" +
		p.Block(color.NRGBA{0, 0, 255, 255}) +
		p.Block(color.NRGBA{85, 0, 170, 255}) +
		p.Block(off) +
		p.Block(off) +
		"\033[0m " + temp.String()
	if got := buf.String(); got != expected {
		t.Errorf("Show() = %q, expected %q", got, expected)
	}

	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.HasSuffix(got, "\033[0m") {
		t.Errorf("Halt() = %q", got)
	}
}

func TestString(t *testing.T) {
	d, err := New(&Opts{Width: 1, Min: physic.ZeroCelsius, Max: physic.ZeroCelsius + physic.Kelvin, W: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); !strings.HasPrefix(s, "Thermobar{") {
		t.Errorf("String() = %q", s)
	}
}
