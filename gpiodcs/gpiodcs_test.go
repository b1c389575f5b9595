// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package gpiodcs

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

type fakeLine struct {
	values []int
	err    error
	closed bool
}

func (f *fakeLine) SetValue(v int) error {
	if f.err != nil {
		return f.err
	}
	f.values = append(f.values, v)
	return nil
}

func (f *fakeLine) Close() error {
	f.closed = true
	return nil
}

func TestOut(t *testing.T) {
	f := &fakeLine{}
	l := &Line{line: f, name: "gpiochip0:25"}
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := l.Out(level); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]int{1, 0, 1}, f.values); diff != "" {
		t.Errorf("values difference (-want +got):\n%s", diff)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if !f.closed {
		t.Error("line not closed")
	}
	if s := l.String(); s != "gpiochip0:25" {
		t.Errorf("String() = %q", s)
	}
}

func TestOutError(t *testing.T) {
	errLine := errors.New("busy")
	l := &Line{line: &fakeLine{err: errLine}, name: "gpiochip0:8"}
	if err := l.Out(gpio.High); !errors.Is(err, errLine) {
		t.Errorf("Out() expected %v, got %v", errLine, err)
	}
	if err := l.Out(gpio.High); err == nil || !strings.Contains(err.Error(), "gpiochip0:8") {
		t.Errorf("Out() error does not name the line: %v", err)
	}
}
