// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package main

import (
	"github.com/GermanBionicSystems/tc72/gpiodcs"
	"periph.io/x/conn/v3/gpio"
)

func openLine(chip string, offset int) (chipSelect, error) {
	return gpiodcs.Open(chip, offset, gpio.Low)
}
