// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package main

import "errors"

func openLine(chip string, offset int) (chipSelect, error) {
	return nil, errors.New("-gpiochip is only supported on linux")
}
