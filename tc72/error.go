// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tc72

import "errors"

// ErrManufacturer is returned by New and NewSPI when the manufacturer id
// register does not hold ExpectedManufacturerID.
var ErrManufacturer = errors.New("tc72: unexpected manufacturer id")

// BusError is returned when an SPI transfer fails.
type BusError struct {
	Err error
}

func (e *BusError) Error() string {
	return "tc72: bus transfer failed: " + e.Err.Error()
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// ChipSelectError is returned when driving the chip enable line fails.
type ChipSelectError struct {
	Err error
}

func (e *ChipSelectError) Error() string {
	return "tc72: chip select failed: " + e.Err.Error()
}

func (e *ChipSelectError) Unwrap() error {
	return e.Err
}
