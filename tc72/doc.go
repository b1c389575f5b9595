// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tc72 controls a Microchip TC72 digital temperature sensor over SPI.
//
// The TC72 reports a 10-bit two's complement temperature with a resolution of
// 0.25°C. It exposes four registers: Control, LSB, MSB and Manufacturer ID.
// The chip enable line of the TC72 is active high, so the driver manages it
// itself through a ChipSelect instead of relying on the SPI controller. When
// using NewSPI, spi.NoCS is always added to the requested mode.
//
// Range: -55°C - 125°C
//
// Accuracy: +/- 2°C (-40°C - 85°C)
//
// The tc72.Dev type implements the physic.SenseEnv interface. Only the
// Temperature field of physic.Env is set.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/21743B.pdf
package tc72
