// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tc72

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Register is the address of one of the TC72 registers.
type Register byte

const (
	// RegControl holds the shutdown and one-shot bits.
	RegControl Register = 0x00
	// RegLSB holds the two least significant temperature bits in bits 7-6.
	RegLSB Register = 0x01
	// RegMSB holds the eight most significant temperature bits.
	RegMSB Register = 0x02
	// RegManufacturerID is read-only and always holds ExpectedManufacturerID.
	RegManufacturerID Register = 0x03
)

func (r Register) String() string {
	switch r {
	case RegControl:
		return "Control"
	case RegLSB:
		return "LSB"
	case RegMSB:
		return "MSB"
	case RegManufacturerID:
		return "ManufacturerID"
	default:
		return fmt.Sprintf("Register(%d)", byte(r))
	}
}

const (
	// ExpectedManufacturerID is the content of the manufacturer id register
	// of a TC72.
	ExpectedManufacturerID byte = 0x54

	// OneShotConversionTime is the time the device needs to complete a
	// conversion.
	OneShotConversionTime = 150 * time.Millisecond

	// Resolution is the value of one count of the temperature registers.
	Resolution physic.Temperature = 250 * physic.MilliKelvin

	// MinimumTemperature is the lowest temperature the device can read.
	MinimumTemperature physic.Temperature = physic.ZeroCelsius - 55*physic.Kelvin
	// MaximumTemperature is the highest temperature the device can read.
	MaximumTemperature physic.Temperature = physic.ZeroCelsius + 125*physic.Kelvin

	writeBit    byte = 0x08
	shutdownBit byte = 1 << 0
	oneShotBit  byte = 1 << 4

	rawMask    uint16 = 0x3ff
	rawSignBit uint16 = 1 << 9
)

// Conn is the bus a Dev talks through. spi.Conn implements it.
//
// A full-duplex transfer is Tx(w, r) with len(r) == len(w), a write is
// Tx(w, nil).
type Conn interface {
	Tx(w, r []byte) error
}

// ChipSelect drives the chip enable line of the device. gpio.PinOut
// implements it.
type ChipSelect interface {
	Out(l gpio.Level) error
}

// Delayer blocks the caller for the requested duration.
type Delayer interface {
	Delay(d time.Duration)
}

// DelayFunc adapts a function to the Delayer interface.
type DelayFunc func(d time.Duration)

// Delay implements Delayer.
func (f DelayFunc) Delay(d time.Duration) {
	f(d)
}

// Sleep is a Delayer that calls time.Sleep.
var Sleep Delayer = DelayFunc(time.Sleep)

// Opts holds the configuration options for the device.
type Opts struct {
	// MaxSpeed is the SPI clock used by NewSPI. The device supports up to
	// 7.5MHz.
	MaxSpeed physic.Frequency
	// Mode is the SPI mode used by NewSPI. The device samples on the
	// falling edge, so use spi.Mode1 or spi.Mode3. spi.NoCS is always added.
	Mode spi.Mode
	// OneShot makes Sense trigger a single conversion and wait for it, instead
	// of leaving the device converting continuously.
	OneShot bool
	// Delay is used by Sense to wait for conversions. Leave nil to use Sleep.
	Delay Delayer
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	MaxSpeed: 5 * physic.MegaHertz,
	Mode:     spi.Mode1,
}

// Dev represents a TC72 sensor.
//
// The bus and the chip select line are owned by the Dev. Nothing else may
// use them while the Dev is in use.
type Dev struct {
	c    Conn
	cs   ChipSelect
	opts Opts

	mu         sync.Mutex
	converting bool
	stop       chan struct{}
	wg         sync.WaitGroup
}

// New returns a Dev that uses c, which must already be configured for the
// device, and the chip select line cs.
//
// The manufacturer id register is read once. If it does not hold
// ExpectedManufacturerID, no Dev is returned and the error wraps
// ErrManufacturer.
func New(c Conn, cs ChipSelect) (*Dev, error) {
	return newDev(c, cs, &DefaultOpts)
}

// NewSPI connects to p and returns a Dev. If opts is nil, DefaultOpts is
// used.
func NewSPI(p spi.Port, cs ChipSelect, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	c, err := p.Connect(opts.MaxSpeed, opts.Mode|spi.NoCS, 8)
	if err != nil {
		return nil, &BusError{Err: err}
	}
	return newDev(c, cs, opts)
}

func newDev(c Conn, cs ChipSelect, opts *Opts) (*Dev, error) {
	d := &Dev{c: c, cs: cs, opts: *opts}
	if d.opts.Delay == nil {
		d.opts.Delay = Sleep
	}
	id, err := d.readRegister(RegManufacturerID)
	if err != nil {
		return nil, err
	}
	if id != ExpectedManufacturerID {
		return nil, fmt.Errorf("%w: read 0x%02x, expected 0x%02x", ErrManufacturer, id, ExpectedManufacturerID)
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("TC72{%v}", d.c)
}

// ReadRegister returns the content of register r.
func (d *Dev) ReadRegister(r Register) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRegister(r)
}

// WriteRegister writes v to register r.
func (d *Dev) WriteRegister(r Register, v byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeRegister(r, v)
}

// ManufacturerID returns the content of the manufacturer id register.
func (d *Dev) ManufacturerID() (byte, error) {
	return d.ReadRegister(RegManufacturerID)
}

// Control writes the control register. shutdown stops continuous
// conversions, oneShot requests a single conversion.
func (d *Dev) Control(shutdown, oneShot bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control(shutdown, oneShot)
}

// ReadRaw returns the 10-bit temperature count, as read from the MSB and LSB
// registers.
func (d *Dev) ReadRaw() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRaw()
}

// ReadCelsius returns the temperature in degrees Celsius.
func (d *Dev) ReadCelsius() (float64, error) {
	raw, err := d.ReadRaw()
	if err != nil {
		return 0, err
	}
	return RawToCelsius(raw), nil
}

// OneShot requests a single conversion, waits OneShotConversionTime using
// delay and returns the temperature in degrees Celsius. If delay is nil, Sleep
// is used.
//
// Completion of the conversion is not checked, delay must block for the
// whole duration.
func (d *Dev) OneShot(delay Delayer) (float64, error) {
	if delay == nil {
		delay = Sleep
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.oneShot(delay)
	if err != nil {
		return 0, err
	}
	return RawToCelsius(raw), nil
}

// Sense implements physic.SenseEnv. Only the temperature is set.
//
// With Opts.OneShot, every call triggers a conversion and waits for it.
// Otherwise the first call after New or Halt enables continuous conversions
// and waits for the first one to complete.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var raw uint16
	var err error
	if d.opts.OneShot {
		raw, err = d.oneShot(d.opts.Delay)
	} else {
		raw, err = d.readContinuous()
	}
	if err != nil {
		return err
	}
	e.Temperature = RawToTemperature(raw)
	return nil
}

// SenseContinuous implements physic.SenseEnv. It returns a channel that
// receives a measurement every interval until Halt is called.
//
// The channel is closed on the first failed measurement, since the bus and
// the device are then in an unknown state. Call Halt before sensing again.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < OneShotConversionTime {
		return nil, fmt.Errorf("tc72: invalid interval %s, minimum %s", interval, OneShotConversionTime)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("tc72: already sensing continuously")
	}
	d.stop = make(chan struct{})
	sensing := make(chan physic.Env)
	d.wg.Add(1)
	go func(stop <-chan struct{}) {
		defer d.wg.Done()
		defer close(sensing)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var e physic.Env
				if err := d.Sense(&e); err != nil {
					return
				}
				select {
				case sensing <- e:
				case <-stop:
					return
				}
			}
		}
	}(d.stop)
	return sensing, nil
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = Resolution
}

// Halt stops a SenseContinuous operation in progress and puts the device in
// shutdown. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control(true, false)
}

// RawToCelsius converts a 10-bit two's complement count to degrees Celsius.
func RawToCelsius(raw uint16) float64 {
	return float64(signExtend(raw)) * 0.25
}

// RawToTemperature converts a 10-bit two's complement count to a
// physic.Temperature.
func RawToTemperature(raw uint16) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(signExtend(raw))*Resolution
}

// signExtend widens the 10-bit count to 16 bits, so 0x3ff is -1.
func signExtend(raw uint16) int16 {
	raw &= rawMask
	if raw&rawSignBit != 0 {
		raw |= ^rawMask
	}
	return int16(raw)
}

func controlByte(shutdown, oneShot bool) byte {
	var b byte
	if shutdown {
		b |= shutdownBit
	}
	if oneShot {
		b |= oneShotBit
	}
	return b
}

func (d *Dev) control(shutdown, oneShot bool) error {
	if err := d.writeRegister(RegControl, controlByte(shutdown, oneShot)); err != nil {
		return err
	}
	d.converting = !shutdown
	return nil
}

func (d *Dev) oneShot(delay Delayer) (uint16, error) {
	if err := d.control(false, true); err != nil {
		return 0, err
	}
	delay.Delay(OneShotConversionTime)
	return d.readRaw()
}

func (d *Dev) readContinuous() (uint16, error) {
	if !d.converting {
		if err := d.control(false, false); err != nil {
			return 0, err
		}
		d.opts.Delay.Delay(OneShotConversionTime)
	}
	return d.readRaw()
}

// readRaw reads MSB before LSB.
func (d *Dev) readRaw() (uint16, error) {
	msb, err := d.readRegister(RegMSB)
	if err != nil {
		return 0, err
	}
	lsb, err := d.readRegister(RegLSB)
	if err != nil {
		return 0, err
	}
	return uint16(msb)<<2 | uint16(lsb)>>6, nil
}

// readRegister sends the address with the write bit clear and returns the
// second byte received. On a failed transfer the chip enable line is left
// asserted.
func (d *Dev) readRegister(r Register) (byte, error) {
	if r > RegManufacturerID {
		return 0, fmt.Errorf("tc72: invalid register %s", r)
	}
	w := []byte{byte(r) << 1, 0}
	rx := make([]byte, len(w))
	if err := d.cs.Out(gpio.High); err != nil {
		return 0, &ChipSelectError{Err: err}
	}
	if err := d.c.Tx(w, rx); err != nil {
		return 0, &BusError{Err: err}
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return 0, &ChipSelectError{Err: err}
	}
	return rx[1], nil
}

func (d *Dev) writeRegister(r Register, v byte) error {
	if r > RegManufacturerID {
		return fmt.Errorf("tc72: invalid register %s", r)
	}
	w := []byte{byte(r)<<1 | writeBit, v}
	if err := d.cs.Out(gpio.High); err != nil {
		return &ChipSelectError{Err: err}
	}
	if err := d.c.Tx(w, nil); err != nil {
		return &BusError{Err: err}
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return &ChipSelectError{Err: err}
	}
	return nil
}

var _ physic.SenseEnv = &Dev{}
var _ fmt.Stringer = &Dev{}
