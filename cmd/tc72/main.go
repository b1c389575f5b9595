// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tc72 reads the temperature from a TC72 sensor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/tc72/tc72"
	"github.com/GermanBionicSystems/tc72/thermobar"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type chipSelect interface {
	tc72.ChipSelect
	io.Closer
}

type pinCS struct {
	gpio.PinOut
}

func (pinCS) Close() error {
	return nil
}

// openCS returns line of chip when chip is set, otherwise the gpioreg pin
// name. The line is driven low.
func openCS(name, chip string, line int) (chipSelect, error) {
	if chip != "" {
		return openLine(chip, line)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("failed to find GPIO %q", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, err
	}
	return pinCS{p}, nil
}

// read shows count readings, or readings until the sensor fails when count is
// 0. In one-shot mode, each reading triggers its own conversion and readings
// are spaced by interval using delay.
func read(d *tc72.Dev, delay tc72.Delayer, oneShot bool, count int, interval time.Duration, show func(physic.Temperature) error) error {
	if oneShot {
		for i := 0; count == 0 || i < count; i++ {
			if i != 0 {
				delay.Delay(interval)
			}
			c, err := d.OneShot(delay)
			if err != nil {
				return err
			}
			if err := show(physic.ZeroCelsius + physic.Temperature(c*float64(physic.Kelvin))); err != nil {
				return err
			}
		}
		return nil
	}

	e := physic.Env{}
	if err := d.Sense(&e); err != nil {
		return err
	}
	if err := show(e.Temperature); err != nil {
		return err
	}
	if count == 1 {
		return nil
	}
	ch, err := d.SenseContinuous(interval)
	if err != nil {
		return err
	}
	for i := 1; count == 0 || i < count; i++ {
		e, ok := <-ch
		if !ok {
			return errors.New("continuous sensing stopped")
		}
		if err := show(e.Temperature); err != nil {
			return err
		}
	}
	return nil
}

// finish stops continuous sensing and leaves the device in shutdown, or
// converting continuously when shutdown is false.
func finish(d *tc72.Dev, shutdown bool) error {
	if err := d.Halt(); err != nil {
		return err
	}
	if shutdown {
		return nil
	}
	return d.Control(false, false)
}

func mainImpl() error {
	spiID := flag.String("spi", "", "SPI port to use")
	csName := flag.String("cs", "GPIO25", "GPIO pin wired to the chip enable")
	chip := flag.String("gpiochip", "", "GPIO character device to use for the chip enable, instead of -cs")
	line := flag.Int("line", 25, "line offset on -gpiochip")
	hz := physic.Frequency(0)
	flag.Var(&hz, "hz", "SPI port max speed")
	oneShot := flag.Bool("oneshot", false, "trigger one conversion per reading")
	shutdown := flag.Bool("shutdown", true, "leave the device in shutdown on exit, otherwise leave it converting")
	count := flag.Int("n", 1, "number of readings, 0 to read until interrupted")
	interval := flag.Duration("interval", time.Second, "time between readings")
	bar := flag.Bool("bar", false, "draw a thermometer bar when stdout is a terminal")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *count < 0 {
		return errors.New("-n must be non-negative")
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	p, err := spireg.Open(*spiID)
	if err != nil {
		return err
	}
	defer p.Close()
	cs, err := openCS(*csName, *chip, *line)
	if err != nil {
		return err
	}
	defer cs.Close()

	opts := tc72.DefaultOpts
	if hz != 0 {
		opts.MaxSpeed = hz
	}
	d, err := tc72.NewSPI(p, cs, &opts)
	if err != nil {
		return err
	}
	id, err := d.ManufacturerID()
	if err != nil {
		return err
	}
	log.Printf("%s using chip enable %s, manufacturer id 0x%02x", d, cs, id)

	var tb *thermobar.Dev
	if *bar && isatty.IsTerminal(os.Stdout.Fd()) {
		if tb, err = thermobar.New(nil); err != nil {
			return err
		}
		defer tb.Halt()
	}
	show := func(t physic.Temperature) error {
		if tb != nil {
			return tb.Show(t)
		}
		_, err := fmt.Println(t)
		return err
	}

	err = read(d, tc72.Sleep, *oneShot, *count, *interval, show)
	if ferr := finish(d, *shutdown); err == nil {
		err = ferr
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "tc72: %s.\n", err)
		os.Exit(1)
	}
}
