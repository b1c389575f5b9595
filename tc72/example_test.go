// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tc72_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/tc72/tc72"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	// The TC72 chip enable is active high, so it is wired to a plain GPIO.
	cs := gpioreg.ByName("GPIO25")
	if cs == nil {
		log.Fatal("failed to find GPIO25")
	}

	d, err := tc72.NewSPI(p, cs, nil)
	if err != nil {
		log.Fatalf("failed to initialize TC72: %v", err)
	}
	defer d.Halt()

	e := physic.Env{}
	if err := d.Sense(&e); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%8s\n", e.Temperature)
}

func ExampleDev_OneShot() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	d, err := tc72.NewSPI(p, gpioreg.ByName("GPIO25"), nil)
	if err != nil {
		log.Fatal(err)
	}
	// Take a single measurement and leave the device idle afterwards.
	c, err := d.OneShot(tc72.Sleep)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f°C\n", c)
	if err := d.Control(true, false); err != nil {
		log.Fatal(err)
	}
}
