// hx711-host reads the load-cell value stream a board produces over
// USB CDC (see examples/scale) and prints calibrated weights. It is a
// plain external consumer of the driver's output; nothing here talks
// to the chip.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"loadcell/host/scale"
	"loadcell/host/serial"
	"loadcell/hx711"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	tare    = flag.Int("tare", 0, "Reading with the platform empty")
	counts  = flag.Float64("counts", 0, "Counts per unit (0 prints raw deltas)")
	samples = flag.Int("n", 0, "Stop after this many readings (0 = run forever)")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: flush: %v\n", err)
		os.Exit(1)
	}

	cal := scale.Calibration{Tare: int32(*tare), CountsPerUnit: *counts}

	seen := 0
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		v, ok := scale.ParseReading(scanner.Text())
		if !ok {
			continue
		}

		switch {
		case hx711.IsMinSaturated(v):
			fmt.Printf("%d\tUNDER RANGE\n", v)
		case hx711.IsMaxSaturated(v):
			fmt.Printf("%d\tOVER RANGE\n", v)
		default:
			fmt.Printf("%d\t%.2f\n", v, cal.Weight(v))
		}

		seen++
		if *samples > 0 && seen >= *samples {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: read: %v\n", err)
		os.Exit(1)
	}
}
