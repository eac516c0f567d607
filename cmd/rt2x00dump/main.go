// Command rt2x00dump decodes usbmon traffic of Ralink RT2870/RT3070 USB
// WLAN adapters into register, MCU and frame level records.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"rt2x00dump/internal/lister"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args and runs the lister. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rt2x00dump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	device := fs.String("d", "", "Device to sniff, as vid:pid (e.g. 148f:3070)")
	bus := fs.Int("bus", -1, "usbmon bus to sniff")
	addr := fs.Int("addr", -1, "Device address on -bus")
	capture := fs.String("r", "", "Read a pcap/pcapng usbmon capture instead of sniffing")
	config := fs.String("config", "", "INI file with decoder settings")
	filter := fs.String("filter", "", "Lua expression selecting the records to print")
	verbose := fs.Bool("v", false, "Log decoder diagnostics to stderr")
	logJSON := fs.Bool("log-json", false, "Log diagnostics as JSON")
	color := fs.String("color", lister.ColorAuto, "Colour output: auto, always or never")
	seq := fs.Bool("seq", false, "Prefix records with their capture sequence number")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	switch *color {
	case lister.ColorAuto, lister.ColorAlways, lister.ColorNever:
	default:
		fmt.Fprintf(stderr, "Error: bad -color %q, want auto, always or never\n", *color)
		return 2
	}

	cfg := lister.Config{
		CapturePath: *capture,
		DeviceID:    *device,
		Bus:         *bus,
		Address:     *addr,
		ConfigPath:  *config,
		Filter:      *filter,
		Verbose:     *verbose,
		LogJSON:     *logJSON,
		Color:       *color,
		ShowSeq:     *seq,
		Output:      stdout,
		LogOutput:   stderr,
	}

	if _, err := lister.Run(ctx, cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
