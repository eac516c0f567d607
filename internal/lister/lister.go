// Package lister is the rt2x00dump main loop: it reads usbmon events from
// a capture file or a live bus, decodes them and prints the records.
package lister

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"rt2x00dump/common"
	"rt2x00dump/decoder"
	"rt2x00dump/internal/filter"
	"rt2x00dump/internal/pairing"
	"rt2x00dump/internal/sysfs"
	"rt2x00dump/printer"
	"rt2x00dump/usbmon"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config mirrors the command line of rt2x00dump.
type Config struct {
	CapturePath string // read a pcap/pcapng file instead of a live bus
	DeviceID    string // vid:pid, resolved through sysfs
	Bus         int    // usbmon bus, -1 when unset
	Address     int    // device address on Bus, -1 when unset
	ConfigPath  string // INI file with decoder settings
	Filter      string // Lua expression selecting records
	Verbose     bool
	LogJSON     bool
	Color       string
	ShowSeq     bool

	Output    io.Writer // records, default os.Stdout
	LogOutput io.Writer // diagnostics, default os.Stderr

	// Source overrides the capture file and live bus.
	Source usbmon.Source
	// FindDevice overrides the sysfs lookup.
	FindDevice func(sysfs.ID) (sysfs.Device, error)
}

// Stats summarises a run.
type Stats struct {
	Events  uint64
	Records uint64
	Shown   uint64
	Pending int
}

// Run decodes events until the source is exhausted or ctx is cancelled.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	logOut := cfg.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}

	log := newLogger(cfg, logOut)

	dcfg := decoder.DefaultConfig()
	if cfg.ConfigPath != "" {
		var err error
		if dcfg, err = decoder.LoadConfig(cfg.ConfigPath); err != nil {
			return Stats{}, err
		}
	}

	bus, err := resolveDevice(&cfg, &dcfg, log)
	if err != nil {
		return Stats{}, err
	}

	dec, err := decoder.New(dcfg)
	if err != nil {
		return Stats{}, err
	}
	dec.SetLogger(log.WithComponent("decoder"))

	var sel *filter.Filter
	if cfg.Filter != "" {
		if sel, err = filter.New(cfg.Filter); err != nil {
			return Stats{}, err
		}
		defer sel.Close()
		log.Logf(common.SeverityInfo, "showing records matching %s", sel)
	}

	src, err := openSource(cfg, bus, log)
	if err != nil {
		return Stats{}, err
	}
	defer src.Close()

	p := printer.New(out, printer.WithColor(useColor(cfg.Color, out)), printer.WithSeq(cfg.ShowSeq))

	var stats Stats
	events := make(chan usbmon.Event, 64)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		for {
			ev, err := src.Next(gctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		for ev := range events {
			stats.Events++
			for _, rec := range dec.ProcessEvent(ev) {
				stats.Records++
				if sel != nil {
					ok, err := sel.Match(&rec)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
				}
				if err := p.Print(&rec); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				stats.Shown++
			}
		}
		return nil
	})

	err = g.Wait()
	stats.Pending = dec.Pending()
	log.Logf(common.SeverityInfo, "%d events, %d records, %d shown, %d submissions without completion",
		stats.Events, stats.Records, stats.Shown, stats.Pending)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// interrupted by the user
		return stats, nil
	}
	return stats, err
}

func newLogger(cfg Config, w io.Writer) *common.SlogLogger {
	format := common.LogFormatText
	if cfg.LogJSON {
		format = common.LogFormatJSON
	}
	level := common.SeverityError
	if cfg.Verbose {
		level = common.SeverityDebug
	}
	return common.NewSlogLogger(w, format, level)
}

// resolveDevice fills the device filter and returns the usbmon bus to open.
// -d wins over -bus/-addr, which win over the config file.
func resolveDevice(cfg *Config, dcfg *decoder.Config, log common.Logger) (int, error) {
	bus := cfg.Bus
	switch {
	case cfg.DeviceID != "":
		id, err := sysfs.ParseID(cfg.DeviceID)
		if err != nil {
			return 0, err
		}
		find := cfg.FindDevice
		if find == nil {
			find = sysfs.FindDevice
		}
		dev, err := find(id)
		if err != nil {
			return 0, err
		}
		log.Logf(common.SeverityInfo, "%s is %s, bus %d address %d", id, dev.Name, dev.Bus, dev.Address)
		dcfg.Filter = &pairing.DeviceFilter{Bus: dev.Bus, Device: dev.Address}
		bus = int(dev.Bus)

	case cfg.Bus >= 0 && cfg.Address >= 0:
		if cfg.Bus > 0xffff || cfg.Address > 0xff {
			return 0, fmt.Errorf("bus %d address %d out of range", cfg.Bus, cfg.Address)
		}
		dcfg.Filter = &pairing.DeviceFilter{Bus: uint16(cfg.Bus), Device: uint8(cfg.Address)}

	case bus < 0 && dcfg.Filter != nil:
		// [device] from the config file
		bus = int(dcfg.Filter.Bus)
	}
	return bus, nil
}

func openSource(cfg Config, bus int, log *common.SlogLogger) (usbmon.Source, error) {
	switch {
	case cfg.Source != nil:
		return cfg.Source, nil

	case cfg.CapturePath != "":
		src, err := usbmon.OpenCapture(cfg.CapturePath)
		if err != nil {
			return nil, err
		}
		src.Log = log.WithComponent("capture")
		log.Logf(common.SeverityInfo, "reading capture %s", cfg.CapturePath)
		return src, nil

	case bus >= 0:
		src, err := usbmon.OpenLive(bus)
		if err != nil {
			return nil, err
		}
		src.Log = log.WithComponent("usbmon")
		log.Logf(common.SeverityInfo, "sniffing usbmon bus %d", bus)
		return src, nil

	default:
		return nil, errors.New("live capture needs a device (-d vid:pid) or a bus (-bus)")
	}
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
