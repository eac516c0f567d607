package decoder

import (
	"fmt"

	"rt2x00dump/frame"
	"rt2x00dump/internal/config"
	"rt2x00dump/internal/control"
	"rt2x00dump/internal/pairing"
)

// Config holds the decoder settings.
type Config struct {
	// MaxPending bounds the submissions waiting for a completion. Zero or
	// less means unbounded.
	MaxPending int

	// Filter restricts decoding to one device. Nil decodes every device.
	Filter *pairing.DeviceFilter

	// Channels holds the addresses of the mailbox and the indirect banks.
	Channels control.Config

	// TxAlign is the alignment of transmit frames in bulk OUT transfers.
	TxAlign int
}

// DefaultConfig returns the settings for an RT2870 family device.
func DefaultConfig() Config {
	return Config{
		MaxPending: pairing.DefaultMaxPending,
		Channels:   control.DefaultConfig(),
		TxAlign:    frame.DefaultTxAlign,
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	return c.Channels.Validate()
}

// LoadConfig reads an INI file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Apply(f); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Apply overrides settings present in f. Unknown sections and keys are
// ignored.
func (c *Config) Apply(f *config.File) error {
	if err := f.Int("pairing", "max_pending", &c.MaxPending); err != nil {
		return err
	}

	if f.Section("device") != nil {
		filter := pairing.DeviceFilter{}
		if c.Filter != nil {
			filter = *c.Filter
		}
		bus := uint64(filter.Bus)
		if err := f.Uint("device", "bus", 16, &bus); err != nil {
			return err
		}
		addr := uint64(filter.Device)
		if err := f.Uint("device", "address", 8, &addr); err != nil {
			return err
		}
		filter.Bus, filter.Device = uint16(bus), uint8(addr)
		c.Filter = &filter
	}

	ch := &c.Channels
	for _, bank := range []struct {
		section string
		low     *uint16
		high    *uint16
		mask    *uint32
		rws     *bool
	}{
		{"bbp", &ch.BBP.Low, &ch.BBP.High, &ch.BBP.AddrMask, &ch.BBP.ReadWhenSet},
		{"rf", &ch.RF.Low, &ch.RF.High, &ch.RF.AddrMask, &ch.RF.ReadWhenSet},
	} {
		if err := f.Uint16(bank.section, "low", bank.low); err != nil {
			return err
		}
		if err := f.Uint16(bank.section, "high", bank.high); err != nil {
			return err
		}
		mask := uint64(*bank.mask)
		if err := f.Uint(bank.section, "addr_mask", 32, &mask); err != nil {
			return err
		}
		*bank.mask = uint32(mask)
		if err := f.Bool(bank.section, "read_when_set", bank.rws); err != nil {
			return err
		}
	}

	if err := f.Uint16("mailbox", "status", &ch.Mailbox.Status); err != nil {
		return err
	}
	if err := f.Uint16("mailbox", "command", &ch.Mailbox.Command); err != nil {
		return err
	}
	return f.Int("bulk", "tx_align", &c.TxAlign)
}
