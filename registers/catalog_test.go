package registers

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rt2x00dump/common"
)

func TestDefaultCatalogValid(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	for _, r := range c.Registers() {
		if err := ValidateRegister(&r); err != nil {
			t.Errorf("ValidateRegister(%s) = %v", r.Name, err)
		}
	}
	for _, name := range []string{"TXINFO", "TXWI_W0", "TXWI_W1", "RXINFO", "RXWI_W0", "RXWI_W1", "RXWI_W2", "RXWI_W3", "RXD"} {
		d, ok := c.Descriptor(name)
		if !ok {
			t.Errorf("Descriptor(%s) missing", name)
			continue
		}
		if len(d.Fields) == 0 {
			t.Errorf("Descriptor(%s) has no fields", name)
		}
	}
}

func TestCatalogRegister(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		offset uint16
		name   string
		ok     bool
	}{
		{0x0208, "WPDMA_GLO_CFG", true},
		{0x0404, "HOST_CMD", true},
		{0x0434, "TXRXQ_STA", true},
		{0x1000, "ASIC_VER_ID", true},
		{0x101c, "BBP_CSR_CFG", true},
		{0x1740, "MPDU_DENSITY_CNT", true},
		{0x1002, "", false},
		{0x7010, "", false},
	}

	for _, tt := range tests {
		r, ok := c.Register(tt.offset)
		if ok != tt.ok {
			t.Errorf("Register(0x%04x) ok = %v, want %v", tt.offset, ok, tt.ok)
			continue
		}
		if ok && r.Name != tt.name {
			t.Errorf("Register(0x%04x) = %s, want %s", tt.offset, r.Name, tt.name)
		}
	}
}

func TestCatalogArea(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		offset uint16
		want   string
	}{
		{0x0000, "MAC REGISTERS"},
		{0x17ff, "MAC REGISTERS"},
		{0x1800, "WCID search table"},
		{0x3abc, "Firmware"},
		{0x7010, "Shared Memory MCU - host"},
		{0x701f, "Shared Memory MCU - host"},
		{0xffff, "Unknown 2"},
	}
	for _, tt := range tests {
		if got := c.AreaName(tt.offset); got != tt.want {
			t.Errorf("AreaName(0x%04x) = %q, want %q", tt.offset, got, tt.want)
		}
	}

	sparse := New(nil, nil, []Area{{0x1000, 0x1fff, "only"}})
	if got := sparse.AreaName(0x0010); got != UnknownArea {
		t.Errorf("AreaName() outside every area = %q, want %q", got, UnknownArea)
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	tests := []struct {
		name  string
		regs  []Register
		areas []Area
	}{
		{
			name: "gap",
			regs: []Register{{Offset: 0x10, Name: "GAP", Fields: []Field{{31, 16, "A"}, {14, 0, "B"}}}},
		},
		{
			name: "overlap",
			regs: []Register{{Offset: 0x10, Name: "OVERLAP", Fields: []Field{{31, 8, "A"}, {8, 0, "B"}}}},
		},
		{
			name: "short",
			regs: []Register{{Offset: 0x10, Name: "SHORT", Fields: []Field{{31, 1, "A"}}}},
		},
		{
			name: "not from bit 31",
			regs: []Register{{Offset: 0x10, Name: "LOW", Fields: []Field{{15, 0, "A"}}}},
		},
		{
			name: "duplicate offset",
			regs: []Register{{Offset: 0x10, Name: "A"}, {Offset: 0x10, Name: "B"}},
		},
		{
			name:  "overlapping areas",
			areas: []Area{{0x0000, 0x0fff, "one"}, {0x0f00, 0x1fff, "two"}},
		},
		{
			name:  "inverted area",
			areas: []Area{{0x2000, 0x1000, "backwards"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.regs, nil, tt.areas).Validate()
			if !errors.Is(err, common.ErrConfiguration) {
				t.Errorf("Validate() = %v, want configuration error", err)
			}
		})
	}
}

func TestValidateOpaque(t *testing.T) {
	c := New([]Register{{Offset: 0x200, Name: "INT_STATUS"}}, nil, []Area{{0, 0xffff, "all"}})
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if diff := cmp.Diff([]Register{{Offset: 0x200, Name: "INT_STATUS"}}, c.Registers()); diff != "" {
		t.Errorf("Registers() mismatch (-want +got):\n%s", diff)
	}
}
