// Package registers holds the RT2870/RT3070 register layout: the memory
// mapped MAC registers, the in-band descriptor words of bulk transfers and
// the areas of the vendor request address space. It also decodes register
// words into named bitfields.
package registers

import (
	"sort"
	"sync"

	"rt2x00dump/common"
)

// Well known addresses.
const (
	FlatLimit     uint16 = 0x17ff // last offset of the memory mapped register space
	HostCmd       uint16 = 0x0404 // HOST_CMD, MCU command opcode
	RFCSRCfg      uint16 = 0x0500 // RF_CSR_CFG, RF bank control word
	BBPCSRCfg     uint16 = 0x101c // BBP_CSR_CFG, BBP bank control word
	H2MMailboxCSR uint16 = 0x7010 // host to MCU mailbox
)

// UnknownArea is reported for offsets not covered by any area.
const UnknownArea = "Unknown area"

// Field is a named bit range [High:Low] of a register.
type Field struct {
	High uint8
	Low  uint8
	Name string
}

// Mask returns the register bits covered by the field.
func (f Field) Mask() uint32 {
	width := uint(f.High) - uint(f.Low) + 1
	if width >= 32 {
		return 0xffffffff
	}
	return ((uint32(1) << width) - 1) << f.Low
}

// Register describes a 32-bit register. Fields are listed most significant
// first and, when present, cover all 32 bits.
type Register struct {
	Offset uint16
	Name   string
	Fields []Field
}

// Area is a named range [Begin, End] of the vendor request address space.
type Area struct {
	Begin uint16
	End   uint16
	Name  string
}

// Contains reports whether offset lies in the area.
func (a Area) Contains(offset uint16) bool {
	return a.Begin <= offset && offset <= a.End
}

// Catalog maps offsets to register descriptors and areas. It is immutable
// after construction and safe to share.
type Catalog struct {
	regs    []Register
	byOff   map[uint16]*Register
	inband  map[string]*Register
	inOrder []Register
	areas   []Area
}

// New builds a catalog. The tables are not validated; call Validate.
func New(regs, inband []Register, areaTable []Area) *Catalog {
	c := &Catalog{
		regs:    regs,
		byOff:   make(map[uint16]*Register, len(regs)),
		inband:  make(map[string]*Register, len(inband)),
		inOrder: inband,
		areas:   areaTable,
	}
	for i := range regs {
		if _, dup := c.byOff[regs[i].Offset]; !dup {
			c.byOff[regs[i].Offset] = &c.regs[i]
		}
	}
	for i := range inband {
		c.inband[inband[i].Name] = &c.inOrder[i]
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the built in RT2870 catalog. The tables are validated on
// first use; a table error is returned on every call.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		c := New(macRegisters, inBandDescriptors, areas)
		if err := c.Validate(); err != nil {
			defaultErr = err
			return
		}
		defaultCatalog = c
	})
	return defaultCatalog, defaultErr
}

// Register returns the descriptor at offset.
func (c *Catalog) Register(offset uint16) (*Register, bool) {
	r, ok := c.byOff[offset]
	return r, ok
}

// Descriptor returns the in-band descriptor word with the given name.
func (c *Catalog) Descriptor(name string) (*Register, bool) {
	r, ok := c.inband[name]
	return r, ok
}

// Area returns the first area containing offset.
func (c *Catalog) Area(offset uint16) (*Area, bool) {
	for i := range c.areas {
		if c.areas[i].Contains(offset) {
			return &c.areas[i], true
		}
	}
	return nil, false
}

// AreaName returns the name of the area containing offset, or UnknownArea.
func (c *Catalog) AreaName(offset uint16) string {
	if a, ok := c.Area(offset); ok {
		return a.Name
	}
	return UnknownArea
}

// Registers returns the memory mapped registers sorted by offset.
func (c *Catalog) Registers() []Register {
	out := make([]Register, len(c.regs))
	copy(out, c.regs)
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// Validate checks that every non-empty descriptor partitions bits [31:0]
// and that the area ranges are ordered and disjoint.
func (c *Catalog) Validate() error {
	seen := make(map[uint16]string, len(c.regs))
	for i := range c.regs {
		r := &c.regs[i]
		if prev, dup := seen[r.Offset]; dup {
			return common.ConfigErrorf("register %s at 0x%04x duplicates %s", r.Name, r.Offset, prev)
		}
		seen[r.Offset] = r.Name
		if err := ValidateRegister(r); err != nil {
			return err
		}
	}
	for i := range c.inOrder {
		if err := ValidateRegister(&c.inOrder[i]); err != nil {
			return err
		}
	}
	for i, a := range c.areas {
		if a.Begin > a.End {
			return common.ConfigErrorf("area %q: begin 0x%04x after end 0x%04x", a.Name, a.Begin, a.End)
		}
		if i > 0 && a.Begin <= c.areas[i-1].End {
			return common.ConfigErrorf("area %q overlaps %q", a.Name, c.areas[i-1].Name)
		}
	}
	return nil
}

// ValidateRegister checks the bit partition of a single descriptor. A
// descriptor without fields is valid.
func ValidateRegister(r *Register) error {
	if len(r.Fields) == 0 {
		return nil
	}
	prevLow := 32
	for _, f := range r.Fields {
		if f.Name == "" {
			return common.ConfigErrorf("register %s: unnamed field [%d:%d]", r.Name, f.High, f.Low)
		}
		if f.Low > f.High {
			return common.ConfigErrorf("register %s: field %s low bit %d above high bit %d", r.Name, f.Name, f.Low, f.High)
		}
		if int(f.High)+1 != prevLow {
			return common.ConfigErrorf("register %s: field %s starts at bit %d, expected %d", r.Name, f.Name, f.High, prevLow-1)
		}
		prevLow = int(f.Low)
	}
	if prevLow != 0 {
		return common.ConfigErrorf("register %s: bits [%d:0] not covered", r.Name, prevLow-1)
	}
	return nil
}
