package registers

import (
	"fmt"

	"rt2x00dump/common"
)

// Width selects which half of a register a value covers.
type Width = common.Width

const (
	Full      = common.WidthFull
	UpperHalf = common.WidthUpper
	LowerHalf = common.WidthLower
)

// Decode returns the fields of reg that intersect mask, most significant
// first, with values taken from word.
func Decode(reg *Register, word, mask uint32) []common.FieldValue {
	if reg == nil || len(reg.Fields) == 0 {
		return nil
	}
	out := make([]common.FieldValue, 0, len(reg.Fields))
	for _, f := range reg.Fields {
		fm := f.Mask()
		if fm&mask == 0 {
			continue
		}
		out = append(out, common.FieldValue{Name: f.Name, Value: (word & fm) >> f.Low})
	}
	return out
}

// DecodeWidth decodes a value as seen through a register half. For
// UpperHalf the value holds bits [31:16] in its low 16 bits.
func DecodeWidth(reg *Register, value uint32, w Width) []common.FieldValue {
	word := value
	if w == UpperHalf {
		word = value << 16
	}
	return Decode(reg, word, w.Mask())
}

// Encode builds a register word from field values listed in the order of
// reg.Fields, as Decode returns them with a Full mask. Names must match and
// values must fit their field.
func Encode(reg *Register, values []common.FieldValue) (uint32, error) {
	if len(values) != len(reg.Fields) {
		return 0, fmt.Errorf("register %s: %d values for %d fields", reg.Name, len(values), len(reg.Fields))
	}
	var word uint32
	for i, v := range values {
		f := reg.Fields[i]
		if v.Name != f.Name {
			return 0, fmt.Errorf("register %s: value %d is %s, want %s", reg.Name, i, v.Name, f.Name)
		}
		fm := f.Mask()
		if v.Value > fm>>f.Low {
			return 0, fmt.Errorf("register %s: value 0x%x overflows field %s", reg.Name, v.Value, v.Name)
		}
		word |= v.Value << f.Low
	}
	return word, nil
}
