// Package config reads the INI files that override decoder settings.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rt2x00dump/common"
)

// File maps section names to key-value pairs. Keys before any section
// are stored in the "" section. Section and key names are lower case.
type File struct {
	Sections map[string]map[string]string
}

// NewFile creates an empty File.
func NewFile() *File {
	return &File{Sections: map[string]map[string]string{"": {}}}
}

// Parse reads an INI file. Lines starting with ';' or '#' are comments.
func Parse(r io.Reader) (*File, error) {
	f := NewFile()
	scanner := bufio.NewScanner(r)
	section := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			if _, ok := f.Sections[section]; !ok {
				f.Sections[section] = make(map[string]string)
			}
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return nil, common.ConfigErrorf("line %d: expected key = value, got %q", lineNo, line)
		}
		f.Sections[section][strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return f, nil
}

// Load parses the INI file at path.
func Load(path string) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer fp.Close()

	f, err := Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Section returns the keys of a section, or nil.
func (f *File) Section(name string) map[string]string {
	return f.Sections[strings.ToLower(name)]
}

// Lookup returns a raw value.
func (f *File) Lookup(section, key string) (string, bool) {
	v, ok := f.Section(section)[strings.ToLower(key)]
	return v, ok
}

// Uint reads an unsigned number of at most bits bits into dst. Decimal,
// 0x hex and 0 octal are accepted. A missing key leaves dst unchanged.
func (f *File) Uint(section, key string, bits int, dst *uint64) error {
	v, ok := f.Lookup(section, key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(v, 0, bits)
	if err != nil {
		return common.ConfigErrorf("[%s] %s = %q: not a %d-bit number", section, key, v, bits)
	}
	*dst = n
	return nil
}

// Uint16 is Uint for 16-bit settings such as register addresses.
func (f *File) Uint16(section, key string, dst *uint16) error {
	n := uint64(*dst)
	if err := f.Uint(section, key, 16, &n); err != nil {
		return err
	}
	*dst = uint16(n)
	return nil
}

// Int reads a signed decimal number into dst.
func (f *File) Int(section, key string, dst *int) error {
	v, ok := f.Lookup(section, key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return common.ConfigErrorf("[%s] %s = %q: not a number", section, key, v)
	}
	*dst = n
	return nil
}

// Bool reads a boolean into dst.
func (f *File) Bool(section, key string, dst *bool) error {
	v, ok := f.Lookup(section, key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return common.ConfigErrorf("[%s] %s = %q: not a boolean", section, key, v)
	}
	*dst = b
	return nil
}
