// Package sysfs finds USB devices by vendor and product id under
// /sys/bus/usb/devices.
package sysfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

// DevicesDir is the sysfs directory listing USB devices.
const DevicesDir = "/sys/bus/usb/devices"

// ErrNotFound is returned when no device matches.
var ErrNotFound = errors.New("usb device not found")

// ID is a USB vendor and product id pair.
type ID struct {
	Vendor  uint16
	Product uint16
}

func (id ID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Vendor, id.Product)
}

// ParseID parses "vid:pid" with both parts in hex, e.g. "148f:3070".
func ParseID(s string) (ID, error) {
	vid, pid, ok := strings.Cut(s, ":")
	if !ok {
		return ID{}, fmt.Errorf("device id %q: want vid:pid", s)
	}
	v, err := strconv.ParseUint(vid, 16, 16)
	if err != nil {
		return ID{}, fmt.Errorf("device id %q: vendor: %w", s, err)
	}
	p, err := strconv.ParseUint(pid, 16, 16)
	if err != nil {
		return ID{}, fmt.Errorf("device id %q: product: %w", s, err)
	}
	return ID{Vendor: uint16(v), Product: uint16(p)}, nil
}

// Device is a USB device located on the bus.
type Device struct {
	Name    string // sysfs entry, e.g. "1-1.2"
	ID      ID
	Bus     uint16
	Address uint8
}

// Find returns the first device matching id in the sysfs tree fsys. Entries
// are scanned in name order.
func Find(fsys fs.FS, id ID) (Device, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return Device{}, fmt.Errorf("list usb devices: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		dev, ok := readDevice(fsys, e.Name())
		if ok && dev.ID == id {
			return dev, nil
		}
	}
	return Device{}, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// FindDevice looks id up in the live sysfs tree.
func FindDevice(id ID) (Device, error) {
	return Find(os.DirFS(DevicesDir), id)
}

// readDevice reads one sysfs entry. Interfaces and hubs without the
// identifying attributes are skipped.
func readDevice(fsys fs.FS, name string) (Device, bool) {
	vid, err := readHex(fsys, name, "idVendor")
	if err != nil {
		return Device{}, false
	}
	pid, err := readHex(fsys, name, "idProduct")
	if err != nil {
		return Device{}, false
	}
	bus, err := readDec(fsys, name, "busnum", 16)
	if err != nil {
		return Device{}, false
	}
	addr, err := readDec(fsys, name, "devnum", 8)
	if err != nil {
		return Device{}, false
	}
	return Device{
		Name:    name,
		ID:      ID{Vendor: uint16(vid), Product: uint16(pid)},
		Bus:     uint16(bus),
		Address: uint8(addr),
	}, true
}

func readAttr(fsys fs.FS, dir, attr string) (string, error) {
	b, err := fs.ReadFile(fsys, path.Join(dir, attr))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func readHex(fsys fs.FS, dir, attr string) (uint64, error) {
	s, err := readAttr(fsys, dir, attr)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 16, 16)
}

func readDec(fsys fs.FS, dir, attr string, bits int) (uint64, error) {
	s, err := readAttr(fsys, dir, attr)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, bits)
}
