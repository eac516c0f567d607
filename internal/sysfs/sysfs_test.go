package sysfs

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func device(vid, pid, bus, devnum string) map[string]string {
	return map[string]string{
		"idVendor":  vid + "\n",
		"idProduct": pid + "\n",
		"busnum":    bus + "\n",
		"devnum":    devnum + "\n",
	}
}

func tree(devs map[string]map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, attrs := range devs {
		for attr, v := range attrs {
			fsys[name+"/"+attr] = &fstest.MapFile{Data: []byte(v)}
		}
	}
	return fsys
}

func TestFind(t *testing.T) {
	fsys := tree(map[string]map[string]string{
		"usb1":    device("1d6b", "0002", "1", "1"),
		"1-1":     device("148f", "3070", "1", "5"),
		"1-1:1.0": {"bInterfaceClass": "ff\n"},
		"2-3":     device("148f", "2870", "2", "17"),
	})

	tests := []struct {
		name string
		id   ID
		want Device
		err  error
	}{
		{"rt3070", ID{0x148f, 0x3070}, Device{Name: "1-1", ID: ID{0x148f, 0x3070}, Bus: 1, Address: 5}, nil},
		{"rt2870", ID{0x148f, 0x2870}, Device{Name: "2-3", ID: ID{0x148f, 0x2870}, Bus: 2, Address: 17}, nil},
		{"absent", ID{0x0bda, 0x8187}, Device{}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(fsys, tt.id)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Find() error = %v, want %v", err, tt.err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Find() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"148f:3070", ID{0x148f, 0x3070}, false},
		{"148F:2870", ID{0x148f, 0x2870}, false},
		{"148f3070", ID{}, true},
		{"148f:xyz", ID{}, true},
		{"12345:0001", ID{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseID() = %v, want %v", got, tt.want)
			}
		})
	}
	if s := (ID{0x148f, 0x3070}).String(); s != "148f:3070" {
		t.Errorf("String() = %q", s)
	}
}
