//go:build !linux

package usbmon

import (
	"context"
	"errors"

	"rt2x00dump/common"
)

// LiveSource is only available on Linux.
type LiveSource struct {
	Log common.Logger
}

// OpenLive always fails outside Linux.
func OpenLive(bus int) (*LiveSource, error) {
	return nil, errors.New("live usbmon capture is only supported on linux")
}

func (s *LiveSource) Next(ctx context.Context) (Event, error) {
	return Event{}, errors.New("live usbmon capture is only supported on linux")
}

func (s *LiveSource) Close() error { return nil }
