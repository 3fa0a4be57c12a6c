//go:build !linux

package input

import (
	"errors"
	"log/slog"
)

// rawDeviceBackend is Linux-only; elsewhere it reports unavailable and is
// filtered out during backend enumeration.
type rawDeviceBackend struct{}

func newRawDeviceBackend(_ *slog.Logger) Backend { return rawDeviceBackend{} }

func (rawDeviceBackend) Name() string    { return "raw_device" }
func (rawDeviceBackend) Available() bool { return false }

func (rawDeviceBackend) Start(Handler) error {
	return errors.New("raw device backend is not supported on this platform")
}

func (rawDeviceBackend) Stop() error { return nil }
