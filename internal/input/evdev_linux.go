//go:build linux

package input

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/whisperwriter/whisperwriter/internal/keycode"
)

const (
	evKey = 0x01

	keyStateRelease = 0
	keyStatePress   = 1
	keyStateHold    = 2

	// struct input_event on 64-bit: 16-byte timeval + type + code + value.
	inputEventSize = 24

	pollTimeoutMS = 100
	stopJoinWait  = time.Second
)

// rawDeviceBackend reads /dev/input event nodes directly, polling all open
// devices from one goroutine with a short timeout so Stop is observed promptly.
type rawDeviceBackend struct {
	logger *slog.Logger

	mu      sync.Mutex
	devices []rawDevice
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
}

type rawDevice struct {
	fd   int
	path string
}

func newRawDeviceBackend(logger *slog.Logger) Backend {
	return &rawDeviceBackend{logger: logger}
}

func (b *rawDeviceBackend) Name() string { return "raw_device" }

// Available probes for readable event nodes without opening any of them.
func (b *rawDeviceBackend) Available() bool {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "event") {
			return true
		}
	}
	return false
}

// Start opens every event node it can and launches the polling goroutine.
func (b *rawDeviceBackend) Start(handler Handler) error {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return fmt.Errorf("enumerate input devices: %w", err)
	}

	var devices []rawDevice
	for _, path := range paths {
		fd, openErr := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if openErr != nil {
			// Permission or transient failures on individual nodes are expected.
			continue
		}
		devices = append(devices, rawDevice{fd: fd, path: path})
	}
	if len(devices) == 0 {
		return errors.New("no readable input devices under /dev/input")
	}

	b.mu.Lock()
	b.devices = devices
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	b.started = true
	b.mu.Unlock()

	go b.listen(handler)
	return nil
}

// Stop signals the polling goroutine, waits up to one second, and closes devices.
func (b *rawDeviceBackend) Stop() error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = false
	stopCh := b.stopCh
	doneCh := b.doneCh
	b.mu.Unlock()

	close(stopCh)
	select {
	case <-doneCh:
	case <-time.After(stopJoinWait):
		if b.logger != nil {
			b.logger.Warn("input polling loop did not stop in time")
		}
	}

	b.mu.Lock()
	for _, device := range b.devices {
		_ = unix.Close(device.fd)
	}
	b.devices = nil
	b.mu.Unlock()
	return nil
}

// listen polls all open devices until stopped.
func (b *rawDeviceBackend) listen(handler Handler) {
	defer close(b.doneCh)

	buf := make([]byte, inputEventSize*64)
	for {
		select {
		case <-b.stopCh:
			return
		default:
		}

		b.mu.Lock()
		devices := make([]rawDevice, len(b.devices))
		copy(devices, b.devices)
		b.mu.Unlock()

		if len(devices) == 0 {
			// All devices vanished; keep waiting so Stop still works.
			time.Sleep(pollTimeoutMS * time.Millisecond)
			continue
		}

		fds := make([]unix.PollFd, len(devices))
		for i, device := range devices {
			fds[i] = unix.PollFd{Fd: int32(device.fd), Events: unix.POLLIN}
		}

		n, err := unix.Poll(fds, pollTimeoutMS)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if b.logger != nil {
				b.logger.Warn("poll input devices", "error", err.Error())
			}
			continue
		}
		if n == 0 {
			continue
		}

		for i, pfd := range fds {
			if pfd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
				b.dropDevice(devices[i])
				continue
			}
			if pfd.Revents&unix.POLLIN != 0 {
				b.readDevice(devices[i], buf, handler)
			}
		}
	}
}

// readDevice drains pending events from one device and forwards key transitions.
func (b *rawDeviceBackend) readDevice(device rawDevice, buf []byte, handler Handler) {
	for {
		n, err := unix.Read(device.fd, buf)
		if err != nil {
			if err == unix.EAGAIN {
				return
			}
			if err == unix.ENODEV || err == unix.EBADF {
				b.dropDevice(device)
				return
			}
			if b.logger != nil {
				b.logger.Warn("read input device", "device", device.path, "error", err.Error())
			}
			return
		}
		for off := 0; off+inputEventSize <= n; off += inputEventSize {
			record := buf[off : off+inputEventSize]
			evType := binary.LittleEndian.Uint16(record[16:18])
			if evType != evKey {
				continue
			}
			scancode := binary.LittleEndian.Uint16(record[18:20])
			value := int32(binary.LittleEndian.Uint32(record[20:24]))
			b.forward(scancode, value, handler)
		}
		if n < len(buf) {
			return
		}
	}
}

// forward translates a scancode transition, dropping unmapped keys silently.
func (b *rawDeviceBackend) forward(scancode uint16, value int32, handler Handler) {
	code, ok := evdevKeyMap[scancode]
	if !ok {
		return
	}

	var event keycode.InputEvent
	switch value {
	case keyStatePress, keyStateHold:
		event = keycode.KeyPress
	case keyStateRelease:
		event = keycode.KeyRelease
	default:
		return
	}
	if code.IsMouse() {
		if event == keycode.KeyPress {
			event = keycode.MousePress
		} else {
			event = keycode.MouseRelease
		}
	}
	handler(code, event)
}

// dropDevice removes one vanished device; other devices continue to be serviced.
func (b *rawDeviceBackend) dropDevice(gone rawDevice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, device := range b.devices {
		if device.fd == gone.fd {
			_ = unix.Close(device.fd)
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			if b.logger != nil {
				b.logger.Info("input device removed", "device", gone.path)
			}
			return
		}
	}
}
