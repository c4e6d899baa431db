package backend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	evdev "github.com/gvalkov/golang-evdev"

	"github.com/MurdeRM3L0DY/strata/internal/input"
	"github.com/MurdeRM3L0DY/strata/internal/logger"
)

// Evdev reads keyboard events straight from /dev/input. One read goroutine
// translates keycodes and synthesizes modifier state; consumers drain Events.
type Evdev struct {
	mu        sync.Mutex
	device    *evdev.InputDevice
	path      string
	grab      bool
	grabbed   bool
	capturing bool
	cancel    context.CancelFunc

	events chan input.KeyboardEvent
}

// NewEvdev creates a backend for the given device path. An empty path means
// pick the first keyboard-capable device. With grab set the device is opened
// exclusively so keystrokes do not leak to other consumers.
func NewEvdev(path string, grab bool) *Evdev {
	return &Evdev{
		path:   path,
		grab:   grab,
		events: make(chan input.KeyboardEvent, 128),
	}
}

// Events returns the translated event stream.
func (e *Evdev) Events() <-chan input.KeyboardEvent {
	return e.events
}

// Start opens the device and launches the read goroutine.
func (e *Evdev) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.capturing {
		return fmt.Errorf("backend: already capturing")
	}

	path := e.path
	if path == "" {
		found, err := findKeyboardDevice()
		if err != nil {
			return fmt.Errorf("backend: %w", err)
		}
		path = found
	}

	device, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("backend: open %s: %w", path, err)
	}
	e.device = device
	logger.Infof("Using keyboard device: %s (%s)", device.Name, path)

	if e.grab {
		if err := device.Grab(); err != nil {
			return fmt.Errorf("backend: grab %s: %w", path, err)
		}
		e.grabbed = true
		logger.Debug("Grabbed exclusive access to keyboard device")
	}

	ctx, e.cancel = context.WithCancel(ctx)
	e.capturing = true
	// the goroutine holds its own device reference; Stop never has to reach
	// into a running reader
	go e.captureKeyboardEvents(ctx, device)
	return nil
}

// Stop cancels the read goroutine, releases the device, and closes its fd so a
// reader blocked in Read terminates immediately.
func (e *Evdev) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.capturing {
		return nil
	}
	e.cancel()
	if e.grabbed {
		if err := e.device.Release(); err != nil {
			logger.Warnf("Failed to release keyboard device: %v", err)
		}
		e.grabbed = false
	}
	if err := e.device.File.Close(); err != nil {
		logger.Warnf("Failed to close keyboard device: %v", err)
	}
	e.device = nil
	e.capturing = false
	logger.Info("Keyboard capture stopped")
	return nil
}

// keyEventReader is the part of an evdev device the capture loop reads from.
type keyEventReader interface {
	Read() ([]evdev.InputEvent, error)
}

func (e *Evdev) captureKeyboardEvents(ctx context.Context, dev keyEventReader) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Keyboard capture panic: %v", r)
		}
	}()

	var tracker stateTracker
	for {
		select {
		case <-ctx.Done():
			return
		default:
			events, err := dev.Read()
			if err != nil {
				if ctx.Err() != nil {
					// Stop closed the device out from under the read
					return
				}
				if !strings.Contains(err.Error(), "resource temporarily unavailable") {
					logger.Errorf("Error reading keyboard events: %v", err)
				}
				time.Sleep(5 * time.Millisecond)
				continue
			}

			for _, ev := range events {
				if ev.Type != evdev.EV_KEY {
					continue
				}
				// 0 release, 1 press, 2 autorepeat
				if ev.Value != 0 && ev.Value != 1 {
					continue
				}
				sym := KeysymFor(ev.Code)
				pressed := ev.Value == 1
				out := input.KeyboardEvent{
					Keysym:  sym,
					Keycode: uint32(ev.Code),
					Pressed: pressed,
					Mods:    tracker.update(sym, pressed),
					TimeMs:  uint32(time.Now().UnixMilli()),
				}
				select {
				case e.events <- out:
				default:
					logger.Warn("Keyboard event buffer full, dropping event")
				}
			}
		}
	}
}

// findKeyboardDevice picks the first device advertising alphabetic keys,
// skipping power buttons and similar pseudo keyboards.
func findKeyboardDevice() (string, error) {
	devices, err := evdev.ListInputDevices("/dev/input/event*")
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}

	for _, dev := range devices {
		name := strings.ToLower(dev.Name)
		if strings.Contains(name, "power") || strings.Contains(name, "button") ||
			strings.Contains(name, "video") || strings.Contains(name, "sleep") {
			continue
		}
		keys, ok := dev.CapabilitiesFlat[evdev.EV_KEY]
		if !ok {
			continue
		}
		for _, key := range keys {
			if key >= evdev.KEY_A && key <= evdev.KEY_Z {
				return dev.Fn, nil
			}
		}
	}
	return "", fmt.Errorf("no suitable keyboard device found")
}
