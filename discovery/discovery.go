// Package discovery enumerates attached serial ports and filters them
// down to Imada DST/DSV gauges by their USB vendor/product identifiers.
//
// Enumeration is platform specific and lives behind the Enumerator
// interface so the rest of the driver stays free of it. Enumeration is
// read-only and side-effect-free; it is safe to run while a session is
// open on another port.
package discovery

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// USB identifiers of the DST/DSV series.
const (
	// VendorID is the Imada USB vendor ID
	VendorID = "1412"

	// ProductID is the DST/DSV series product ID
	ProductID = "0200"
)

// DeviceDescriptor identifies one attached serial device.
// Descriptors are plain values with no lifecycle; pass one to
// gauge.OpenDescriptor to start a session.
type DeviceDescriptor struct {
	// Path is the port path, e.g. "/dev/ttyACM0" or "COM3"
	Path string

	// VID is the USB vendor ID as a hex string, e.g. "1412"
	VID string

	// PID is the USB product ID as a hex string, e.g. "0200"
	PID string

	// Description is the human-readable product string, if any
	Description string
}

func (d DeviceDescriptor) String() string {
	if d.Description == "" {
		return d.Path
	}
	return fmt.Sprintf("%s: %s", d.Path, d.Description)
}

// Enumerator lists attached serial-capable devices.
type Enumerator interface {
	// Enumerate returns a descriptor for every attached serial device
	Enumerate() ([]DeviceDescriptor, error)
}

// USBEnumerator enumerates ports through the platform USB descriptor
// database.
type USBEnumerator struct{}

// Enumerate returns every attached USB serial port. Ports without USB
// metadata are skipped.
func (USBEnumerator) Enumerate() ([]DeviceDescriptor, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	var devices []DeviceDescriptor
	for _, p := range ports {
		if !p.IsUSB {
			continue
		}
		devices = append(devices, DeviceDescriptor{
			Path:        p.Name,
			VID:         p.VID,
			PID:         p.PID,
			Description: p.Product,
		})
	}
	return devices, nil
}

// Find returns the descriptors from e that match the DST/DSV vendor and
// product identifiers.
func Find(e Enumerator) ([]DeviceDescriptor, error) {
	devices, err := e.Enumerate()
	if err != nil {
		return nil, err
	}

	var matches []DeviceDescriptor
	for _, d := range devices {
		if strings.EqualFold(d.VID, VendorID) && strings.EqualFold(d.PID, ProductID) {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

// FindFirst returns the first matching gauge, or an error when none is
// attached.
func FindFirst(e Enumerator) (DeviceDescriptor, error) {
	matches, err := Find(e)
	if err != nil {
		return DeviceDescriptor{}, err
	}
	if len(matches) == 0 {
		return DeviceDescriptor{}, fmt.Errorf("no compatible gauge found")
	}
	return matches[0], nil
}
