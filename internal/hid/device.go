package hid

import (
	"context"
	"fmt"
	"sync"

	"github.com/karalabe/hid"
	"go.uber.org/zap"

	"github.com/pleimann/duo-pad/internal/utils"
)

// Device is a connection to the pad over HID
type Device struct {
	vendorID  uint16
	productID uint16
	device    *hid.Device
	logger    *zap.SugaredLogger
	mu        sync.Mutex
	closed    bool
}

// Open connects to the first openable interface matching the vendor and product IDs
func Open(vendorID, productID uint16, logger *zap.SugaredLogger) (*Device, error) {
	logger = logger.Named("hid")

	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		if len(hid.Enumerate(0, 0)) == 0 {
			return nil, fmt.Errorf("no HID devices found on system - check USB connection")
		}
		return nil, fmt.Errorf("no device found with VendorID=0x%04X, ProductID=0x%04X\n"+
			"  Run '%s list-devices' to see available devices\n"+
			"  Run '%s set-device' to configure the correct device",
			vendorID, productID, utils.ExecutableName(), utils.ExecutableName())
	}

	// Some pads expose several interfaces and not all of them can be opened
	var lastErr error
	for _, info := range devices {
		dev, err := info.Open()
		if err != nil {
			logger.Debugw("Interface did not open", "path", info.Path, "error", err)
			lastErr = err
			continue
		}
		logger.Infow("Opened device",
			"vendorID", fmt.Sprintf("0x%04X", vendorID),
			"productID", fmt.Sprintf("0x%04X", productID),
			"product", info.Product)
		return &Device{
			vendorID:  vendorID,
			productID: productID,
			device:    dev,
			logger:    logger,
		}, nil
	}

	return nil, fmt.Errorf("failed to open any of %d interfaces for device 0x%04X:0x%04X: %w\n"+
		"  This may be a permissions issue; check the udev rules for hidraw devices",
		len(devices), vendorID, productID, lastErr)
}

// Close closes the HID device connection
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.device != nil {
		return d.device.Close()
	}
	return nil
}

// ReadEvents reads button reports and sends them to events until ctx is
// cancelled or the device fails
func (d *Device) ReadEvents(ctx context.Context, events chan<- Event) error {
	buf := make([]byte, 64)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return fmt.Errorf("device closed")
		}
		dev := d.device
		d.mu.Unlock()

		n, err := dev.Read(buf)
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}
		if n == 0 {
			continue
		}

		event, err := ParseEvent(buf[:n])
		if err != nil {
			// Display acks and unknown reports share the endpoint
			d.logger.Debugw("Skipping report", "error", err)
			continue
		}

		select {
		case events <- *event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Write sends a raw report to the device
func (d *Device) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("device closed")
	}

	_, err := d.device.Write(data)
	return err
}

// SendFrame sends a display frame to the device
func (d *Device) SendFrame(frame *DisplayFrame) error {
	return d.Write(frame.Encode())
}
