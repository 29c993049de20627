package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer types accepted by NewPrinterFromConfig
const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeFile    = "file"
	TypeNone    = "none"
)

// Printer sends raw ESC/POS jobs to a receipt printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	Close() error
	IsConnected() bool
}

// devicePrinter writes each job to a file path. A USB printer is a device
// node that must already exist (e.g. /dev/usb/lp0); a spool file is created
// and appended to, for a print daemon to pick up.
type devicePrinter struct {
	path  string
	flags int
	kind  string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &devicePrinter{path: devicePath, flags: os.O_WRONLY, kind: "USB device"}
}

// NewFilePrinter creates a printer that appends every job to a spool file.
func NewFilePrinter(path string) Printer {
	return &devicePrinter{path: path, flags: os.O_CREATE | os.O_WRONLY | os.O_APPEND, kind: "spool file"}
}

func (p *devicePrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.path, p.flags, 0o644)
	if err != nil {
		return fmt.Errorf("printer: failed to open %s %s: %w", p.kind, p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write %s %s: %w", p.kind, p.path, err)
	}
	return nil
}

func (p *devicePrinter) Close() error {
	return nil // opened per job
}

func (p *devicePrinter) IsConnected() bool {
	if p.flags&os.O_CREATE != 0 {
		return p.path != ""
	}
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP printer port, e.g. 192.168.1.100:9100.
type networkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address must include the port.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address:      address,
		dialTimeout:  5 * time.Second,
		writeTimeout: 10 * time.Second,
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(p.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // dialed per job
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for shops without a receipt printer.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, []byte) error { return nil }
func (nullPrinter) Close() error                        { return nil }
func (nullPrinter) IsConnected() bool                   { return false }

// NewPrinterFromConfig creates the Printer for a configured type.
// path is the device node or spool file; address is host:port of a network printer.
func NewPrinterFromConfig(printerType, path, address string) (Printer, error) {
	switch printerType {
	case TypeUSB:
		if path == "" {
			return nil, fmt.Errorf("printer: device path is required for the usb printer type")
		}
		return NewUSBPrinter(path), nil
	case TypeFile:
		if path == "" {
			return nil, fmt.Errorf("printer: spool path is required for the file printer type")
		}
		return NewFilePrinter(path), nil
	case TypeNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for the network printer type")
		}
		return NewNetworkPrinter(address), nil
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, file, or none)", printerType)
	}
}
