package printer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTextDocumentHasNoControlBytes(t *testing.T) {
	doc := NewTextDocument(Width58mm)
	doc.SetAlign(AlignCenter).SetBold(true).Text("KEDAI").SetBold(false).
		SetAlign(AlignLeft).Separator('-').KeyValue("Total:", "19,800").Finish()

	out := doc.Bytes()
	if bytes.IndexByte(out, ESC) >= 0 || bytes.IndexByte(out, GS) >= 0 {
		t.Fatalf("plain document contains printer commands: %q", out)
	}

	lines := strings.Split(strings.TrimRight(doc.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != strings.Repeat(" ", 13)+"KEDAI" {
		t.Errorf("expected centered header, got %q", lines[0])
	}
	if len(lines[2]) != Width58mm || !strings.HasSuffix(lines[2], "19,800") {
		t.Errorf("expected right-aligned value on a %d char line, got %q", Width58mm, lines[2])
	}
}

func TestEscPosDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(0)
	if doc.Width() != Width58mm {
		t.Fatalf("expected default width %d, got %d", Width58mm, doc.Width())
	}
	out := doc.Text("x").Bytes()
	if !bytes.HasPrefix(out, []byte{ESC, '@'}) {
		t.Fatalf("expected ESC @ prefix, got %q", out)
	}
}

func TestFinishCutsOnlyEscPosJobs(t *testing.T) {
	job := NewDocument(Width58mm).Text("x").Finish().Bytes()
	if !bytes.HasSuffix(job, []byte{LF, LF, LF, GS, 'V', 0x01}) {
		t.Fatalf("expected feed and partial cut at the end, got %q", job)
	}

	text := NewTextDocument(Width58mm).Text("x").Finish().String()
	if text != "x\n" {
		t.Fatalf("expected text document untouched, got %q", text)
	}
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	doc := NewTextDocument(20)
	doc.ItemLine(2, "Extraordinarily Long Product Name", "36,000")

	line := strings.TrimRight(doc.String(), "\n")
	if len(line) != 20 {
		t.Fatalf("expected a 20 char line, got %d: %q", len(line), line)
	}
	if !strings.HasPrefix(line, "2x Extraor") || !strings.HasSuffix(line, "36,000") {
		t.Errorf("unexpected item line %q", line)
	}
}

func TestNewPrinterFromConfig(t *testing.T) {
	if _, err := NewPrinterFromConfig("usb", "", ""); err == nil {
		t.Error("expected error for usb printer without path")
	}
	if _, err := NewPrinterFromConfig("laser", "", ""); err == nil {
		t.Error("expected error for unknown printer type")
	}
	p, err := NewPrinterFromConfig("", "", "")
	if err != nil || p.IsConnected() {
		t.Errorf("expected disconnected null printer, got %v %v", p, err)
	}
}

func TestFilePrinterAppendsJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spool.bin")
	p, err := NewPrinterFromConfig("file", path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Print(context.Background(), []byte("one\n")); err != nil {
		t.Fatalf("print: %v", err)
	}
	if err := p.Print(context.Background(), []byte("two\n")); err != nil {
		t.Fatalf("print: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read spool: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Fatalf("unexpected spool contents %q", data)
	}
}

func TestUSBPrinterNeedsDevice(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "lp0"))
	if p.IsConnected() {
		t.Fatal("expected missing device to report disconnected")
	}
	if err := p.Print(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected error when the device node does not exist")
	}
}

func TestPrintHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewFilePrinter(filepath.Join(t.TempDir(), "spool.bin"))
	if err := p.Print(ctx, []byte("x")); err == nil {
		t.Fatal("expected cancelled context to abort the job")
	}
}
