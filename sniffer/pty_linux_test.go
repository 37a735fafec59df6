//go:build linux

package sniffer

import (
	"bytes"
	"io"
	"testing"
)

func TestOpenPTY(t *testing.T) {
	master, slave, path, err := openPTY()
	if err != nil {
		t.Skipf("no pseudo-terminals: %v", err)
	}
	defer master.Close()
	defer slave.Close()

	if path == "" {
		t.Fatal("empty slave path")
	}

	// Raw mode: bytes pass through untranslated, including CR and LF.
	frame := []byte{0x04, 0x0e, 0x04, 0x01, 0x0d, 0x0a, 0x00}
	if _, err := slave.Write(frame); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, len(frame))
	if _, err := io.ReadFull(master, got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, frame) {
		t.Fatalf("got [% x], want [% x]", got, frame)
	}
}
