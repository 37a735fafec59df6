//go:build !linux

package sniffer

import (
	"os"

	"github.com/pkg/errors"
)

func openPTY() (*os.File, *os.File, string, error) {
	return nil, nil, "", errors.New("sniffer: pseudo-terminal proxy is only supported on linux")
}
