package sniffer

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/decode"
)

// Mode selects which directions are recorded. Traffic is always forwarded
// both ways.
type Mode int

const (
	Bidirectional Mode = iota
	CtrlToHost
	HostToCtrl
)

var modeNames = map[Mode]string{
	Bidirectional: "bidirectional",
	CtrlToHost:    "ctrl2host",
	HostToCtrl:    "host2ctrl",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return "unknown"
}

var modeAliases = map[string]Mode{
	"":     Bidirectional,
	"both": Bidirectional,
	"c2h":  CtrlToHost,
	"h2c":  HostToCtrl,
}

// ParseMode accepts the names printed by Mode.String and the short forms
// both, c2h and h2c. An empty string is Bidirectional.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := modeAliases[s]; ok {
		return m, nil
	}
	for m, n := range modeNames {
		if n == s {
			return m, nil
		}
	}
	return 0, errors.Errorf("sniffer: unknown mode %q", s)
}

func (m Mode) observes(dir decode.Direction) bool {
	switch m {
	case CtrlToHost:
		return dir == decode.ControllerToHost
	case HostToCtrl:
		return dir == decode.HostToController
	}
	return true
}
