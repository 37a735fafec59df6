// Package socket opens a Linux HCI user channel. A user channel gives the
// caller exclusive raw access to a controller, with every packet carrying
// its H4 indicator byte, so it can stand in for a serial port.
package socket

import (
	"strconv"
	"strings"
)

// ParseName returns the device id of names like "hci0".
func ParseName(name string) (int, bool) {
	if !strings.HasPrefix(name, "hci") {
		return 0, false
	}
	id, err := strconv.Atoi(name[len("hci"):])
	if err != nil || id < 0 || id > 0xffff {
		return 0, false
	}
	return id, true
}
