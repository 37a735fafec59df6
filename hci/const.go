package hci

import "fmt"

// PacketType is the H4 indicator byte preceding every HCI packet on a UART.
type PacketType uint8

// HCI Packet types
const (
	PktTypeCommand  PacketType = 0x01
	PktTypeACLData  PacketType = 0x02
	PktTypeEvent    PacketType = 0x04
	PktTypeExtended PacketType = 0x09
)

// Known reports whether t is one of the packet types this module frames.
func (t PacketType) Known() bool {
	switch t {
	case PktTypeCommand, PktTypeACLData, PktTypeEvent, PktTypeExtended:
		return true
	}
	return false
}

func (t PacketType) String() string {
	switch t {
	case PktTypeCommand:
		return "Command"
	case PktTypeACLData:
		return "ACL"
	case PktTypeEvent:
		return "Event"
	case PktTypeExtended:
		return "ExtendedCommand"
	}
	return fmt.Sprintf("PacketType(0x%02X)", uint8(t))
}
