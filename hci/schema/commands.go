package schema

import (
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/param"
)

func op(ogf cmd.OGF, ocf cmd.OCF) cmd.Opcode { return cmd.NewOpcode(ogf, ocf) }

var (
	text    = param.TextKind
	addr    = param.AddressKind
	boolean = param.BoolKind
	signed  = param.IntKind
)

// Command parameters [Vol 4, Part E, 7.1-7.8]. Commands without
// parameters, e.g. RESET, are left out.
var commandTable = map[cmd.Opcode]param.Schema{
	op(cmd.OGFLinkControl, 0x001): {
		param.F("LAP", 3, dec),
		param.F("Inquiry_Length", 1, Time1p28s),
		param.F("Num_Responses", 1, dec),
	},
	op(cmd.OGFLinkControl, 0x006): {
		param.F("Connection_Handle", 2, dec),
		param.F("Reason", 1, Status),
	},
	op(cmd.OGFLinkControl, 0x008): {param.F("BD_ADDR", 6, addr)},
	op(cmd.OGFLinkControl, 0x01D): {param.F("Connection_Handle", 2, dec)},

	op(cmd.OGFLinkPolicy, 0x009): {param.F("Connection_Handle", 2, dec)},

	op(cmd.OGFController, 0x001): {param.F("Event_Mask", 8, EventMask)},
	op(cmd.OGFController, 0x008): {param.F("Connection_Handle", 2, dec)},
	op(cmd.OGFController, 0x013): {param.F("Local_Name", 248, text)},
	op(cmd.OGFController, 0x033): {
		param.F("Host_ACL_Data_Packet_Length", 2, dec),
		param.F("Host_Synchronous_Data_Packet_Length", 1, dec),
		param.F("Host_Total_Num_ACL_Data_Packets", 2, dec),
		param.F("Host_Total_Num_Synchronous_Data_Packets", 2, dec),
	},
	op(cmd.OGFController, 0x035): {
		param.F("Num_Handles", 1, dec),
		param.Repeat{Count: param.CountRef(-1), Fields: []param.Node{
			param.F("Connection_Handle[{}]", 2, dec),
			param.F("Host_Num_Completed_Packets[{}]", 2, dec),
		}},
	},
	op(cmd.OGFController, 0x063): {param.F("Event_Mask_Page_2", 8, param.HexKind)},
	op(cmd.OGFController, 0x06D): {
		param.F("LE_Supported_Host", 1, boolean),
		param.F("Unused", 1, dec),
	},
	op(cmd.OGFController, 0x07B): {param.F("Connection_Handle", 2, dec)},
	op(cmd.OGFController, 0x07C): {
		param.F("Connection_Handle", 2, dec),
		param.F("Authenticated_Payload_Timeout", 2, Time10ms),
	},

	op(cmd.OGFStatus, 0x001): {param.F("Handle", 2, dec)},
	op(cmd.OGFStatus, 0x005): {param.F("Handle", 2, dec)},

	op(cmd.OGFLEController, 0x001): {param.F("LE_Event_Mask", 8, LEEventMask)},
	op(cmd.OGFLEController, 0x005): {param.F("Random_Address", 6, addr)},
	op(cmd.OGFLEController, 0x006): {
		param.F("Advertising_Interval_Min", 2, Time0p625ms),
		param.F("Advertising_Interval_Max", 2, Time0p625ms),
		param.F("Advertising_Type", 1, AdvertisingType),
		param.F("Own_Address_Type", 1, AddressType),
		param.F("Peer_Address_Type", 1, AddressType),
		param.F("Peer_Address", 6, addr),
		param.F("Advertising_Channel_Map", 1, AdvertisingChannelMap),
		param.F("Advertising_Filter_Policy", 1, AdvertisingFilterPolicy),
	},
	op(cmd.OGFLEController, 0x008): {
		param.F("Advertising_Data_Length", 1, dec),
		param.F("Advertising_Data", 31, param.BytesKind),
	},
	op(cmd.OGFLEController, 0x009): {
		param.F("Scan_Response_Data_Length", 1, dec),
		param.F("Scan_Response_Data", 31, param.BytesKind),
	},
	op(cmd.OGFLEController, 0x00A): {param.F("Advertising_Enable", 1, boolean)},
	op(cmd.OGFLEController, 0x00B): {
		param.F("LE_Scan_Type", 1, ScanType),
		param.F("LE_Scan_Interval", 2, Time0p625ms),
		param.F("LE_Scan_Window", 2, Time0p625ms),
		param.F("Own_Address_Type", 1, AddressType),
		param.F("Scanning_Filter_Policy", 1, ScanFilterPolicy),
	},
	op(cmd.OGFLEController, 0x00C): {
		param.F("LE_Scan_Enable", 1, boolean),
		param.F("Filter_Duplicates", 1, boolean),
	},
	op(cmd.OGFLEController, 0x00D): {
		param.F("LE_Scan_Interval", 2, Time0p625ms),
		param.F("LE_Scan_Window", 2, Time0p625ms),
		param.F("Initiator_Filter_Policy", 1, boolean),
		param.F("Peer_Address_Type", 1, AddressType),
		param.F("Peer_Address", 6, addr),
		param.F("Own_Address_Type", 1, AddressType),
		param.F("Connection_Interval_Min", 2, Time1p25ms),
		param.F("Connection_Interval_Max", 2, Time1p25ms),
		param.F("Max_Latency", 2, dec),
		param.F("Supervision_Timeout", 2, Time10ms),
		param.F("Min_CE_Length", 2, Time0p625ms),
		param.F("Max_CE_Length", 2, Time0p625ms),
	},
	op(cmd.OGFLEController, 0x011): {
		param.F("Address_Type", 1, AddressType),
		param.F("Address", 6, addr),
	},
	op(cmd.OGFLEController, 0x012): {
		param.F("Address_Type", 1, AddressType),
		param.F("Address", 6, addr),
	},
	op(cmd.OGFLEController, 0x013): {
		param.F("Connection_Handle", 2, dec),
		param.F("Connection_Interval_Min", 2, Time1p25ms),
		param.F("Connection_Interval_Max", 2, Time1p25ms),
		param.F("Max_Latency", 2, dec),
		param.F("Supervision_Timeout", 2, Time10ms),
		param.F("Min_CE_Length", 2, Time0p625ms),
		param.F("Max_CE_Length", 2, Time0p625ms),
	},
	op(cmd.OGFLEController, 0x016): {param.F("Connection_Handle", 2, dec)},
	op(cmd.OGFLEController, 0x017): {
		param.F("Key", 16, param.HexKind),
		param.F("Plaintext_Data", 16, param.HexKind),
	},
	op(cmd.OGFLEController, 0x019): {
		param.F("Connection_Handle", 2, dec),
		param.F("Random_Number", 8, param.HexKind),
		param.F("Encrypted_Diversifier", 2, dec),
		param.F("Long_Term_Key", 16, param.HexKind),
	},
	op(cmd.OGFLEController, 0x01A): {
		param.F("Connection_Handle", 2, dec),
		param.F("Long_Term_Key", 16, param.HexKind),
	},
	op(cmd.OGFLEController, 0x01B): {param.F("Connection_Handle", 2, dec)},
	op(cmd.OGFLEController, 0x01D): {param.F("RX_Channel", 1, dec)},
	op(cmd.OGFLEController, 0x01E): {
		param.F("TX_Channel", 1, dec),
		param.F("Test_Data_Length", 1, dec),
		param.F("Packet_Payload", 1, PacketPayload),
	},
	op(cmd.OGFLEController, 0x022): {
		param.F("Connection_Handle", 2, dec),
		param.F("TX_Octets", 2, dec),
		param.F("TX_Time", 2, dec),
	},
	op(cmd.OGFLEController, 0x030): {param.F("Connection_Handle", 2, dec)},
	op(cmd.OGFLEController, 0x031): {
		param.F("All_PHYs", 1, PHYPreference),
		param.F("TX_PHYs", 1, PHYMask),
		param.F("RX_PHYs", 1, PHYMask),
	},
	op(cmd.OGFLEController, 0x032): {
		param.F("Connection_Handle", 2, dec),
		param.F("All_PHYs", 1, PHYPreference),
		param.F("TX_PHYs", 1, PHYMask),
		param.F("RX_PHYs", 1, PHYMask),
		param.F("PHY_Options", 2, PHYOptions),
	},
	op(cmd.OGFLEController, 0x033): {
		param.F("RX_Channel", 1, dec),
		param.F("PHY", 1, PHY),
		param.F("Modulation_Index", 1, dec),
	},
	op(cmd.OGFLEController, 0x034): {
		param.F("TX_Channel", 1, dec),
		param.F("Test_Data_Length", 1, dec),
		param.F("Packet_Payload", 1, PacketPayload),
		param.F("PHY", 1, PHY),
	},
	op(cmd.OGFLEController, 0x035): {
		param.F("Advertising_Handle", 1, dec),
		param.F("Random_Address", 6, addr),
	},
	op(cmd.OGFLEController, 0x037): {
		param.F("Advertising_Handle", 1, dec),
		param.F("Operation", 1, dec),
		param.F("Fragment_Preference", 1, dec),
		param.F("Advertising_Data_Length", 1, dec),
		param.Field{Label: "Advertising_Data", Len: param.Ref(-1), Kind: param.BytesKind},
	},
	op(cmd.OGFLEController, 0x038): {
		param.F("Advertising_Handle", 1, dec),
		param.F("Operation", 1, dec),
		param.F("Fragment_Preference", 1, dec),
		param.F("Scan_Response_Data_Length", 1, dec),
		param.Field{Label: "Scan_Response_Data", Len: param.Ref(-1), Kind: param.BytesKind},
	},
	op(cmd.OGFLEController, 0x039): {
		param.F("Enable", 1, boolean),
		param.F("Num_Sets", 1, dec),
		param.Repeat{Count: param.CountRef(-1), Fields: []param.Node{
			param.F("Advertising_Handle[{}]", 1, dec),
			param.F("Duration[{}]", 2, Time10ms),
			param.F("Max_Extended_Advertising_Events[{}]", 1, dec),
		}},
	},
	op(cmd.OGFLEController, 0x03C): {param.F("Advertising_Handle", 1, dec)},
	op(cmd.OGFLEController, 0x042): {
		param.F("Enable", 1, boolean),
		param.F("Filter_Duplicates", 1, dec),
		param.F("Duration", 2, Time10ms),
		param.F("Period", 2, Time1p28s),
	},

	op(cmd.OGFVendor, 0x3F0): {param.F("BD_ADDR", 6, addr)},
	op(cmd.OGFVendor, 0x3F5): {param.F("Advertising_TX_Power", 1, signed)},
	op(cmd.OGFVendor, 0x3F6): {
		param.F("Connection_Handle", 2, dec),
		param.F("TX_Power", 1, signed),
	},
	op(cmd.OGFVendor, 0x3F8): {
		param.F("Connection_Handle", 2, dec),
		param.F("Channel_Map", 5, param.HexKind),
	},
	op(cmd.OGFVendor, 0x3F9): {param.F("Enable", 1, boolean)},
}
