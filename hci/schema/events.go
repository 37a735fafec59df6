package schema

import (
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/evt"
	"github.com/rigado/hcitools/hci/param"
)

// Event parameters [Vol 4, Part E, 7.7]. Command Complete and LE Meta
// are resolved through their own tables.
var eventTable = map[evt.Code]param.Schema{
	evt.InquiryCompleteCode: {param.F("Status", 1, Status)},
	evt.ConnectionCompleteCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("BD_ADDR", 6, addr),
		param.F("Link_Type", 1, LinkType),
		param.F("Encryption_Enabled", 1, boolean),
	},
	evt.DisconnectionCompleteCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("Reason", 1, Status),
	},
	evt.AuthenticationCompleteCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
	},
	evt.EncryptionChangeCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("Encryption_Enabled", 1, dec),
	},
	evt.ReadRemoteFeaturesCompleteCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("LMP_Features", 8, hex),
	},
	evt.ReadRemoteVersionCompleteCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("Version", 1, dec),
		param.F("Manufacturer_Name", 2, hex),
		param.F("Subversion", 2, hex),
	},
	evt.CommandStatusCode: {
		param.F("Status", 1, Status),
		param.F("Num_HCI_Command_Packets", 1, dec),
		param.F("Command_Opcode", 2, Opcode),
	},
	evt.HardwareErrorCode: {param.F("Hardware_Code", 1, hex)},
	evt.FlushOccurredCode: {param.F("Handle", 2, dec)},
	evt.RoleChangeCode: {
		param.F("Status", 1, Status),
		param.F("BD_ADDR", 6, addr),
		param.F("New_Role", 1, Role),
	},
	evt.NumberOfCompletedPacketsCode: {
		param.F("Num_Handles", 1, dec),
		param.Repeat{Count: param.CountRef(-1), Fields: []param.Node{
			param.F("Connection_Handle[{}]", 2, dec),
			param.F("Num_Completed_Packets[{}]", 2, dec),
		}},
	},
	evt.DataBufferOverflowCode: {param.F("Link_Type", 1, LinkType)},
	evt.EncryptionKeyRefreshCompleteCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
	},
	evt.AuthenticatedPayloadTimeoutExpiredCode: {param.F("Connection_Handle", 2, dec)},
	evt.VendorCode:                             {param.Rest("Vendor_Data", hex)},
}

// LE Meta sub-event parameters, following the sub-event code
// [Vol 4, Part E, 7.7.65].
var leMetaTable = map[evt.SubCode]param.Schema{
	evt.LEConnectionCompleteSubCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("Role", 1, Role),
		param.F("Peer_Address_Type", 1, AddressType),
		param.F("Peer_Address", 6, addr),
		param.F("Connection_Interval", 2, Time1p25ms),
		param.F("Peripheral_Latency", 2, dec),
		param.F("Supervision_Timeout", 2, Time10ms),
		param.F("Central_Clock_Accuracy", 1, ClockAccuracy),
	},
	evt.LEAdvertisingReportSubCode: {
		param.F("Num_Reports", 1, dec),
		param.Repeat{Count: param.CountRef(-1), Fields: []param.Node{
			param.F("Event_Type[{}]", 1, AdvertisingEventType),
			param.F("Address_Type[{}]", 1, AddressType),
			param.F("Address[{}]", 6, addr),
			param.F("Data_Length[{}]", 1, dec),
			param.Field{Label: "Data[{}]", Len: param.Ref(-1), Kind: param.BytesKind},
			param.F("RSSI[{}]", 1, signed),
		}},
	},
	evt.LEConnectionUpdateCompleteSubCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("Connection_Interval", 2, Time1p25ms),
		param.F("Peripheral_Latency", 2, dec),
		param.F("Supervision_Timeout", 2, Time10ms),
	},
	evt.LEReadRemoteFeaturesCompleteSubCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("LE_Features", 8, hex),
	},
	evt.LELongTermKeyRequestSubCode: {
		param.F("Connection_Handle", 2, dec),
		param.F("Random_Number", 8, hex),
		param.F("Encrypted_Diversifier", 2, hex),
	},
	evt.LERemoteConnectionParameterRequestSubCode: {
		param.F("Connection_Handle", 2, dec),
		param.F("Interval_Min", 2, Time1p25ms),
		param.F("Interval_Max", 2, Time1p25ms),
		param.F("Max_Latency", 2, dec),
		param.F("Timeout", 2, Time10ms),
	},
	evt.LEDataLengthChangeSubCode: {
		param.F("Connection_Handle", 2, dec),
		param.F("Max_TX_Octets", 2, dec),
		param.F("Max_TX_Time", 2, dec),
		param.F("Max_RX_Octets", 2, dec),
		param.F("Max_RX_Time", 2, dec),
	},
	evt.LEReadLocalP256PublicKeyCompleteSubCode: {
		param.F("Status", 1, Status),
		param.F("Key_X_Coordinate", 32, hex),
		param.F("Key_Y_Coordinate", 32, hex),
	},
	evt.LEGenerateDHKeyCompleteSubCode: {
		param.F("Status", 1, Status),
		param.F("DH_Key", 32, hex),
	},
	evt.LEEnhancedConnectionCompleteSubCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("Role", 1, Role),
		param.F("Peer_Address_Type", 1, AddressType),
		param.F("Peer_Address", 6, addr),
		param.F("Local_Resolvable_Private_Address", 6, addr),
		param.F("Peer_Resolvable_Private_Address", 6, addr),
		param.F("Connection_Interval", 2, Time1p25ms),
		param.F("Peripheral_Latency", 2, dec),
		param.F("Supervision_Timeout", 2, Time10ms),
		param.F("Central_Clock_Accuracy", 1, ClockAccuracy),
	},
	evt.LEPHYUpdateCompleteSubCode: {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("TX_PHY", 1, PHY),
		param.F("RX_PHY", 1, PHY),
	},
	evt.LEAdvertisingSetTerminatedSubCode: {
		param.F("Status", 1, Status),
		param.F("Advertising_Handle", 1, dec),
		param.F("Connection_Handle", 2, dec),
		param.F("Num_Completed_Extended_Advertising_Events", 1, dec),
	},
	evt.LEScanRequestReceivedSubCode: {
		param.F("Advertising_Handle", 1, dec),
		param.F("Scanner_Address_Type", 1, AddressType),
		param.F("Scanner_Address", 6, addr),
	},
	evt.LEChannelSelectionAlgorithmSubCode: {
		param.F("Connection_Handle", 2, dec),
		param.F("Channel_Selection_Algorithm", 1, ChannelSelection),
	},
}

func status() param.Schema { return param.Schema{param.F("Status", 1, Status)} }

func statusHandle() param.Schema {
	return param.Schema{
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
	}
}

// Command Complete return parameters, by the opcode they answer.
var commandCompleteTable = map[cmd.Opcode]param.Schema{
	cmd.OpNop:                     nil,
	cmd.OpReset:                   status(),
	cmd.OpSetEventMask:            status(),
	op(cmd.OGFLinkControl, 0x002): status(),
	op(cmd.OGFLinkControl, 0x008): {param.F("Status", 1, Status), param.F("BD_ADDR", 6, addr)},
	op(cmd.OGFLinkPolicy, 0x009):  {param.F("Status", 1, Status), param.F("Connection_Handle", 2, dec), param.F("Current_Role", 1, Role)},
	op(cmd.OGFController, 0x008):  statusHandle(),
	op(cmd.OGFController, 0x013):  status(),
	op(cmd.OGFController, 0x014):  {param.F("Status", 1, Status), param.F("Local_Name", 248, text)},
	op(cmd.OGFController, 0x031):  status(),
	op(cmd.OGFController, 0x033):  status(),
	op(cmd.OGFController, 0x063):  status(),
	op(cmd.OGFController, 0x06D):  status(),
	op(cmd.OGFController, 0x07B):  {param.F("Status", 1, Status), param.F("Connection_Handle", 2, dec), param.F("Authenticated_Payload_Timeout", 2, Time10ms)},
	op(cmd.OGFController, 0x07C):  statusHandle(),
	cmd.OpReadLocalVersion: {
		param.F("Status", 1, Status),
		param.F("HCI_Version", 1, dec),
		param.F("HCI_Subversion", 2, hex),
		param.F("LMP_Version", 1, dec),
		param.F("Company_Identifier", 2, hex),
		param.F("LMP_Subversion", 2, hex),
	},
	op(cmd.OGFInformational, 0x002): {param.F("Status", 1, Status), param.F("Supported_Commands", 64, hex)},
	op(cmd.OGFInformational, 0x003): {param.F("Status", 1, Status), param.F("LMP_Features", 8, hex)},
	op(cmd.OGFInformational, 0x005): {
		param.F("Status", 1, Status),
		param.F("ACL_Data_Packet_Length", 2, dec),
		param.F("Synchronous_Data_Packet_Length", 1, dec),
		param.F("Total_Num_ACL_Data_Packets", 2, dec),
		param.F("Total_Num_Synchronous_Data_Packets", 2, dec),
	},
	cmd.OpReadBDAddr:         {param.F("Status", 1, Status), param.F("BD_ADDR", 6, addr)},
	op(cmd.OGFStatus, 0x001): {param.F("Status", 1, Status), param.F("Handle", 2, dec), param.F("Failed_Contact_Counter", 2, dec)},
	op(cmd.OGFStatus, 0x005): {param.F("Status", 1, Status), param.F("Handle", 2, dec), param.F("RSSI", 1, signed)},
	cmd.OpLESetEventMask:     status(),
	cmd.OpLEReadBufferSize: {
		param.F("Status", 1, Status),
		param.F("LE_ACL_Data_Packet_Length", 2, dec),
		param.F("Total_Num_LE_ACL_Data_Packets", 1, dec),
	},
	op(cmd.OGFLEController, 0x003): {param.F("Status", 1, Status), param.F("LE_Features", 8, hex)},
	op(cmd.OGFLEController, 0x005): status(),
	op(cmd.OGFLEController, 0x006): status(),
	op(cmd.OGFLEController, 0x007): {param.F("Status", 1, Status), param.F("TX_Power_Level", 1, signed)},
	cmd.OpLESetAdvertisingData:     status(),
	op(cmd.OGFLEController, 0x009): status(),
	cmd.OpLESetAdvertiseEnable:     status(),
	cmd.OpLESetScanParameters:      status(),
	cmd.OpLESetScanEnable:          status(),
	op(cmd.OGFLEController, 0x00E): status(),
	op(cmd.OGFLEController, 0x00F): {param.F("Status", 1, Status), param.F("Filter_Accept_List_Size", 1, dec)},
	op(cmd.OGFLEController, 0x010): status(),
	op(cmd.OGFLEController, 0x011): status(),
	op(cmd.OGFLEController, 0x012): status(),
	op(cmd.OGFLEController, 0x017): {param.F("Status", 1, Status), param.F("Encrypted_Data", 16, hex)},
	op(cmd.OGFLEController, 0x018): {param.F("Status", 1, Status), param.F("Random_Number", 8, hex)},
	op(cmd.OGFLEController, 0x01A): statusHandle(),
	op(cmd.OGFLEController, 0x01B): statusHandle(),
	op(cmd.OGFLEController, 0x01C): {param.F("Status", 1, Status), param.F("LE_States", 8, hex)},
	op(cmd.OGFLEController, 0x01D): status(),
	cmd.OpLETransmitterTest:        status(),
	cmd.OpLETestEnd:                {param.F("Status", 1, Status), param.F("Num_Packets", 2, dec)},
	op(cmd.OGFLEController, 0x022): statusHandle(),
	op(cmd.OGFLEController, 0x023): {
		param.F("Status", 1, Status),
		param.F("Suggested_Max_TX_Octets", 2, dec),
		param.F("Suggested_Max_TX_Time", 2, dec),
	},
	op(cmd.OGFLEController, 0x02F): {
		param.F("Status", 1, Status),
		param.F("Supported_Max_TX_Octets", 2, dec),
		param.F("Supported_Max_TX_Time", 2, dec),
		param.F("Supported_Max_RX_Octets", 2, dec),
		param.F("Supported_Max_RX_Time", 2, dec),
	},
	op(cmd.OGFLEController, 0x030): {
		param.F("Status", 1, Status),
		param.F("Connection_Handle", 2, dec),
		param.F("TX_PHY", 1, PHY),
		param.F("RX_PHY", 1, PHY),
	},
	op(cmd.OGFLEController, 0x031): status(),
	op(cmd.OGFLEController, 0x033): status(),
	op(cmd.OGFLEController, 0x034): status(),
	op(cmd.OGFLEController, 0x035): status(),
	cmd.OpLESetExtAdvertiseData:    status(),
	op(cmd.OGFLEController, 0x038): status(),
	op(cmd.OGFLEController, 0x039): status(),
	op(cmd.OGFLEController, 0x03A): {param.F("Status", 1, Status), param.F("Max_Advertising_Data_Length", 2, dec)},
	op(cmd.OGFLEController, 0x03C): status(),
	op(cmd.OGFLEController, 0x03D): status(),
	op(cmd.OGFVendor, 0x3F0):       status(),
	op(cmd.OGFVendor, 0x3F1):       {param.F("Status", 1, Status), param.F("Random_Address", 6, addr)},
	op(cmd.OGFVendor, 0x3F5):       status(),
	op(cmd.OGFVendor, 0x3F6):       status(),
	op(cmd.OGFVendor, 0x3F8):       status(),
	op(cmd.OGFVendor, 0x3F9):       status(),
}
