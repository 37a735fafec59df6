package schema

import (
	"fmt"

	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/param"
)

// StatusCodes names HCI error codes [Vol 1, Part F, 1.3]. Some codes carry
// a second name from the LE wording of the same condition.
var StatusCodes = &param.EnumTable{
	Names: map[uint64]string{
		0x00: "SUCCESS",
		0x01: "UNKNOWN_HCI_COMMAND",
		0x02: "UNKNOWN_CONNECTION_IDENTIFIER",
		0x03: "HARDWARE_FAILURE",
		0x04: "PAGE_TIMEOUT",
		0x05: "AUTHENTICATION_FAILURE",
		0x06: "PIN_OR_KEY_MISSING",
		0x07: "MEMORY_CAPACITY_EXCEEDED",
		0x08: "CONNECTION_TIMEOUT",
		0x09: "CONNECTION_LIMIT_EXCEEDED",
		0x0A: "SYNCHRONOUS_CONNECTION_LIMIT_TO_A_DEVICE_EXCEEDED",
		0x0B: "CONNECTION_ALREADY_EXISTS",
		0x0C: "COMMAND_DISALLOWED",
		0x0D: "CONNECTION_REJECTED_DUE_TO_LIMITED_RESOURCES",
		0x0E: "CONNECTION_REJECTED_DUE_TO_SECURITY_REASONS",
		0x0F: "CONNECTION_REJECTED_DUE_TO_UNACCEPTABLE_BD_ADDR",
		0x10: "CONNECTION_ACCEPT_TIMEOUT_EXCEEDED",
		0x11: "UNSUPPORTED_FEATURE_OR_PARAMETER_VALUE",
		0x12: "INVALID_HCI_COMMAND_PARAMETERS",
		0x13: "REMOTE_USER_TERMINATED_CONNECTION",
		0x14: "REMOTE_DEVICE_TERMINATED_CONNECTION_DUE_TO_LOW_RESOURCES",
		0x15: "REMOTE_DEVICE_TERMINATED_CONNECTION_DUE_TO_POWER_OFF",
		0x16: "CONNECTION_TERMINATED_BY_LOCAL_HOST",
		0x17: "REPEATED_ATTEMPTS",
		0x18: "PAIRING_NOT_ALLOWED",
		0x19: "UNKNOWN_LMP_PDU",
		0x1A: "UNSUPPORTED_REMOTE_FEATURE",
		0x1B: "SCO_OFFSET_REJECTED",
		0x1C: "SCO_INTERVAL_REJECTED",
		0x1D: "SCO_AIR_MODE_REJECTED",
		0x1E: "INVALID_LMP_PARAMETERS",
		0x1F: "UNSPECIFIED_ERROR",
		0x20: "UNSUPPORTED_LMP_PARAMETER_VALUE",
		0x21: "ROLE_CHANGE_NOT_ALLOWED",
		0x22: "LMP_RESPONSE_TIMEOUT",
		0x23: "LMP_ERROR_TRANSACTION_COLLISION",
		0x24: "LMP_PDU_NOT_ALLOWED",
		0x25: "ENCRYPTION_MODE_NOT_ACCEPTABLE",
		0x26: "LINK_KEY_CANNOT_BE_CHANGED",
		0x27: "REQUESTED_QOS_NOT_SUPPORTED",
		0x28: "INSTANT_PASSED",
		0x29: "PAIRING_WITH_UNIT_KEY_NOT_SUPPORTED",
		0x2A: "DIFFERENT_TRANSACTION_COLLISION",
		0x2C: "QOS_UNACCEPTABLE_PARAMETER",
		0x2D: "QOS_REJECTED",
		0x2E: "CHANNEL_CLASSIFICATION_NOT_SUPPORTED",
		0x2F: "INSUFFICIENT_SECURITY",
		0x30: "PARAMETER_OUT_OF_MANDATORY_RANGE",
		0x32: "ROLE_SWITCH_PENDING",
		0x34: "RESERVED_SLOT_VIOLATION",
		0x35: "ROLE_SWITCH_FAILED",
		0x36: "EXTENDED_INQUIRY_RESPONSE_TOO_LARGE",
		0x37: "SECURE_SIMPLE_PAIRING_NOT_SUPPORTED_BY_HOST",
		0x38: "HOST_BUSY_PAIRING",
		0x39: "CONNECTION_REJECTED_DUE_TO_NO_SUITABLE_CHANNEL_FOUND",
		0x3A: "CONTROLLER_BUSY",
		0x3B: "UNACCEPTABLE_CONNECTION_PARAMETERS",
		0x3C: "ADVERTISING_TIMEOUT",
		0x3D: "CONNECTION_TERMINATED_DUE_TO_MIC_FAILURE",
		0x3E: "CONNECTION_FAILED_TO_BE_ESTABLISHED",
		0x40: "COARSE_CLOCK_ADJUSTMENT_REJECTED_BUT_WILL_TRY_TO_ADJUST_USING_CLOCK_DRAGGING",
		0x41: "TYPE0_SUBMAP_NOT_DEFINED",
		0x42: "UNKNOWN_ADVERTISING_IDENTIFIER",
		0x43: "LIMIT_REACHED",
		0x44: "OPERATION_CANCELLED_BY_HOST",
		0x45: "PACKET_TOO_LONG",
		0x46: "TOO_LATE",
		0x47: "TOO_EARLY",
		0x48: "INSUFFICIENT_CHANNELS",
	},
	Alt: map[uint64]string{
		0x1E: "INVALID_LL_PARAMETERS",
		0x20: "UNSUPPORTED_LL_PARAMETER_VALUE",
		0x22: "LL_RESPONSE_TIMEOUT",
		0x23: "LL_PROCEDURE_COLLISION",
		0x3E: "SYNCHRONIZATION_TIMEOUT",
	},
}

func enum(name string, names map[uint64]string) param.Kind {
	return param.EnumKind(name, &param.EnumTable{Names: names})
}

const (
	msec = "milliseconds"
	sec  = "seconds"
)

// Decode kinds shared by the tables.
var (
	Status = param.EnumKind("status", StatusCodes)

	Role = enum("role", map[uint64]string{
		0x00: "CENTRAL",
		0x01: "PERIPHERAL",
	})
	AddressType = enum("address_type", map[uint64]string{
		0x00: "PUBLIC_DEVICE_ADDRESS",
		0x01: "RANDOM_DEVICE_ADDRESS",
		0x02: "PUBLIC_IDENTITY_ADDRESS",
		0x03: "RANDOM_IDENTITY_ADDRESS",
	})
	ClockAccuracy = enum("clock_accuracy", map[uint64]string{
		0x00: "PPM_500",
		0x01: "PPM_250",
		0x02: "PPM_150",
		0x03: "PPM_100",
		0x04: "PPM_75",
		0x05: "PPM_50",
		0x06: "PPM_30",
		0x07: "PPM_20",
	})
	LinkType = enum("link_type", map[uint64]string{
		0x00: "SCO",
		0x01: "ACL",
		0x02: "E_SCO",
	})
	AdvertisingType = enum("advertising_type", map[uint64]string{
		0x00: "ADV_IND",
		0x01: "HIGH_DUTY_CYCLE",
		0x02: "ADV_SCAN_IND",
		0x03: "ADV_NONCONN_IND",
		0x04: "LOW_DUTY_CYCLE",
	})
	AdvertisingEventType = enum("advertising_event_type", map[uint64]string{
		0x00: "ADV_IND",
		0x01: "ADV_DIRECT_IND",
		0x02: "ADV_SCAN_IND",
		0x03: "ADV_NONCONN_IND",
		0x04: "SCAN_RSP",
	})
	AdvertisingFilterPolicy = enum("advertising_filter_policy", map[uint64]string{
		0x00: "FILTER_ACCEPT_LIST_NOT_IN_USE",
		0x01: "FILTER_CONNECTION_REQUESTS",
		0x02: "FILTER_SCAN_REQUESTS",
		0x03: "FILTER_CONNECTION_AND_SCAN_REQUESTS",
	})
	ScanType = enum("le_scan_type", map[uint64]string{
		0x00: "PASSIVE_SCANNING",
		0x01: "ACTIVE_SCANNING",
	})
	ScanFilterPolicy = enum("scan_filter_policy", map[uint64]string{
		0x00: "BASIC_UNFILTERED",
		0x01: "BASIC_FILTERED",
		0x02: "EXTENDED_UNFILTERED",
		0x03: "EXTENDED_FILTERED",
		0x04: "BASIC_UNFILTERED_ALL_PDUS",
		0x05: "BASIC_FILTERED_ALL_PDUS",
		0x06: "EXTENDED_UNFILTERED_ALL_PDUS",
		0x07: "EXTENDED_FILTERED_ALL_PDUS",
		0x0C: "BASIC_UNFILTERED_DECISIONS_ONLY",
		0x0D: "BASIC_FILTERED_DECISIONS_ONLY",
		0x0E: "EXTENDED_UNFILTERED_DECISIONS_ONLY",
		0x0F: "EXTENDED_FILTERED_DECISIONS_ONLY",
	})
	PHY = enum("phy_select", map[uint64]string{
		0x01: "LE_1M",
		0x02: "LE_2M",
		0x03: "LE_CODED_S8",
		0x04: "LE_CODED_S2",
	})
	PHYOptions = enum("phy_options", map[uint64]string{
		0x00: "NO_PREFERENCE",
		0x01: "S2_PREFERRED",
		0x02: "S8_PREFERRED",
		0x03: "S2_REQUIRED/S8_REQUIRED",
	})
	PacketPayload = enum("packet_payload", map[uint64]string{
		0x00: "PLD_PRBS9",
		0x01: "PLD_11110000",
		0x02: "PLD_10101010",
		0x03: "PLD_PRBS15",
		0x04: "PLD_11111111",
		0x05: "PLD_00000000",
		0x06: "PLD_00001111",
		0x07: "PLD_01010101",
	})
	ChannelSelection = enum("csa_type", map[uint64]string{
		0x00: "ALGORITHM_1",
		0x01: "ALGORITHM_2",
	})

	PHYMask = param.FlagsKind("phy_mask", param.BitSet{
		{Mask: 1 << 0, Name: "LE_1M"},
		{Mask: 1 << 1, Name: "LE_2M"},
		{Mask: 1 << 2, Name: "LE_CODED"},
	})
	PHYPreference = param.FlagsKind("phy_preference", param.BitSet{
		{Mask: 1 << 0, Name: "NO_TX_PREFERENCE"},
		{Mask: 1 << 1, Name: "NO_RX_PREFERENCE"},
	})
	AdvertisingChannelMap = param.FlagsKind("advertising_channel_map", param.BitSet{
		{Mask: 1 << 0, Name: "CH37"},
		{Mask: 1 << 1, Name: "CH38"},
		{Mask: 1 << 2, Name: "CH39"},
	})

	Time1p28s    = param.ScaledKind("time_1p28s", 1.28, sec)
	Time0p625ms  = param.ScaledKind("time_p625ms", 0.625, msec)
	Time1p25ms   = param.ScaledKind("time_1p25ms", 1.25, msec)
	Time0p125ms  = param.ScaledKind("time_p125ms", 0.125, msec)
	Time0p3125ms = param.ScaledKind("time_p3125ms", 0.3125, msec)
	Time10ms     = param.ScaledKind("time_10ms", 10, msec)

	Opcode = param.NewKind("opcode", true, func(b []byte) (param.Value, error) {
		if len(b) != 2 {
			return param.Hex{Uint: param.NewUint(b)}, nil
		}
		return OpcodeValue(uint16(b[0]) | uint16(b[1])<<8), nil
	})
)

// OpcodeValue is a command opcode carried as a parameter.
type OpcodeValue cmd.Opcode

func (v OpcodeValue) Uint64() (uint64, bool) { return uint64(v), true }

func (v OpcodeValue) String() string {
	return fmt.Sprintf("%v (0x%04X)", cmd.Opcode(v), uint16(v))
}

// EventMask names the bits of Set_Event_Mask [Vol 4, Part E, 7.3.1].
var EventMask = param.FlagsKind("event_mask", param.BitSet{
	{Mask: 1 << 0, Name: "INQUIRY_COMPLETE"},
	{Mask: 1 << 1, Name: "INQUIRY_RESULT"},
	{Mask: 1 << 2, Name: "CONNECTION_COMPLETE"},
	{Mask: 1 << 3, Name: "CONNECTION_REQUEST"},
	{Mask: 1 << 4, Name: "DISCONNECTION_COMPLETE"},
	{Mask: 1 << 5, Name: "AUTHENTICATION_COMPLETE"},
	{Mask: 1 << 6, Name: "REMOTE_NAME_REQUEST_COMPLETE"},
	{Mask: 1 << 7, Name: "ENCRYPTION_CHANGE_V1"},
	{Mask: 1 << 8, Name: "CHANGE_CONNECTION_LINK_KEY_COMPLETE"},
	{Mask: 1 << 9, Name: "LINK_KEY_TYPE_CHANGED"},
	{Mask: 1 << 10, Name: "READ_REMOTE_SUPPORTED_FEATURES_COMPLETE"},
	{Mask: 1 << 11, Name: "READ_REMOTE_VERSION_INFORMATION_COMPLETE"},
	{Mask: 1 << 12, Name: "QOS_SETUP_COMPLETE"},
	{Mask: 1 << 15, Name: "HARDWARE_ERROR"},
	{Mask: 1 << 16, Name: "FLUSH_OCCURRED"},
	{Mask: 1 << 17, Name: "ROLE_CHANGE"},
	{Mask: 1 << 19, Name: "MODE_CHANGE"},
	{Mask: 1 << 20, Name: "RETURN_LINK_KEYS"},
	{Mask: 1 << 21, Name: "PIN_CODE_REQUEST"},
	{Mask: 1 << 22, Name: "LINK_KEY_REQUEST"},
	{Mask: 1 << 23, Name: "LINK_KEY_NOTIFICATION"},
	{Mask: 1 << 24, Name: "LOOPBACK_COMMAND"},
	{Mask: 1 << 25, Name: "DATA_BUFFER_OVERFLOW"},
	{Mask: 1 << 26, Name: "MAX_SLOTS_CHANGE"},
	{Mask: 1 << 27, Name: "READ_CLOCK_OFFSET_COMPLETE"},
	{Mask: 1 << 28, Name: "CONNECTION_PACKET_TYPE_CHANGED"},
	{Mask: 1 << 29, Name: "QOS_VIOLATION"},
	{Mask: 1 << 31, Name: "PAGE_SCAN_REPETITION_MODE_CHANGE"},
	{Mask: 1 << 32, Name: "FLOW_SPECIFICATION_COMPLETE"},
	{Mask: 1 << 33, Name: "INQUIRY_RESULT_WITH_RSSI"},
	{Mask: 1 << 34, Name: "READ_REMOTE_EXTENDED_FEATURES_COMPLETE"},
	{Mask: 1 << 43, Name: "SYNCHRONOUS_CONNECTION_COMPLETE"},
	{Mask: 1 << 44, Name: "SYNCHRONOUS_CONNECTION_CHANGED"},
	{Mask: 1 << 45, Name: "SNIFF_SUBRATING"},
	{Mask: 1 << 46, Name: "EXTENDED_INQUIRY_RESULT"},
	{Mask: 1 << 47, Name: "ENCRYPTION_KEY_REFRESH_COMPLETE"},
	{Mask: 1 << 48, Name: "IO_CAPABILITY_REQUEST"},
	{Mask: 1 << 49, Name: "IO_CAPABILITY_RESPONSE"},
	{Mask: 1 << 50, Name: "USER_CONFIRMATION_REQUEST"},
	{Mask: 1 << 51, Name: "USER_PASSKEY_REQUEST"},
	{Mask: 1 << 52, Name: "REMOTE_OOB_DATA_REQUEST"},
	{Mask: 1 << 53, Name: "SIMPLE_PAIRING_COMPLETE"},
	{Mask: 1 << 55, Name: "LINK_SUPERVISION_TIMEOUT_CHANGED"},
	{Mask: 1 << 56, Name: "ENHANCED_FLUSH_COMPLETE"},
	{Mask: 1 << 58, Name: "USER_PASSKEY_NOTIFICATION"},
	{Mask: 1 << 59, Name: "KEYPRESS_NOTIFICATION"},
	{Mask: 1 << 60, Name: "REMOTE_HOST_SUPPORTED_FEATURES_NOTIFICATION"},
	{Mask: 1 << 61, Name: "LE_META"},
})

// LEEventMask names the bits of LE_Set_Event_Mask [Vol 4, Part E, 7.8.1].
var LEEventMask = param.FlagsKind("le_event_mask", param.BitSet{
	{Mask: 1 << 0, Name: "LE_CONNECTION_COMPLETE"},
	{Mask: 1 << 1, Name: "LE_ADVERTISING_REPORT"},
	{Mask: 1 << 2, Name: "LE_CONNECTION_UPDATE_COMPLETE"},
	{Mask: 1 << 3, Name: "LE_READ_REMOTE_FEATURES_PAGE_0_COMPLETE"},
	{Mask: 1 << 4, Name: "LE_LONG_TERM_KEY_REQUEST"},
	{Mask: 1 << 5, Name: "LE_REMOTE_CONNECTION_PARAMETER_REQUEST"},
	{Mask: 1 << 6, Name: "LE_DATA_LENGTH_CHANGE"},
	{Mask: 1 << 7, Name: "LE_READ_LOCAL_P256_PUBLIC_KEY_COMPLETE"},
	{Mask: 1 << 8, Name: "LE_GENERATE_DHKEY_COMPLETE"},
	{Mask: 1 << 9, Name: "LE_ENHANCED_CONNECTION_COMPLETE_V1"},
	{Mask: 1 << 10, Name: "LE_DIRECTED_ADVERTISING_REPORT"},
	{Mask: 1 << 11, Name: "LE_PHY_UPDATE_COMPLETE"},
	{Mask: 1 << 12, Name: "LE_EXTENDED_ADVERTISING_REPORT"},
	{Mask: 1 << 13, Name: "LE_PERIODIC_ADVERTISING_SYNC_ESTABLISHED_V1"},
	{Mask: 1 << 14, Name: "LE_PERIODIC_ADVERTISING_REPORT_V1"},
	{Mask: 1 << 15, Name: "LE_PERIODIC_ADVERTISING_SYNC_LOST"},
	{Mask: 1 << 16, Name: "LE_SCAN_TIMEOUT"},
	{Mask: 1 << 17, Name: "LE_ADVERTISING_SET_TERMINATED"},
	{Mask: 1 << 18, Name: "LE_SCAN_REQUEST_RECEIVED"},
	{Mask: 1 << 19, Name: "LE_CHANNEL_SELECTION_ALGORITHM"},
	{Mask: 1 << 20, Name: "LE_CONNECTIONLESS_IQ_REPORT"},
	{Mask: 1 << 21, Name: "LE_CONNECTION_IQ_REPORT"},
	{Mask: 1 << 22, Name: "LE_CTE_REQUEST_FAILED"},
	{Mask: 1 << 23, Name: "LE_PERIODIC_ADVERTISING_SYNC_TRANSFER_RECEIVED_V1"},
	{Mask: 1 << 24, Name: "LE_CIS_ESTABLISHED_V1"},
	{Mask: 1 << 25, Name: "LE_CIS_REQUEST"},
	{Mask: 1 << 26, Name: "LE_CREATE_BIG_COMPLETE"},
	{Mask: 1 << 27, Name: "LE_TERMINATE_BIG_COMPLETE"},
	{Mask: 1 << 28, Name: "LE_BIG_SYNC_ESTABLISHED"},
	{Mask: 1 << 29, Name: "LE_BIG_SYNC_LOST"},
	{Mask: 1 << 30, Name: "LE_REQUEST_PEER_SCA_COMPLETE"},
	{Mask: 1 << 31, Name: "LE_PATH_LOSS_THRESHOLD"},
	{Mask: 1 << 32, Name: "LE_TRANSMIT_POWER_REPORTING"},
	{Mask: 1 << 33, Name: "LE_BIGINFO_ADVERTISING_REPORT"},
	{Mask: 1 << 34, Name: "LE_SUBRATE_CHANGE"},
})
