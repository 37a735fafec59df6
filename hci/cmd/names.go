package cmd

// Opcodes used directly by the tools.
var (
	OpNop                   = NewOpcode(OGFNop, 0x000)
	OpDisconnect            = NewOpcode(OGFLinkControl, 0x006)
	OpSetEventMask          = NewOpcode(OGFController, 0x001)
	OpReset                 = NewOpcode(OGFController, 0x003)
	OpReadLocalVersion      = NewOpcode(OGFInformational, 0x001)
	OpReadBDAddr            = NewOpcode(OGFInformational, 0x009)
	OpLESetEventMask        = NewOpcode(OGFLEController, 0x001)
	OpLEReadBufferSize      = NewOpcode(OGFLEController, 0x002)
	OpLESetAdvertisingData  = NewOpcode(OGFLEController, 0x008)
	OpLESetAdvertiseEnable  = NewOpcode(OGFLEController, 0x00A)
	OpLESetScanParameters   = NewOpcode(OGFLEController, 0x00B)
	OpLESetScanEnable       = NewOpcode(OGFLEController, 0x00C)
	OpLECreateConnection    = NewOpcode(OGFLEController, 0x00D)
	OpLETransmitterTest     = NewOpcode(OGFLEController, 0x01E)
	OpLETestEnd             = NewOpcode(OGFLEController, 0x01F)
	OpLESetExtAdvertiseData = NewOpcode(OGFLEController, 0x037)
)

var ocfNames = map[OGF]map[OCF]string{
	OGFNop: {
		0x000: "NOP",
	},
	OGFLinkControl: {
		0x001: "INQUIRY",
		0x002: "INQUIRY_CANCEL",
		0x005: "CREATE_CONNECTION",
		0x006: "DISCONNECT",
		0x008: "CREATE_CONNECTION_CANCEL",
		0x009: "ACCEPT_CONNECTION_REQUEST",
		0x00A: "REJECT_CONNECTION_REQUEST",
		0x00B: "LINK_KEY_REQUEST_REPLY",
		0x00C: "LINK_KEY_REQUEST_NEGATIVE_REPLY",
		0x011: "AUTHENTICATION_REQUEST",
		0x013: "SET_CONNECTION_ENCRYPTION",
		0x019: "REMOTE_NAME_REQUEST",
		0x01B: "READ_REMOTE_SUPPORTED_FEATURES",
		0x01D: "READ_REMOTE_VERSION_INFORMATION",
	},
	OGFLinkPolicy: {
		0x001: "HOLD_MODE",
		0x003: "SNIFF_MODE",
		0x004: "EXIT_SNIFF_MODE",
		0x009: "ROLE_DISCOVERY",
		0x00B: "SWITCH_ROLE",
		0x00C: "READ_LINK_POLICY_SETTINGS",
		0x00D: "WRITE_LINK_POLICY_SETTINGS",
	},
	OGFController: {
		0x001: "SET_EVENT_MASK",
		0x003: "RESET",
		0x005: "SET_EVENT_FILTER",
		0x008: "FLUSH",
		0x013: "WRITE_LOCAL_NAME",
		0x014: "READ_LOCAL_NAME",
		0x01A: "WRITE_SCAN_ENABLE",
		0x02D: "READ_TRANSMIT_POWER_LEVEL",
		0x031: "SET_CONTROLLER_TO_HOST_FLOW_CONTROL",
		0x033: "HOST_BUFFER_SIZE",
		0x035: "HOST_NUMBER_OF_COMPLETED_PACKETS",
		0x063: "SET_EVENT_MASK_PAGE_2",
		0x06D: "WRITE_LE_HOST_SUPPORT",
		0x07B: "READ_AUTHENTICATED_PAYLOAD_TIMEOUT",
		0x07C: "WRITE_AUTHENTICATED_PAYLOAD_TIMEOUT",
	},
	OGFInformational: {
		0x001: "READ_LOCAL_VERSION_INFORMATION",
		0x002: "READ_LOCAL_SUPPORTED_COMMANDS",
		0x003: "READ_LOCAL_SUPPORTED_FEATURES",
		0x005: "READ_BUFFER_SIZE",
		0x009: "READ_BD_ADDR",
	},
	OGFStatus: {
		0x001: "READ_FAILED_CONTACT_COUNTER",
		0x005: "READ_RSSI",
	},
	OGFLEController: {
		0x001: "LE_SET_EVENT_MASK",
		0x002: "LE_READ_BUFFER_SIZE",
		0x003: "LE_READ_LOCAL_SUPPORTED_FEATURES",
		0x005: "LE_SET_RANDOM_ADDRESS",
		0x006: "LE_SET_ADVERTISING_PARAMETERS",
		0x007: "LE_READ_ADVERTISING_PHYSICAL_CHANNEL_TX_POWER",
		0x008: "LE_SET_ADVERTISING_DATA",
		0x009: "LE_SET_SCAN_RESPONSE_DATA",
		0x00A: "LE_SET_ADVERTISING_ENABLE",
		0x00B: "LE_SET_SCAN_PARAMETERS",
		0x00C: "LE_SET_SCAN_ENABLE",
		0x00D: "LE_CREATE_CONNECTION",
		0x00E: "LE_CREATE_CONNECTION_CANCEL",
		0x00F: "LE_READ_FILTER_ACCEPT_LIST_SIZE",
		0x010: "LE_CLEAR_FILTER_ACCEPT_LIST",
		0x011: "LE_ADD_DEVICE_TO_FILTER_ACCEPT_LIST",
		0x012: "LE_REMOVE_DEVICE_FROM_FILTER_ACCEPT_LIST",
		0x013: "LE_CONNECTION_UPDATE",
		0x016: "LE_READ_REMOTE_FEATURES",
		0x017: "LE_ENCRYPT",
		0x018: "LE_RAND",
		0x019: "LE_ENABLE_ENCRYPTION",
		0x01A: "LE_LONG_TERM_KEY_REQUEST_REPLY",
		0x01B: "LE_LONG_TERM_KEY_REQUEST_NEGATIVE_REPLY",
		0x01C: "LE_READ_SUPPORTED_STATES",
		0x01D: "LE_RECEIVER_TEST",
		0x01E: "LE_TRANSMITTER_TEST",
		0x01F: "LE_TEST_END",
		0x022: "LE_SET_DATA_LENGTH",
		0x023: "LE_READ_SUGGESTED_DEFAULT_DATA_LENGTH",
		0x02F: "LE_READ_MAXIMUM_DATA_LENGTH",
		0x030: "LE_READ_PHY",
		0x031: "LE_SET_DEFAULT_PHY",
		0x032: "LE_SET_PHY",
		0x033: "LE_RECEIVER_TEST_V2",
		0x034: "LE_TRANSMITTER_TEST_V2",
		0x035: "LE_SET_ADVERTISING_SET_RANDOM_ADDRESS",
		0x036: "LE_SET_EXTENDED_ADVERTISING_PARAMETERS",
		0x037: "LE_SET_EXTENDED_ADVERTISING_DATA",
		0x038: "LE_SET_EXTENDED_SCAN_RESPONSE_DATA",
		0x039: "LE_SET_EXTENDED_ADVERTISING_ENABLE",
		0x03A: "LE_READ_MAXIMUM_ADVERTISING_DATA_LENGTH",
		0x03C: "LE_REMOVE_ADVERTISING_SET",
		0x03D: "LE_CLEAR_ADVERTISING_SETS",
		0x041: "LE_SET_EXTENDED_SCAN_PARAMETERS",
		0x042: "LE_SET_EXTENDED_SCAN_ENABLE",
		0x043: "LE_EXTENDED_CREATE_CONNECTION",
	},
	OGFVendor: {
		0x3E0: "SET_SCAN_CH_MAP",
		0x3E1: "SET_EVENT_MASK",
		0x3E3: "ENA_ACL_SINK",
		0x3E4: "GENERATE_ACL",
		0x3E5: "ENA_AUTO_GEN_ACL",
		0x3E8: "SET_P256_PRIV_KEY",
		0x3E9: "GET_ACL_TEST_REPORT",
		0x3F0: "SET_BD_ADDR",
		0x3F1: "GET_RAND_ADDR",
		0x3F2: "SET_LOCAL_FEAT",
		0x3F3: "SET_OP_FLAGS",
		0x3F5: "SET_ADV_TX_PWR",
		0x3F6: "SET_CONN_TX_PWR",
		0x3F7: "SET_ENC_MODE",
		0x3F8: "SET_CHAN_MAP",
		0x3F9: "SET_DIAG_MODE",
	},
}
