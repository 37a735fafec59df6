package evt

import "fmt"

// Code is an HCI event code.
type Code uint8

// Event codes [Vol 4, Part E, 7.7].
const (
	InquiryCompleteCode                    Code = 0x01
	InquiryResultCode                      Code = 0x02
	ConnectionCompleteCode                 Code = 0x03
	ConnectionRequestCode                  Code = 0x04
	DisconnectionCompleteCode              Code = 0x05
	AuthenticationCompleteCode             Code = 0x06
	RemoteNameRequestCompleteCode          Code = 0x07
	EncryptionChangeCode                   Code = 0x08
	ReadRemoteFeaturesCompleteCode         Code = 0x0B
	ReadRemoteVersionCompleteCode          Code = 0x0C
	CommandCompleteCode                    Code = 0x0E
	CommandStatusCode                      Code = 0x0F
	HardwareErrorCode                      Code = 0x10
	FlushOccurredCode                      Code = 0x11
	RoleChangeCode                         Code = 0x12
	NumberOfCompletedPacketsCode           Code = 0x13
	ModeChangeCode                         Code = 0x14
	DataBufferOverflowCode                 Code = 0x1A
	EncryptionKeyRefreshCompleteCode       Code = 0x30
	LEMetaCode                             Code = 0x3E
	AuthenticatedPayloadTimeoutExpiredCode Code = 0x57
	VendorCode                             Code = 0xFF
)

var codeNames = map[Code]string{
	InquiryCompleteCode:                    "INQUIRY_COMPLETE",
	InquiryResultCode:                      "INQUIRY_RESULT",
	ConnectionCompleteCode:                 "CONNECTION_COMPLETE",
	ConnectionRequestCode:                  "CONNECTION_REQUEST",
	DisconnectionCompleteCode:              "DISCONNECTION_COMPLETE",
	AuthenticationCompleteCode:             "AUTHENTICATION_COMPLETE",
	RemoteNameRequestCompleteCode:          "REMOTE_NAME_REQUEST_COMPLETE",
	EncryptionChangeCode:                   "ENCRYPTION_CHANGE",
	ReadRemoteFeaturesCompleteCode:         "READ_REMOTE_SUPPORTED_FEATURES_COMPLETE",
	ReadRemoteVersionCompleteCode:          "READ_REMOTE_VERSION_INFORMATION_COMPLETE",
	CommandCompleteCode:                    "COMMAND_COMPLETE",
	CommandStatusCode:                      "COMMAND_STATUS",
	HardwareErrorCode:                      "HARDWARE_ERROR",
	FlushOccurredCode:                      "FLUSH_OCCURRED",
	RoleChangeCode:                         "ROLE_CHANGE",
	NumberOfCompletedPacketsCode:           "NUMBER_OF_COMPLETED_PACKETS",
	ModeChangeCode:                         "MODE_CHANGE",
	DataBufferOverflowCode:                 "DATA_BUFFER_OVERFLOW",
	EncryptionKeyRefreshCompleteCode:       "ENCRYPTION_KEY_REFRESH_COMPLETE",
	LEMetaCode:                             "LE_META",
	AuthenticatedPayloadTimeoutExpiredCode: "AUTHENTICATED_PAYLOAD_TIMEOUT_EXPIRED",
	VendorCode:                             "VENDOR_SPEC",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", uint8(c))
}

// IsCommandResponse reports whether events with code c answer a command.
func (c Code) IsCommandResponse() bool {
	return c == CommandCompleteCode || c == CommandStatusCode
}

// SubCode is an LE meta sub-event code.
type SubCode uint8

// LE meta sub-events [Vol 4, Part E, 7.7.65].
const (
	LEConnectionCompleteSubCode               SubCode = 0x01
	LEAdvertisingReportSubCode                SubCode = 0x02
	LEConnectionUpdateCompleteSubCode         SubCode = 0x03
	LEReadRemoteFeaturesCompleteSubCode       SubCode = 0x04
	LELongTermKeyRequestSubCode               SubCode = 0x05
	LERemoteConnectionParameterRequestSubCode SubCode = 0x06
	LEDataLengthChangeSubCode                 SubCode = 0x07
	LEReadLocalP256PublicKeyCompleteSubCode   SubCode = 0x08
	LEGenerateDHKeyCompleteSubCode            SubCode = 0x09
	LEEnhancedConnectionCompleteSubCode       SubCode = 0x0A
	LEDirectedAdvertisingReportSubCode        SubCode = 0x0B
	LEPHYUpdateCompleteSubCode                SubCode = 0x0C
	LEExtendedAdvertisingReportSubCode        SubCode = 0x0D
	LEScanTimeoutSubCode                      SubCode = 0x11
	LEAdvertisingSetTerminatedSubCode         SubCode = 0x12
	LEScanRequestReceivedSubCode              SubCode = 0x13
	LEChannelSelectionAlgorithmSubCode        SubCode = 0x14
)

var subCodeNames = map[SubCode]string{
	LEConnectionCompleteSubCode:               "LE_CONNECTION_COMPLETE",
	LEAdvertisingReportSubCode:                "LE_ADVERTISING_REPORT",
	LEConnectionUpdateCompleteSubCode:         "LE_CONNECTION_UPDATE",
	LEReadRemoteFeaturesCompleteSubCode:       "LE_READ_REMOTE_FEATURES_COMPLETE",
	LELongTermKeyRequestSubCode:               "LE_LONG_TERM_KEY_REQUEST",
	LERemoteConnectionParameterRequestSubCode: "LE_REMOTE_CONNECTION_PARAMETER_REQUEST",
	LEDataLengthChangeSubCode:                 "LE_DATA_LENGTH_CHANGE",
	LEReadLocalP256PublicKeyCompleteSubCode:   "LE_READ_LOCAL_P256_PUBLIC_KEY_COMPLETE",
	LEGenerateDHKeyCompleteSubCode:            "LE_GENERATE_DHKEY_COMPLETE",
	LEEnhancedConnectionCompleteSubCode:       "LE_ENHANCED_CONNECTION_COMPLETE",
	LEDirectedAdvertisingReportSubCode:        "LE_DIRECTED_ADVERTISING_REPORT",
	LEPHYUpdateCompleteSubCode:                "LE_PHY_UPDATE_COMPLETE",
	LEExtendedAdvertisingReportSubCode:        "LE_EXTENDED_ADVERTISING_REPORT",
	LEScanTimeoutSubCode:                      "LE_SCAN_TIMEOUT",
	LEAdvertisingSetTerminatedSubCode:         "LE_ADVERTISING_SET_TERMINATED",
	LEScanRequestReceivedSubCode:              "LE_SCAN_REQUEST_RECEIVED",
	LEChannelSelectionAlgorithmSubCode:        "LE_CHANNEL_SELECTION_ALGORITHM",
}

func (c SubCode) String() string {
	if n, ok := subCodeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", uint8(c))
}
