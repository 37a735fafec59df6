package schema

import (
	"github.com/rigado/hcitools/hci/l2cap"
	"github.com/rigado/hcitools/hci/param"
)

// L2CAP signaling enumerations [Vol 3, Part A, 4].
var (
	L2CAPReason = enum("l2cap_reason", map[uint64]string{
		0x00: "COMMAND_NOT_UNDERSTOOD",
		0x01: "SIGNALING_MTU_EXCEEDED",
		0x02: "INVALID_CID_IN_REQUEST",
	})
	L2CAPConnectionResult = enum("l2cap_connection_result", map[uint64]string{
		0x00: "CONNECTION_SUCCESSFUL",
		0x01: "CONNECTION_PENDING",
		0x02: "CONNECTION_REFUSED_PSM_NOT_SUPPORTED",
		0x03: "CONNECTION_REFUSED_SECURITY_BLOCK",
		0x04: "CONNECTION_REFUSED_NO_RESOURCES_AVAILABLE",
		0x06: "CONNECTION_REFUSED_INVALID_SOURCE_CID",
		0x07: "CONNECTION_REFUSED_SOURCE_CID_ALREADY_ALLOCATED",
	})
	L2CAPConfigureResult = enum("l2cap_configure_result", map[uint64]string{
		0x00: "SUCCESS",
		0x01: "FAILURE_UNACCEPTABLE_PARAMETERS",
		0x02: "FAILURE_REJECTED",
		0x03: "FAILURE_UNKNOWN_OPTIONS",
		0x04: "PENDING",
		0x05: "FAILURE_FLOW_SPEC_REJECTED",
	})
	L2CAPCreditConnectionResult = enum("l2cap_credit_connection_result", map[uint64]string{
		0x00: "CONNECTION_SUCCESSFUL",
		0x02: "CONNECTION_REFUSED_SPSM_NOT_SUPPORTED",
		0x04: "CONNECTION_REFUSED_NO_RESOURCES_AVAILABLE",
		0x05: "CONNECTION_REFUSED_INSUFFICIENT_AUTHENTICATION",
		0x06: "CONNECTION_REFUSED_INSUFFICIENT_AUTHORIZATION",
		0x07: "CONNECTION_REFUSED_ENCRYPTION_KEY_SIZE_TOO_SHORT",
		0x08: "CONNECTION_REFUSED_INSUFFICIENT_ENCRYPTION",
		0x09: "CONNECTION_REFUSED_INVALID_SOURCE_CID",
		0x0A: "CONNECTION_REFUSED_SOURCE_CID_ALREADY_ALLOCATED",
		0x0B: "CONNECTION_REFUSED_UNACCEPTABLE_PARAMETERS",
		0x0C: "CONNECTION_REFUSED_INVALID_PARAMETERS",
		0x0D: "CONNECTION_PENDING",
		0x0E: "CONNECTION_PENDING_AUTHENTICATION_PENDING",
		0x0F: "CONNECTION_PENDING_AUTHORIZATION_PENDING",
	})
	L2CAPReconfigureResult = enum("l2cap_credit_reconfigure_result", map[uint64]string{
		0x00: "RECONFIGURATION_SUCCESSFUL",
		0x01: "RECONFIGURATION_FAILED_REDUCTION_IN_SIZE_OF_MTU_NOT_ALLOWED",
		0x02: "RECONFIGURATION_FAILED_MPS_SIZE_REDUCTION_NOT_ALLOWED_FOR_MULTIPLE_CHANNELS",
		0x03: "RECONFIGURATION_FAILED_ONE_OR_MORE_DESTINATION_CIDS_INVALID",
		0x04: "RECONFIGURATION_FAILED_OTHER_UNACCEPTABLE_PARAMETERS",
	})
	L2CAPInfoResult = enum("l2cap_info_result", map[uint64]string{
		0x00: "SUCCESS",
		0x01: "NOT_SUPPORTED",
	})
	L2CAPParameterUpdateResult = enum("l2cap_parameter_update_result", map[uint64]string{
		0x00: "CONNECTION_PARAMETERS_ACCEPTED",
		0x01: "CONNECTION_PARAMETERS_REJECTED",
	})
	L2CAPStatus = enum("l2cap_status", map[uint64]string{
		0x00: "NO_FURTHER_INFORMATION_AVAILABLE",
		0x01: "AUTHENTICATION_PENDING",
		0x02: "AUTHORIZATION_PENDING",
	})
	L2CAPInfoType = enum("l2cap_info_type", map[uint64]string{
		0x01: "CONNECTIONLESS_MTU",
		0x02: "EXTENDED_FEATURE_MASK",
		0x03: "FIXED_CHANNELS_SUPPORTED_OVER_BR_EDR",
	})
)

// Signaling command parameters, after the 4 byte signaling header.
var signalingTable = map[l2cap.SignalingCode]param.Schema{
	l2cap.CommandReject: {
		param.F("Reason", 2, L2CAPReason),
		param.Rest("Reason_Data", hex),
	},
	// PSM is at least 2 octets and extended by the PSM extension bit,
	// so it takes everything but the trailing Source_CID.
	l2cap.ConnectionRequest: {
		param.Field{Label: "PSM", Len: param.Reserve(2), Kind: dec},
		param.F("Source_CID", 2, hex),
	},
	l2cap.ConnectionResponse: {
		param.F("Destination_CID", 2, hex),
		param.F("Source_CID", 2, hex),
		param.F("Result", 2, L2CAPConnectionResult),
		param.F("Status", 2, L2CAPStatus),
	},
	l2cap.ConfigurationRequest: {
		param.F("Destination_CID", 2, hex),
		param.F("Flags", 2, hex),
		param.Rest("Configuration_Options", hex),
	},
	l2cap.ConfigurationResponse: {
		param.F("Source_CID", 2, hex),
		param.F("Flags", 2, hex),
		param.F("Result", 2, L2CAPConfigureResult),
		param.Rest("Config", hex),
	},
	l2cap.DisconnectionRequest: {
		param.F("Destination_CID", 2, hex),
		param.F("Source_CID", 2, hex),
	},
	l2cap.DisconnectionResponse: {
		param.F("Destination_CID", 2, hex),
		param.F("Source_CID", 2, hex),
	},
	l2cap.EchoRequest:        {param.Rest("Echo_Data", hex)},
	l2cap.EchoResponse:       {param.Rest("Echo_Data", hex)},
	l2cap.InformationRequest: {param.F("Info_Type", 2, L2CAPInfoType)},
	l2cap.InformationResponse: {
		param.F("Info_Type", 2, L2CAPInfoType),
		param.F("Result", 2, L2CAPInfoResult),
		param.Rest("Info", hex),
	},
	l2cap.ConnectionParameterUpdateRequest: {
		param.F("Interval_Min", 2, Time1p25ms),
		param.F("Interval_Max", 2, Time1p25ms),
		param.F("Latency", 2, dec),
		param.F("Timeout", 2, Time10ms),
	},
	l2cap.ConnectionParameterUpdateResponse: {param.F("Result", 2, L2CAPParameterUpdateResult)},
	l2cap.LECreditBasedConnectionRequest: {
		param.F("SPSM", 2, hex),
		param.F("Source_CID", 2, hex),
		param.F("MTU", 2, dec),
		param.F("MPS", 2, dec),
		param.F("Initial_Credits", 2, dec),
	},
	l2cap.LECreditBasedConnectionResponse: {
		param.F("Destination_CID", 2, hex),
		param.F("MTU", 2, dec),
		param.F("MPS", 2, dec),
		param.F("Initial_Credits", 2, dec),
		param.F("Result", 2, L2CAPCreditConnectionResult),
	},
	l2cap.FlowControlCreditIndication: {
		param.F("CID", 2, hex),
		param.F("Credits", 2, dec),
	},
	l2cap.CreditBasedConnectionRequest: {
		param.F("SPSM", 2, hex),
		param.F("MTU", 2, dec),
		param.F("MPS", 2, dec),
		param.F("Initial_Credits", 2, dec),
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Source_CID[{}]", 2, hex),
		}},
	},
	l2cap.CreditBasedConnectionResponse: {
		param.F("MTU", 2, dec),
		param.F("MPS", 2, dec),
		param.F("Initial_Credits", 2, dec),
		param.F("Result", 2, L2CAPCreditConnectionResult),
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Destination_CID[{}]", 2, hex),
		}},
	},
	l2cap.CreditBasedReconfigureRequest: {
		param.F("MTU", 2, dec),
		param.F("MPS", 2, dec),
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Destination_CID[{}]", 2, hex),
		}},
	},
	l2cap.CreditBasedReconfigureResponse: {param.F("Result", 2, L2CAPReconfigureResult)},
}
