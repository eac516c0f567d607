package common

import (
	"fmt"
	"strings"
)

// ErrCode identifies the class of a decode error or protocol anomaly.
type ErrCode uint32

const (
	CodeOK               ErrCode = 0
	CodeConfiguration    ErrCode = 1
	CodeFraming          ErrCode = 2
	CodeIDCollision      ErrCode = 3
	CodeStaleSubmission  ErrCode = 4
	CodeEndpointMismatch ErrCode = 5
	CodeTypeMismatch     ErrCode = 6
	CodeOutOfSequence    ErrCode = 7
	CodeMissingKick      ErrCode = 8
	CodeAddressMismatch  ErrCode = 9
	CodeParseFailure     ErrCode = 10
	CodeMalformed        ErrCode = 11
	CodeTransferFailed   ErrCode = 12
	CodeTrailingBytes    ErrCode = 13
	CodeSource           ErrCode = 14
)

// ErrSeverity is the severity attached to an Error.
type ErrSeverity uint32

const (
	ErrSevNone  ErrSeverity = 0
	ErrSevError ErrSeverity = 1
	ErrSevWarn  ErrSeverity = 2
	ErrSevInfo  ErrSeverity = 3
)

// NoSeq marks an error not tied to a particular capture event.
const NoSeq = ^uint64(0)

// Error is the library error object. Protocol anomalies, framing errors and
// configuration errors all use it; Code tells them apart.
type Error struct {
	Code    ErrCode
	Sev     ErrSeverity
	Seq     uint64 // sequence number of the event being decoded
	Message string
}

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrConfiguration    = &Error{Code: CodeConfiguration, Sev: ErrSevError, Seq: NoSeq}
	ErrFraming          = &Error{Code: CodeFraming, Sev: ErrSevError, Seq: NoSeq}
	ErrIDCollision      = &Error{Code: CodeIDCollision, Sev: ErrSevWarn, Seq: NoSeq}
	ErrStaleSubmission  = &Error{Code: CodeStaleSubmission, Sev: ErrSevWarn, Seq: NoSeq}
	ErrEndpointMismatch = &Error{Code: CodeEndpointMismatch, Sev: ErrSevWarn, Seq: NoSeq}
	ErrTypeMismatch     = &Error{Code: CodeTypeMismatch, Sev: ErrSevError, Seq: NoSeq}
	ErrOutOfSequence    = &Error{Code: CodeOutOfSequence, Sev: ErrSevWarn, Seq: NoSeq}
	ErrMissingKick      = &Error{Code: CodeMissingKick, Sev: ErrSevWarn, Seq: NoSeq}
	ErrAddressMismatch  = &Error{Code: CodeAddressMismatch, Sev: ErrSevWarn, Seq: NoSeq}
	ErrParseFailure     = &Error{Code: CodeParseFailure, Sev: ErrSevWarn, Seq: NoSeq}
	ErrMalformed        = &Error{Code: CodeMalformed, Sev: ErrSevWarn, Seq: NoSeq}
	ErrTransferFailed   = &Error{Code: CodeTransferFailed, Sev: ErrSevWarn, Seq: NoSeq}
	ErrTrailingBytes    = &Error{Code: CodeTrailingBytes, Sev: ErrSevInfo, Seq: NoSeq}
	ErrSource           = &Error{Code: CodeSource, Sev: ErrSevError, Seq: NoSeq}
)

// NewError creates an error with the default severity for its code.
func NewError(code ErrCode, seq uint64, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     defaultSeverity(code),
		Seq:     seq,
		Message: msg,
	}
}

// Errorf is NewError with a formatted message.
func Errorf(code ErrCode, seq uint64, format string, args ...any) *Error {
	return NewError(code, seq, fmt.Sprintf(format, args...))
}

// ConfigErrorf builds a configuration error. These are only raised before
// any event is processed.
func ConfigErrorf(format string, args ...any) *Error {
	return NewError(CodeConfiguration, NoSeq, fmt.Sprintf(format, args...))
}

func defaultSeverity(code ErrCode) ErrSeverity {
	switch code {
	case CodeConfiguration, CodeFraming, CodeTypeMismatch, CodeSource:
		return ErrSevError
	case CodeTrailingBytes:
		return ErrSevInfo
	default:
		return ErrSevWarn
	}
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Fatal reports whether the error aborts startup. Only configuration errors do.
func (e *Error) Fatal() bool {
	return e.Code == CodeConfiguration
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	switch e.Sev {
	case ErrSevError:
		sb.WriteString("ERROR:")
	case ErrSevWarn:
		sb.WriteString("WARN :")
	case ErrSevInfo:
		sb.WriteString("INFO :")
	default:
		return "INTERNAL ERROR: Invalid Error Object"
	}

	sb.WriteString(fmt.Sprintf("0x%04x ", uint32(e.Code)))

	if desc, ok := errorCodeDesc[e.Code]; ok {
		sb.WriteString(fmt.Sprintf("(%s) [%s]; ", desc.name, desc.msg))
	} else {
		sb.WriteString("(unknown); ")
	}

	if e.Seq != NoSeq {
		sb.WriteString(fmt.Sprintf("Seq=%d; ", e.Seq))
	}

	sb.WriteString(e.Message)
	return sb.String()
}

// Severity maps the error severity onto the logger severity.
func (e *Error) Severity() Severity {
	switch e.Sev {
	case ErrSevError:
		return SeverityError
	case ErrSevInfo:
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// String returns the short name of the code, e.g. "OUT_OF_SEQUENCE".
func (c ErrCode) String() string {
	if desc, ok := errorCodeDesc[c]; ok {
		return desc.name
	}
	return "UNKNOWN"
}

type errDesc struct {
	name string
	msg  string
}

var errorCodeDesc = map[ErrCode]errDesc{
	CodeOK:               {"OK", "No error."},
	CodeConfiguration:    {"CONFIGURATION", "Invalid register catalog or decoder configuration."},
	CodeFraming:          {"FRAMING", "Bulk frame length runs past the end of the transfer."},
	CodeIDCollision:      {"ID_COLLISION", "Submission id already pending; older submission dropped."},
	CodeStaleSubmission:  {"STALE_SUBMISSION", "Pending submission evicted without a completion."},
	CodeEndpointMismatch: {"ENDPOINT_MISMATCH", "Submission and completion endpoints differ."},
	CodeTypeMismatch:     {"TYPE_MISMATCH", "Submission and completion transfer types differ."},
	CodeOutOfSequence:    {"OUT_OF_SEQUENCE", "Packet out of sequence for indirect register handshake."},
	CodeMissingKick:      {"MISSING_KICK", "Indirect register control word without kick bit."},
	CodeAddressMismatch:  {"ADDRESS_MISMATCH", "Read-back address differs from staged address."},
	CodeParseFailure:     {"PARSE_FAILURE", "MCU mailbox command sequence aborted."},
	CodeMalformed:        {"MALFORMED", "Transaction does not have the expected shape."},
	CodeTransferFailed:   {"TRANSFER_FAILED", "Transfer completed with a non-zero status."},
	CodeTrailingBytes:    {"TRAILING_BYTES", "Bytes left over after the last bulk frame."},
	CodeSource:           {"SOURCE", "Capture source error."},
}
