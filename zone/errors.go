package zone

import (
	"fmt"
)

// SourceErrorKind classifies why a zone could not be loaded.
type SourceErrorKind uint8

const (
	FileUnreadable SourceErrorKind = iota
	ParseError
	TransferFailed
)

func (k SourceErrorKind) String() string {
	switch k {
	case FileUnreadable:
		return "zone file not readable"
	case ParseError:
		return "zone file parse error"
	case TransferFailed:
		return "zone transfer failed"
	default:
		return fmt.Sprintf("SourceErrorKind(%d)", k)
	}
}

// SourceError is returned by Loader.Load. The whole check aborts on it,
// a zone that could not be loaded is never treated as empty.
type SourceError struct {
	Kind  SourceErrorKind
	Cause error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}

	return e.Kind.String()
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// TransferErrorKind classifies a failed zone transfer.
type TransferErrorKind uint8

const (
	ConnectionRefused TransferErrorKind = iota
	Timeout
	Truncated
	AuthFailed
)

func (k TransferErrorKind) String() string {
	switch k {
	case ConnectionRefused:
		return "connection refused"
	case Timeout:
		return "timeout"
	case Truncated:
		return "transfer truncated"
	case AuthFailed:
		return "TSIG verification failed"
	default:
		return fmt.Sprintf("TransferErrorKind(%d)", k)
	}
}

// TransferError is returned by Client.Transfer. No partial record set
// accompanies it: records from a failed transfer are always discarded.
type TransferError struct {
	Kind  TransferErrorKind
	Cause error
}

func (e *TransferError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}

	return e.Kind.String()
}

func (e *TransferError) Unwrap() error {
	return e.Cause
}
