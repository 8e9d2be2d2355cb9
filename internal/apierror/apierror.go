// Package apierror defines the closed set of domain errors the Billogram
// client and workflow can surface. Every failure a caller may want to switch
// on is one of the Kind constants below — there is no open-ended hierarchy,
// and transport-level errors (DNS, TLS, timeouts) are never translated into
// these kinds.
package apierror

import (
	"errors"
	"fmt"
)

// Kind identifies one variant of the domain-error taxonomy.
type Kind int

const (
	// KindServiceMalfunctioning covers server-side faults and malformed
	// response envelopes (missing status/data fields, non-JSON 5xx bodies).
	KindServiceMalfunctioning Kind = iota
	// KindNotAuthorized — server reported PERMISSION_DENIED.
	KindNotAuthorized
	// KindInvalidAuthentication — server reported INVALID_AUTH.
	KindInvalidAuthentication
	// KindRequestForm — server reported MISSING_AUTH.
	KindRequestForm
	// KindPermissionDenied — 403 with an unrecognized status string.
	KindPermissionDenied
	// KindObjectNotFound — 404; for customer lookup this is the expected
	// trigger for creation, everywhere else it is terminal.
	KindObjectNotFound
	// KindInvalidParameter — server rejected a field value.
	KindInvalidParameter
	// KindInvalidContact — local email/phone validation failed; the record
	// never reached the network.
	KindInvalidContact
	// KindUnclassifiedResponse — non-200 response matching no explicit
	// classification branch (e.g. 410, 429).
	KindUnclassifiedResponse
)

// String returns the taxonomy name used in logs.
func (k Kind) String() string {
	switch k {
	case KindServiceMalfunctioning:
		return "service_malfunctioning"
	case KindNotAuthorized:
		return "not_authorized"
	case KindInvalidAuthentication:
		return "invalid_authentication"
	case KindRequestForm:
		return "request_form"
	case KindPermissionDenied:
		return "permission_denied"
	case KindObjectNotFound:
		return "object_not_found"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindInvalidContact:
		return "invalid_contact"
	case KindUnclassifiedResponse:
		return "unclassified_response"
	default:
		return "unknown"
	}
}

// Error is the single concrete error type for all domain failures.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds a domain error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf builds a domain error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, unwrapping as needed.
// The second return is false when err is not a domain error.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a domain error of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}
