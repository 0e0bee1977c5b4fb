package uniprot

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureKind classifies why a request produced no usable response.
type FailureKind int

const (
	// KindHTTPStatus is a non-2xx answer from the upstream.
	KindHTTPStatus FailureKind = iota + 1
	// KindTransport covers connection faults, timeouts and cancellation.
	KindTransport
	// KindDecode means the body was not valid JSON.
	KindDecode
	// KindShape means the JSON was valid but lacked an expected field.
	KindShape
)

func (k FailureKind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// Failure is the classified reason behind an absent response.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Body       string
	Err        error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("%s: upstream returned %d", f.Kind, f.StatusCode)
	default:
		if f.Err != nil {
			return fmt.Sprintf("%s: %v", f.Kind, f.Err)
		}
		return f.Kind.String()
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Retryable reports whether the same request could plausibly succeed later.
// The client never acts on it.
func (f *Failure) Retryable() bool {
	switch f.Kind {
	case KindTransport:
		return true
	case KindHTTPStatus:
		return f.StatusCode >= http.StatusInternalServerError ||
			f.StatusCode == http.StatusTooManyRequests ||
			f.StatusCode == http.StatusRequestTimeout
	default:
		return false
	}
}

// ShapeFailure builds a KindShape failure for a response missing field.
func ShapeFailure(field string) *Failure {
	return &Failure{
		Kind: KindShape,
		Err:  fmt.Errorf("response has no %q field", field),
	}
}

// Result is either a complete payload or a Failure, never both.
type Result struct {
	// Data holds the decoded JSON value when the body was decoded.
	Data any
	// Text holds the raw body for text requests or the JSON fallback.
	Text string
	// IsText tells which of Data and Text carries the payload.
	IsText bool

	Failure *Failure
}

// OK reports whether the result carries a payload.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Absent reports whether no successful response was obtained.
func (r Result) Absent() bool {
	return r.Failure != nil
}

// Err returns the failure as an error, or nil.
func (r Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}

func failed(f *Failure) Result {
	return Result{Failure: f}
}

// AsFailure extracts a *Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Policy decides what tool functions do with a Failure.
type Policy string

const (
	// PolicyDowngrade logs the failure and answers with an error mapping or an empty list.
	PolicyDowngrade Policy = "downgrade"
	// PolicySurface hands the classified failure back to the caller as an error.
	PolicySurface Policy = "surface"
)

// ParsePolicy maps a configuration string to a Policy. Empty means downgrade.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyDowngrade:
		return PolicyDowngrade, nil
	case PolicySurface:
		return PolicySurface, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", s)
	}
}
