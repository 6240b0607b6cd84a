package generator

import (
	"fmt"
	"strings"
)

// Kind classifies why a remote generation produced no usable content. All
// kinds are recovered the same way by callers; the distinction exists for
// logging and tests.
type Kind string

const (
	// KindTransport covers request construction and network errors.
	KindTransport Kind = "transport"
	// KindStatus is a non-2xx HTTP status.
	KindStatus Kind = "status"
	// KindDecode is a body that is not JSON, violates the response contract or
	// carries no obituary markup.
	KindDecode Kind = "decode"
	// KindRejected is a well-formed reply whose success flag is false.
	KindRejected Kind = "rejected"
	// KindUnexpected wraps a panic recovered around the call.
	KindUnexpected Kind = "unexpected"
)

// Failure is the error returned by Client.Submit.
type Failure struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f == nil {
		return "generator: failure"
	}
	var b strings.Builder
	b.WriteString("generator: ")
	b.WriteString(string(f.Kind))
	if f.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", f.Status)
	}
	if f.Message != "" {
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	if f.Err != nil {
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

func failure(kind Kind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}
