package api

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

// Response is the outcome of one remote operation: exactly one of Result
// and Fault is set. Faults are never returned as errors; callers decide what
// a fault means for them.
type Response struct {
	Operation  string
	StatusCode int
	Result     *Result
	Fault      *Fault
}

// Result is the first element of a successful response body.
type Result struct {
	Name string
	// Raw holds the element as a standalone XML document.
	Raw []byte
	// Value is the text of the single scalar result element, if there is one.
	Value string
}

// Fault is a SOAP 1.1 fault reported by the service.
type Fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Actor   string `json:"actor,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func (r *Response) IsFault() bool {
	return r.Fault != nil
}

// Decode unmarshals the result payload into v.
func (r *Response) Decode(v any) error {
	if r.Fault != nil {
		return errors.Errorf("ipay: %s returned fault %s: %s", r.Operation, r.Fault.Code, r.Fault.Message)
	}
	if r.Result == nil || len(r.Result.Raw) == 0 {
		return errors.Errorf("ipay: %s returned an empty body", r.Operation)
	}
	return errors.Wrapf(xml.Unmarshal(r.Result.Raw, v), "ipay: decode %s result", r.Operation)
}
