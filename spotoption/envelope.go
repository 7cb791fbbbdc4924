package spotoption

import (
	"sort"

	"github.com/healthimation/go-glitch/glitch"
)

const (
	fieldConnectionStatus = "connection_status"
	fieldOperationStatus  = "operation_status"
	fieldErrors           = "errors"

	// StatusSuccessful is the value the vendor reports in connection_status and
	// operation_status when a call went through.
	StatusSuccessful = "successful"
)

// Envelope carries the vendor's own status area. SpotOption reports failures
// inside the response body, so callers check it rather than the HTTP status.
type Envelope struct {
	connectionStatus *string
	operationStatus  *string
	errors           []string
}

// ConnectionStatus returns the vendor connection_status, if reported.
func (e Envelope) ConnectionStatus() (string, bool) {
	return deref(e.connectionStatus)
}

// OperationStatus returns the vendor operation_status, if reported.
func (e Envelope) OperationStatus() (string, bool) {
	return deref(e.operationStatus)
}

// Succeeded reports whether the vendor marked the operation successful.
func (e Envelope) Succeeded() bool {
	s, ok := e.OperationStatus()
	return ok && s == StatusSuccessful
}

// VendorErrors returns the error identifiers listed by the vendor.
func (e Envelope) VendorErrors() []string {
	out := make([]string, len(e.errors))
	copy(out, e.errors)
	return out
}

// envelopeFields is embedded by every response and exposes its Envelope read-only.
type envelopeFields struct {
	env Envelope
}

// Envelope returns a copy of the vendor status area.
func (f envelopeFields) Envelope() Envelope {
	return Envelope{
		connectionStatus: cloneString(f.env.connectionStatus),
		operationStatus:  cloneString(f.env.operationStatus),
		errors:           f.env.VendorErrors(),
	}
}

func (f envelopeFields) ConnectionStatus() (string, bool) { return f.env.ConnectionStatus() }

func (f envelopeFields) OperationStatus() (string, bool) { return f.env.OperationStatus() }

func (f envelopeFields) Succeeded() bool { return f.env.Succeeded() }

func (f envelopeFields) VendorErrors() []string { return f.env.VendorErrors() }

func decodeEnvelope(p *Payload) (Envelope, glitch.DataError) {
	var (
		env Envelope
		err glitch.DataError
	)
	if env.connectionStatus, err = p.OptionalString(fieldConnectionStatus); err != nil {
		return Envelope{}, err
	}
	if env.operationStatus, err = p.OptionalString(fieldOperationStatus); err != nil {
		return Envelope{}, err
	}
	if raw, ok := p.lookup(fieldErrors); ok {
		env.errors = flattenStrings(raw)
	}
	return env, nil
}

// flattenStrings collects every scalar under v. The vendor nests error
// identifiers as <errors><error>..</error></errors> in XML and as plain lists in JSON.
func flattenStrings(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		var out []string
		for _, item := range t {
			out = append(out, flattenStrings(item)...)
		}
		return out
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return itemLess(keys[i], keys[j]) })

		var out []string
		for _, k := range keys {
			out = append(out, flattenStrings(t[k])...)
		}
		return out
	}
	if s, ok := toString(v); ok && s != "" {
		return []string{s}
	}
	return nil
}

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}
