package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/findyi/opensearch-go/internal/errors"
)

// StatusOK is the only status value treated as success.
const StatusOK = "OK"

// ErrNotObject is returned when a response payload is not a JSON object.
var ErrNotObject = fmt.Errorf("json body must be an object")

// Envelope is the uniform wrapper returned by every API call:
// {status, errors:{code,message}, result, request_id|RequestId}.
type Envelope struct {
	Status    string
	Errors    map[string]any
	RequestID string
	Data      any

	raw json.RawMessage
}

// ParseEnvelope decodes body and builds an Envelope from it. Numbers inside
// the payload are kept as json.Number.
func ParseEnvelope(body []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	env, err := NewEnvelope(payload)
	if err != nil {
		return nil, err
	}
	var fields struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &fields); err == nil {
		env.raw = fields.Result
	}
	return env, nil
}

// NewEnvelope builds an Envelope from an already decoded payload, which
// must be a JSON object.
func NewEnvelope(payload any) (*Envelope, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, payload)
	}

	env := &Envelope{
		Errors: errorsField(obj["errors"]),
		Data:   obj["result"],
	}
	if s, ok := obj["status"].(string); ok {
		env.Status = s
	}
	for _, key := range []string{"request_id", "RequestId"} {
		if v, ok := obj[key]; ok && v != nil {
			env.RequestID = stringify(v)
			break
		}
	}
	return env, nil
}

// IsSuccess reports whether the status is exactly "OK".
func (e *Envelope) IsSuccess() bool {
	return e.Status == StatusOK
}

// ErrorCode returns errors.code, or "" when absent.
func (e *Envelope) ErrorCode() string {
	return stringify(e.Errors["code"])
}

// ErrorMessage returns errors.message, or "" when absent.
func (e *Envelope) ErrorMessage() string {
	return stringify(e.Errors["message"])
}

// Err returns an APIError carrying the service code and message when the
// status is not OK.
func (e *Envelope) Err() error {
	if e.IsSuccess() {
		return nil
	}
	return &errors.APIError{
		Code:      e.ErrorCode(),
		Message:   e.ErrorMessage(),
		RequestID: e.RequestID,
	}
}

// Result returns the opaque result data, or the APIError from Err.
func (e *Envelope) Result() (any, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	return e.Data, nil
}

// DecodeResult unmarshals the result data into v.
func (e *Envelope) DecodeResult(v any) error {
	if err := e.Err(); err != nil {
		return err
	}
	raw := e.raw
	if raw == nil {
		b, err := json.Marshal(e.Data)
		if err != nil {
			return err
		}
		raw = b
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

func (e *Envelope) String() string {
	return fmt.Sprintf("status: %s errors: %v data: %v", e.Status, e.Errors, e.Data)
}

// errorsField accepts {code,message} or, as some endpoints send, a list of
// them; only the first entry of a list is kept.
func errorsField(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		if len(t) > 0 {
			if m, ok := t[0].(map[string]any); ok {
				return m
			}
		}
	}
	return map[string]any{}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
