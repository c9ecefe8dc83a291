package reseller

import (
	"bytes"
	"errors"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Default sub-user settings applied by CreateSubUser when left zero
const (
	DefaultThreads     = 50
	DefaultStickyStart = 10000
	DefaultStickyEnd   = 20000
)

// StickyRange is the port range the reseller hands out for sticky sessions
type StickyRange struct {
	Start int `json:"start" validate:"min=1,max=65535"`
	End   int `json:"end" validate:"max=65535,gtfield=Start"`
}

// CreateSubUserParams describes a new sub-user on the reseller side
type CreateSubUserParams struct {
	Label       string      `json:"label" validate:"required,max=255"`
	AllowedIPs  []string    `json:"allowed_ips,omitempty" validate:"omitempty,dive,ip"`
	StickyRange StickyRange `json:"sticky_range"`
	Threads     int         `json:"threads" validate:"min=1"`
}

func (p *CreateSubUserParams) applyDefaults() {
	if p.Threads == 0 {
		p.Threads = DefaultThreads
	}
	if p.StickyRange == (StickyRange{}) {
		p.StickyRange = StickyRange{Start: DefaultStickyStart, End: DefaultStickyEnd}
	}
}

// UpdateSubUserParams holds the fields to change. Nil fields are not sent.
type UpdateSubUserParams struct {
	Label      *string   `json:"label,omitempty" validate:"omitempty,min=1,max=255"`
	Threads    *int      `json:"threads,omitempty" validate:"omitempty,min=1"`
	AllowedIPs *[]string `json:"allowed_ips,omitempty" validate:"omitempty,dive,ip"`
}

// Response is a decoded reseller answer. The API is loosely typed, so callers
// read individual fields through the accessors.
type Response struct {
	Data       any
	Raw        []byte
	StatusCode int
}

func decodeResponse(status int, body []byte) (*Response, error) {
	resp := &Response{StatusCode: status, Raw: body}
	if len(body) == 0 {
		return resp, nil
	}

	if !json.Valid(body) {
		return nil, errors.New("invalid JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	resp.Data = normalize(data)
	return resp, nil
}

// normalize turns JSON numbers into int64 when they are exact integers and
// float64 otherwise, so large ids are never rounded through a float.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// Fields returns the top-level object, or nil when the body is not an object
func (r *Response) Fields() map[string]any {
	if r == nil {
		return nil
	}
	m, _ := r.Data.(map[string]any)
	return m
}

// Items returns the top-level array, or the array under "items" or "data"
func (r *Response) Items() []any {
	if r == nil {
		return nil
	}
	if items, ok := r.Data.([]any); ok {
		return items
	}
	for _, key := range []string{"items", "data"} {
		if items, ok := r.Fields()[key].([]any); ok {
			return items
		}
	}
	return nil
}

// FindItem returns the first object in Items whose key holds the given string
func (r *Response) FindItem(key, value string) *Response {
	for _, item := range r.Items() {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, _ := fields[key].(string); v == value {
			return &Response{StatusCode: r.StatusCode, Data: fields}
		}
	}
	return nil
}

// Int64 reads an integer field. Numeric strings are accepted; fractional
// and out of range values are not.
func (r *Response) Int64(key string) (int64, bool) {
	switch v := r.Fields()[key].(type) {
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// String reads a string field
func (r *Response) String(key string) (string, bool) {
	s, ok := r.Fields()[key].(string)
	return s, ok
}
