package httpx

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

// Patch is a JSON object body reduced to an allowlist of keys. It keeps the
// difference between an absent key and an explicit null.
type Patch map[string]json.RawMessage

func DecodePatch(body []byte, allowed ...string) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, ledger.InvalidInput("request body must be a JSON object")
	}
	p := make(Patch, len(allowed))
	for _, k := range allowed {
		if v, ok := raw[k]; ok {
			p[k] = v
		}
	}
	return p, nil
}

func (p Patch) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Patch) isNull(key string) bool {
	return bytes.Equal(bytes.TrimSpace(p[key]), []byte("null"))
}

func (p Patch) decode(key string, dst any) error {
	if err := json.Unmarshal(p[key], dst); err != nil {
		return ledger.InvalidInput("%s has the wrong type", key)
	}
	return nil
}

// String returns a trimmed, non-empty string.
func (p Patch) String(key string) (string, bool, error) {
	if !p.Has(key) {
		return "", false, nil
	}
	var s string
	if p.isNull(key) {
		return "", true, ledger.InvalidInput("%s must not be null", key)
	}
	if err := p.decode(key, &s); err != nil {
		return "", true, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true, ledger.InvalidInput("%s must not be empty", key)
	}
	return s, true, nil
}

// NullableString maps null and blank strings to nil.
func (p Patch) NullableString(key string) (*string, bool, error) {
	if !p.Has(key) {
		return nil, false, nil
	}
	if p.isNull(key) {
		return nil, true, nil
	}
	var s string
	if err := p.decode(key, &s); err != nil {
		return nil, true, err
	}
	if s = strings.TrimSpace(s); s == "" {
		return nil, true, nil
	}
	return &s, true, nil
}

// Quantity returns a non-negative integer.
func (p Patch) Quantity(key string) (int64, bool, error) {
	if !p.Has(key) {
		return 0, false, nil
	}
	if p.isNull(key) {
		return 0, true, ledger.InvalidInput("%s must not be null", key)
	}
	var n int64
	if err := p.decode(key, &n); err != nil {
		return 0, true, ledger.InvalidInput("%s must be an integer", key)
	}
	if n < 0 {
		return 0, true, ledger.InvalidInput("%s must not be negative", key)
	}
	return n, true, nil
}

// NullableQuantity is Quantity that also accepts null.
func (p Patch) NullableQuantity(key string) (*int64, bool, error) {
	if p.Has(key) && p.isNull(key) {
		return nil, true, nil
	}
	n, ok, err := p.Quantity(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &n, true, nil
}

// NullableAmount returns a non-negative number or nil for null.
func (p Patch) NullableAmount(key string) (*float64, bool, error) {
	if !p.Has(key) {
		return nil, false, nil
	}
	if p.isNull(key) {
		return nil, true, nil
	}
	var f float64
	if err := p.decode(key, &f); err != nil {
		return nil, true, ledger.InvalidInput("%s must be a number", key)
	}
	if f < 0 {
		return nil, true, ledger.InvalidInput("%s must not be negative", key)
	}
	return &f, true, nil
}

// Amount is NullableAmount without null.
func (p Patch) Amount(key string) (float64, bool, error) {
	if p.Has(key) && p.isNull(key) {
		return 0, true, ledger.InvalidInput("%s must not be null", key)
	}
	f, ok, err := p.NullableAmount(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	return *f, true, nil
}

// ID returns a positive integer identifier.
func (p Patch) ID(key string) (uint, bool, error) {
	n, ok, err := p.Quantity(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if n == 0 || n > int64(^uint32(0)) {
		return 0, true, ledger.InvalidInput("%s must be a positive integer", key)
	}
	return uint(n), true, nil
}

// Date returns a calendar date at UTC midnight.
func (p Patch) Date(key string) (time.Time, bool, error) {
	d, ok, err := p.NullableDate(key)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}
	if d == nil {
		return time.Time{}, true, ledger.InvalidInput("%s must not be null", key)
	}
	return *d, true, nil
}

func (p Patch) NullableDate(key string) (*time.Time, bool, error) {
	if !p.Has(key) {
		return nil, false, nil
	}
	if p.isNull(key) {
		return nil, true, nil
	}
	var s string
	if err := p.decode(key, &s); err != nil {
		return nil, true, err
	}
	d, err := ledger.ParseDate(s)
	if err != nil {
		return nil, true, ledger.InvalidInput("%s must be a date in YYYY-MM-DD form", key)
	}
	return &d, true, nil
}
