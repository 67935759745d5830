package httpx_test

import (
	"testing"

	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

func TestDecodePatchAllowlist(t *testing.T) {
	p, err := httpx.DecodePatch([]byte(`{"end_quantity": 4, "desc": null, "bcode": "X"}`), "end_quantity", "desc")
	if err != nil {
		t.Fatalf("DecodePatch: %v", err)
	}
	if p.Has("bcode") {
		t.Error("key outside the allowlist kept")
	}

	n, ok, err := p.Quantity("end_quantity")
	if err != nil || !ok || n != 4 {
		t.Errorf("Quantity = %d %v %v", n, ok, err)
	}
	desc, ok, err := p.NullableString("desc")
	if err != nil || !ok || desc != nil {
		t.Errorf("NullableString = %v %v %v", desc, ok, err)
	}
	if _, ok, _ := p.Quantity("start_quantity"); ok {
		t.Error("absent key reported present")
	}
}

func TestPatchRejectsBadValues(t *testing.T) {
	cases := []struct {
		body string
		get  func(httpx.Patch) error
	}{
		{`{"q": 1.5}`, func(p httpx.Patch) error { _, _, err := p.Quantity("q"); return err }},
		{`{"q": -1}`, func(p httpx.Patch) error { _, _, err := p.Quantity("q"); return err }},
		{`{"q": null}`, func(p httpx.Patch) error { _, _, err := p.Quantity("q"); return err }},
		{`{"q": "abc"}`, func(p httpx.Patch) error { _, _, err := p.NullableAmount("q"); return err }},
		{`{"q": "  "}`, func(p httpx.Patch) error { _, _, err := p.String("q"); return err }},
		{`{"q": 0}`, func(p httpx.Patch) error { _, _, err := p.ID("q"); return err }},
		{`{"q": "2024-13-01"}`, func(p httpx.Patch) error { _, _, err := p.Date("q"); return err }},
	}
	for _, tc := range cases {
		p, err := httpx.DecodePatch([]byte(tc.body), "q")
		if err != nil {
			t.Fatalf("DecodePatch(%s): %v", tc.body, err)
		}
		if err := tc.get(p); ledger.KindOf(err) != ledger.KindInvalidInput {
			t.Errorf("%s: err = %v, want invalid input", tc.body, err)
		}
	}
}

func TestDecodePatchRequiresObject(t *testing.T) {
	for _, body := range []string{``, `[]`, `null`, `{"a":`} {
		if _, err := httpx.DecodePatch([]byte(body), "a"); err == nil {
			t.Errorf("DecodePatch(%q) succeeded", body)
		}
	}
}
