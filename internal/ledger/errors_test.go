package ledger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

func TestErrorKinds(t *testing.T) {
	base := errors.New("pq: violates foreign key")
	err := fmt.Errorf("upsert: %w", ledger.Wrap(ledger.KindReferenceViolation, "unknown bar or product", base))

	if got := ledger.KindOf(err); got != ledger.KindReferenceViolation {
		t.Fatalf("KindOf = %v, want reference_violation", got)
	}
	if !errors.Is(err, ledger.ErrReferenceViolation) {
		t.Error("errors.Is(err, ErrReferenceViolation) = false")
	}
	if errors.Is(err, ledger.ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = true")
	}
	if !errors.Is(err, base) {
		t.Error("wrapped cause lost")
	}
	if ledger.KindOf(base) != ledger.KindInternal {
		t.Error("plain error should be internal")
	}
	if ledger.Wrap(ledger.KindConflict, "dup", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
