// Package store is the persistence layer. Every method takes the request
// context and maps constraint failures onto ledger error kinds.
package store

import (
	"errors"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the handle for collaborators that write alongside the store,
// such as the audit log.
func (s *Store) DB() *gorm.DB { return s.db }

// translate maps gorm's translated driver errors onto ledger kinds. what
// names the entity for not-found messages; Unknown errors pass through.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ledger.Wrap(ledger.KindNotFound, what+" not found", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ledger.Wrap(ledger.KindReferenceViolation, what+" has a missing or dependent reference", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ledger.Wrap(ledger.KindConflict, what+" already exists", err)
	}
	return err
}

// translateWrite is translate for inserts, where a foreign key failure means
// the request named a record that does not exist.
func translateWrite(err error, what, refs string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ledger.Wrap(ledger.KindReferenceViolation, "invalid "+refs+" reference", err)
	}
	return translate(err, what)
}

// affected turns a zero-row update or delete into NotFound.
func affected(res *gorm.DB, what string) error {
	if res.Error != nil {
		return translate(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return ledger.NotFound("%s not found", what)
	}
	return nil
}
