package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PanuLaosuwan/faststock-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityKey   string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(ctx context.Context, db *gorm.DB, opts LogOptions) error {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityKey:   opts.EntityKey,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  marshalOrNull(opts.Before),
		AfterData:   marshalOrNull(opts.After),
	}

	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Recorder writes audit entries. Write failures are logged, never returned.
type Recorder struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewRecorder(db *gorm.DB, log *logrus.Logger) *Recorder {
	return &Recorder{db: db, log: log}
}

func (r *Recorder) Record(ctx context.Context, opts LogOptions) {
	if err := WriteLog(ctx, r.db, opts); err != nil {
		r.log.WithFields(logrus.Fields{
			"entity_type": opts.EntityType,
			"entity_key":  opts.EntityKey,
			"action":      opts.Action,
		}).WithError(err).Error("audit log not written")
	}
}

func marshalOrNull(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
