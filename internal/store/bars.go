package store

import (
	"context"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"

	"gorm.io/gorm/clause"
)

func (s *Store) ListBars(ctx context.Context) ([]models.Bar, error) {
	var bars []models.Bar
	err := s.db.WithContext(ctx).Order("bcode").Find(&bars).Error
	return bars, translate(err, "bar")
}

func (s *Store) BarsByEvent(ctx context.Context, eventID uint) ([]models.Bar, error) {
	var bars []models.Bar
	err := s.db.WithContext(ctx).Where("eid = ?", eventID).Order("bcode").Find(&bars).Error
	return bars, translate(err, "bar")
}

// BarRefsByEvent is BarsByEvent in the shape the report engine consumes.
func (s *Store) BarRefsByEvent(ctx context.Context, eventID uint) ([]ledger.BarRef, error) {
	bars, err := s.BarsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	refs := make([]ledger.BarRef, 0, len(bars))
	for _, b := range bars {
		refs = append(refs, ledger.BarRef{Code: b.Code, EventID: b.EventID})
	}
	return refs, nil
}

func (s *Store) GetBar(ctx context.Context, code string) (*models.Bar, error) {
	var bar models.Bar
	if err := s.db.WithContext(ctx).First(&bar, "bcode = ?", code).Error; err != nil {
		return nil, translate(err, "bar")
	}
	return &bar, nil
}

func (s *Store) CreateBar(ctx context.Context, bar *models.Bar) error {
	return translateWrite(s.db.WithContext(ctx).Omit(clause.Associations).Create(bar).Error, "bar", "event or user")
}

func (s *Store) UpdateBar(ctx context.Context, code string, fields map[string]any) (*models.Bar, error) {
	res := s.db.WithContext(ctx).Model(&models.Bar{}).Where("bcode = ?", code).Updates(fields)
	if err := affected(res, "bar"); err != nil {
		return nil, err
	}
	if newCode, ok := fields["bcode"].(string); ok {
		code = newCode
	}
	return s.GetBar(ctx, code)
}

func (s *Store) DeleteBar(ctx context.Context, code string) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Bar{}, "bcode = ?", code), "bar")
}
