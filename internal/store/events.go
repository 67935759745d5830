package store

import (
	"context"

	"github.com/PanuLaosuwan/faststock-backend/internal/models"
)

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).Order("edate_start DESC, eid").Find(&events).Error
	return events, translate(err, "event")
}

func (s *Store) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var ev models.Event
	if err := s.db.WithContext(ctx).First(&ev, "eid = ?", id).Error; err != nil {
		return nil, translate(err, "event")
	}
	return &ev, nil
}

func (s *Store) CreateEvent(ctx context.Context, ev *models.Event) error {
	return translate(s.db.WithContext(ctx).Create(ev).Error, "event")
}

// UpdateEvent applies column updates and returns the stored row.
func (s *Store) UpdateEvent(ctx context.Context, id uint, fields map[string]any) (*models.Event, error) {
	res := s.db.WithContext(ctx).Model(&models.Event{}).Where("eid = ?", id).Updates(fields)
	if err := affected(res, "event"); err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, id)
}

func (s *Store) DeleteEvent(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Event{}, "eid = ?", id), "event")
}
