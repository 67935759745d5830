package store

import (
	"context"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LostView struct {
	BarCode     string    `gorm:"column:bcode"`
	ProductID   uint      `gorm:"column:pid"`
	ProductName string    `gorm:"column:pname"`
	Date        time.Time `gorm:"column:sdate"`
	Category    string    `gorm:"column:category"`
	Receiver    *string   `gorm:"column:receiver"`
	Quantity    int64     `gorm:"column:quantity"`
	Subquantity *float64  `gorm:"column:subquantity"`
	Description *string   `gorm:"column:description"`
}

func (s *Store) lostQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("lost AS l").
		Select("l.bcode, l.pid, p.pname, l.sdate, l.category, l.receiver, l.quantity, l.subquantity, l.description").
		Joins("JOIN product p ON p.pid = l.pid").
		Order("l.sdate ASC, l.bcode ASC, l.pid ASC")
}

func (s *Store) ListLost(ctx context.Context) ([]LostView, error) {
	var rows []LostView
	err := s.lostQuery(ctx).Scan(&rows).Error
	return rows, translate(err, "lost entry")
}

func (s *Store) LostByBar(ctx context.Context, barCode string, date *time.Time) ([]LostView, error) {
	q := s.lostQuery(ctx).Where("l.bcode = ?", barCode)
	if date != nil {
		q = q.Where("l.sdate = ?", ledger.Day(*date))
	}
	var rows []LostView
	err := q.Scan(&rows).Error
	return rows, translate(err, "lost entry")
}

func (s *Store) LostByEvent(ctx context.Context, eventID uint) ([]LostView, error) {
	var rows []LostView
	err := s.lostQuery(ctx).
		Joins("JOIN bar b ON b.bcode = l.bcode").
		Where("b.eid = ?", eventID).
		Scan(&rows).Error
	return rows, translate(err, "lost entry")
}

func (s *Store) CreateLost(ctx context.Context, e *models.LostEntry) error {
	e.Date = ledger.Day(e.Date)
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
	return translateWrite(err, "lost entry", "bar or product")
}

func (s *Store) PatchLost(ctx context.Context, barCode string, productID uint, date time.Time, fields map[string]any) (*models.LostEntry, error) {
	day := ledger.Day(date)
	res := s.db.WithContext(ctx).Model(&models.LostEntry{}).
		Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, day).
		Updates(fields)
	if err := affected(res, "lost entry"); err != nil {
		return nil, err
	}
	var e models.LostEntry
	if err := s.db.WithContext(ctx).Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, day).First(&e).Error; err != nil {
		return nil, translate(err, "lost entry")
	}
	return &e, nil
}

func (s *Store) DeleteLost(ctx context.Context, barCode string, productID uint, date time.Time) error {
	res := s.db.WithContext(ctx).
		Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, ledger.Day(date)).
		Delete(&models.LostEntry{})
	return affected(res, "lost entry")
}
