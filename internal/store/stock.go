package store

import (
	"context"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockView is a stock row joined with its product name.
type StockView struct {
	BarCode          string    `gorm:"column:bcode"`
	ProductID        uint      `gorm:"column:pid"`
	ProductName      string    `gorm:"column:pname"`
	Date             time.Time `gorm:"column:sdate"`
	StartQuantity    int64     `gorm:"column:start_quantity"`
	StartSubquantity *float64  `gorm:"column:start_subquantity"`
	EndQuantity      int64     `gorm:"column:end_quantity"`
	EndSubquantity   *float64  `gorm:"column:end_subquantity"`
	Description      *string   `gorm:"column:description"`
}

func (v StockView) LedgerRow() ledger.StockRow {
	start, end := v.StartQuantity, v.EndQuantity
	return ledger.StockRow{
		BarCode:          v.BarCode,
		ProductID:        v.ProductID,
		ProductName:      v.ProductName,
		Date:             v.Date,
		StartQuantity:    &start,
		StartSubquantity: v.StartSubquantity,
		EndQuantity:      &end,
		EndSubquantity:   v.EndSubquantity,
	}
}

var upsertColumns = []string{"start_quantity", "start_subquantity", "end_quantity", "end_subquantity", "description"}

func (s *Store) stockQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("stock AS s").
		Select("s.bcode, s.pid, p.pname, s.sdate, s.start_quantity, s.start_subquantity, s.end_quantity, s.end_subquantity, s.description").
		Joins("JOIN product p ON p.pid = s.pid").
		Order("s.sdate ASC, s.bcode ASC, s.pid ASC")
}

func (s *Store) ListStock(ctx context.Context) ([]StockView, error) {
	var rows []StockView
	err := s.stockQuery(ctx).Scan(&rows).Error
	return rows, translate(err, "stock")
}

// StockByBar lists one bar's rows, optionally for a single date.
func (s *Store) StockByBar(ctx context.Context, barCode string, date *time.Time) ([]StockView, error) {
	q := s.stockQuery(ctx).Where("s.bcode = ?", barCode)
	if date != nil {
		q = q.Where("s.sdate = ?", ledger.Day(*date))
	}
	var rows []StockView
	err := q.Scan(&rows).Error
	return rows, translate(err, "stock")
}

// StockByEvent lists the rows of every bar belonging to the event, ordered by
// date, bar and product.
func (s *Store) StockByEvent(ctx context.Context, eventID uint, date *time.Time) ([]StockView, error) {
	q := s.stockQuery(ctx).
		Joins("JOIN bar b ON b.bcode = s.bcode").
		Where("b.eid = ?", eventID)
	if date != nil {
		q = q.Where("s.sdate = ?", ledger.Day(*date))
	}
	var rows []StockView
	err := q.Scan(&rows).Error
	return rows, translate(err, "stock")
}

func (s *Store) GetStock(ctx context.Context, barCode string, productID uint, date time.Time) (*models.StockEntry, error) {
	var e models.StockEntry
	err := s.db.WithContext(ctx).
		Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, ledger.Day(date)).
		First(&e).Error
	if err != nil {
		return nil, translate(err, "stock entry")
	}
	return &e, nil
}

// CreateStock inserts a new row. An existing key is a Conflict.
func (s *Store) CreateStock(ctx context.Context, e *models.StockEntry) error {
	e.Date = ledger.Day(e.Date)
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
	return translateWrite(err, "stock entry", "bar or product")
}

// PatchStock updates the given columns and returns the row before and after
// the change.
func (s *Store) PatchStock(ctx context.Context, barCode string, productID uint, date time.Time, fields map[string]any) (before, after *models.StockEntry, err error) {
	day := ledger.Day(date)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev models.StockEntry
		q := tx.Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, day)
		if err := lockForUpdate(q).First(&prev).Error; err != nil {
			return translate(err, "stock entry")
		}
		res := tx.Model(&models.StockEntry{}).
			Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, day).
			Updates(fields)
		if err := affected(res, "stock entry"); err != nil {
			return err
		}
		var cur models.StockEntry
		if err := tx.Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, day).First(&cur).Error; err != nil {
			return translate(err, "stock entry")
		}
		before, after = &prev, &cur
		return nil
	})
	return before, after, err
}

// DeleteStock removes the row and returns what was deleted.
func (s *Store) DeleteStock(ctx context.Context, barCode string, productID uint, date time.Time) (*models.StockEntry, error) {
	var deleted *models.StockEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.StockEntry
		where := tx.Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, ledger.Day(date))
		if err := lockForUpdate(where).First(&cur).Error; err != nil {
			return translate(err, "stock entry")
		}
		res := tx.Where("bcode = ? AND pid = ? AND sdate = ?", barCode, productID, ledger.Day(date)).Delete(&models.StockEntry{})
		if err := affected(res, "stock entry"); err != nil {
			return err
		}
		deleted = &cur
		return nil
	})
	return deleted, err
}

// BulkUpsertStock applies every write in one transaction: insert when the
// (bar, date, product) key is absent, overwrite quantities and description
// when present. Any failure rolls back the whole batch.
//
// Created is decided by a locked existence read before the write. Two
// batches inserting the same absent key at once may both report created;
// the stored values are still consistent.
func (s *Store) BulkUpsertStock(ctx context.Context, writes []ledger.StockWrite) ([]ledger.WriteResult, error) {
	results := make([]ledger.WriteResult, 0, len(writes))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			date := ledger.Day(w.Date)

			var existing []string
			q := tx.Model(&models.StockEntry{}).
				Where("bcode = ? AND sdate = ? AND pid = ?", w.BarCode, date, w.ProductID).
				Limit(1)
			if err := lockForUpdate(q).Pluck("bcode", &existing).Error; err != nil {
				return err
			}

			startSub, endSub := w.StartSubquantity, w.EndSubquantity
			entry := models.StockEntry{
				BarCode:          w.BarCode,
				Date:             date,
				ProductID:        w.ProductID,
				StartQuantity:    w.StartQuantity,
				StartSubquantity: &startSub,
				EndQuantity:      w.EndQuantity,
				EndSubquantity:   &endSub,
				Description:      w.Description,
			}
			err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "bcode"}, {Name: "sdate"}, {Name: "pid"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns),
			}).Create(&entry).Error
			if err != nil {
				return err
			}

			w.Date = date
			results = append(results, ledger.WriteResult{StockWrite: w, Created: len(existing) == 0})
		}
		return nil
	})
	if err != nil {
		return nil, translateWrite(err, "stock entry", "bar or product")
	}
	return results, nil
}

// lockForUpdate adds FOR UPDATE on dialects that support row locks.
func lockForUpdate(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "postgres" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}
