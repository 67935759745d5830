package models

import "time"

// LostEntry: lost or broken stock. Not part of the reconciliation.
type LostEntry struct {
	BarCode     string    `gorm:"column:bcode;primaryKey;size:50" json:"bcode"`
	Date        time.Time `gorm:"column:sdate;primaryKey;type:date" json:"sdate"`
	ProductID   uint      `gorm:"column:pid;primaryKey;autoIncrement:false" json:"pid"`
	Category    string    `gorm:"column:category;size:50;not null" json:"category"`
	Receiver    *string   `gorm:"column:receiver;size:100" json:"receiver"`
	Quantity    int64     `gorm:"column:quantity;not null" json:"quantity"`
	Subquantity *float64  `gorm:"column:subquantity" json:"subquantity"`
	Description *string   `gorm:"column:description;size:255" json:"desc"`

	Bar     *Bar     `gorm:"foreignKey:BarCode;references:Code;constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"-"`
}

func (LostEntry) TableName() string { return "lost" }
