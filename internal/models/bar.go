package models

// Bar: point of sale inside one event, keyed by its code.
type Bar struct {
	Code        string  `gorm:"column:bcode;primaryKey;size:50" json:"bcode"`
	EventID     uint    `gorm:"column:eid;not null;index" json:"eid"`
	Event       *Event  `gorm:"foreignKey:EventID;references:ID" json:"-"`
	UserID      uint    `gorm:"column:uid;not null;index" json:"uid"`
	User        *User   `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Description *string `gorm:"column:description;size:255" json:"desc"`
}

func (Bar) TableName() string { return "bar" }
