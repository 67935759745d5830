package models

import "time"

// Event: multi-day event. Day is always derived from the dates.
type Event struct {
	ID          uint      `gorm:"column:eid;primaryKey" json:"eid"`
	Name        string    `gorm:"column:ename;size:100;not null" json:"ename"`
	StartDate   time.Time `gorm:"column:edate_start;type:date;not null" json:"edate_start"`
	EndDate     time.Time `gorm:"column:edate_end;type:date;not null" json:"edate_end"`
	Day         int       `gorm:"column:day;not null" json:"day"`
	Location    *string   `gorm:"column:location;size:255" json:"location"`
	Description *string   `gorm:"column:description;size:255" json:"desc"`
}

func (Event) TableName() string { return "event" }
