package models

import (
	"time"
)

type Preset struct {
	ID      string    `json:"id" gorm:"primaryKey;type:text"`
	Options string    `json:"options" gorm:"type:jsonb;not null;default:'{}'"`
	CDate   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate   time.Time `json:"mdate" gorm:"autoUpdateTime"`
}
