package models

import "time"

// Referee is one row of the league referee list. Referees carry no external
// numeric id; the name is the lookup key throughout.
type Referee struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"referee_name"`
	GameCount int       `gorm:"default:0" json:"game_count"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Referee) TableName() string {
	return "referees"
}
