package models

import "time"

// Player is the searchable player index for prop builds, keyed by the
// upstream provider's player id.
type Player struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	ESPNPlayerID int       `gorm:"uniqueIndex;not null" json:"espn_player_id"`
	Name         string    `gorm:"size:100;not null;index" json:"name"`
	Position     string    `gorm:"size:10;not null;index" json:"position"`
	Team         string    `gorm:"size:10" json:"team,omitempty"`
	Sport        string    `gorm:"size:20;default:nfl" json:"-"`
	Active       bool      `gorm:"default:true" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (Player) TableName() string {
	return "players"
}
