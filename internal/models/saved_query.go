package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedQuery is a persisted build: the owner, display metadata, and the
// filter config document produced by builder.Serialize. The per-user name
// uniqueness only covers active rows, so a deleted build's name can be reused.
type SavedQuery struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"not null;uniqueIndex:idx_saved_queries_user_name" json:"user_id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex:idx_saved_queries_user_name,where:is_active" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Sport       string         `gorm:"size:20;default:nfl" json:"sport"`
	BuildType   string         `gorm:"size:20;not null;index" json:"build_type"` // trend, team, referee, prop
	Config      datatypes.JSON `gorm:"not null" json:"config"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsPublic    bool           `gorm:"default:false" json:"is_public"`

	// Denormalized result of the most recent run, shown in list views.
	LastResultSummary string     `gorm:"type:text" json:"last_result_summary,omitempty"`
	RunCount          int        `gorm:"default:0" json:"run_count"`
	LastRunAt         *time.Time `json:"last_run_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SavedQuery) TableName() string {
	return "saved_queries"
}

func (q *SavedQuery) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
