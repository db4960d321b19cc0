package refdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/trendlinehq/builder-api/internal/builder"
	"github.com/trendlinehq/builder-api/internal/models"
	"github.com/trendlinehq/builder-api/internal/services"
)

const refereeCacheTTL = time.Hour

// Store serves referee and player lookups. The referee list is small and
// read-heavy, so it is cached whole; players are searched in the database.
type Store struct {
	db    *gorm.DB
	cache *services.CacheService
}

func NewStore(db *gorm.DB, cache *services.CacheService) *Store {
	return &Store{db: db, cache: cache}
}

// Referees returns the full referee list ordered by game count.
func (s *Store) Referees(ctx context.Context) ([]models.Referee, error) {
	key := services.RefereeListCacheKey()

	var cached []models.Referee
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	var referees []models.Referee
	if err := s.db.WithContext(ctx).Order("game_count DESC, name ASC").Find(&referees).Error; err != nil {
		return nil, fmt.Errorf("failed to load referees: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetWithRetry(ctx, key, referees, refereeCacheTTL, 3); err != nil {
			logrus.Warnf("Failed to cache referee list: %v", err)
		}
	}

	return referees, nil
}

type refereeSource []models.Referee

func (s refereeSource) String(i int) string { return s[i].Name }
func (s refereeSource) Len() int            { return len(s) }

// SearchReferees fuzzy-matches referees by name against the cached list.
func (s *Store) SearchReferees(ctx context.Context, query string, limit int) ([]models.Referee, error) {
	referees, err := s.Referees(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		if limit > 0 && len(referees) > limit {
			referees = referees[:limit]
		}
		return referees, nil
	}

	matches := fuzzy.FindFrom(query, refereeSource(referees))
	results := make([]models.Referee, 0, len(matches))
	for _, m := range matches {
		results = append(results, referees[m.Index])
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// RefereeByName does an exact case-insensitive lookup.
func (s *Store) RefereeByName(ctx context.Context, name string) (*models.Referee, error) {
	referees, err := s.Referees(ctx)
	if err != nil {
		return nil, err
	}
	for i := range referees {
		if strings.EqualFold(referees[i].Name, name) {
			return &referees[i], nil
		}
	}
	return nil, nil
}

// SearchPlayers finds active players by name prefix or substring, optionally
// narrowed to one position.
func (s *Store) SearchPlayers(ctx context.Context, query, position string, limit int) ([]models.Player, error) {
	if limit <= 0 || limit > 50 {
		limit = 15
	}

	q := s.db.WithContext(ctx).Where("active = ?", true)
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if position != "" && position != "any" {
		q = q.Where("position = ?", position)
	}

	var players []models.Player
	if err := q.Order("name ASC").Limit(limit).Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	return players, nil
}

// Resolve upgrades every placeholder reference in a decoded state against the
// team table and referee list. Unknown references stay unresolved; a shared
// link is never rejected for naming something we no longer know.
func (s *Store) Resolve(ctx context.Context, state *builder.FilterState) {
	ResolveTeamRef(state.VersusTeam)
	ResolveTeamRef(state.PropVersusTeam)

	if state.Referee != nil && !state.Referee.Resolved {
		ref, err := s.RefereeByName(ctx, state.Referee.Name)
		if err != nil {
			logrus.Warnf("Referee resolve failed for %q: %v", state.Referee.Name, err)
			return
		}
		if ref != nil {
			state.Referee.Name = ref.Name
			state.Referee.GameCount = ref.GameCount
			state.Referee.Resolved = true
		}
	}
}
