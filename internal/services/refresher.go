package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trendlinehq/builder-api/internal/models"
)

// RefdataRefresher keeps the referee and player tables in sync with the
// upstream data service on a cron schedule. The builder only reads these
// tables; all writes happen here.
type RefdataRefresher struct {
	db         *gorm.DB
	cache      *CacheService
	logger     *logrus.Logger
	cron       *cron.Cron
	baseURL    string
	httpClient *http.Client
}

func NewRefdataRefresher(db *gorm.DB, cache *CacheService, baseURL string, logger *logrus.Logger) *RefdataRefresher {
	return &RefdataRefresher{
		db:         db,
		cache:      cache,
		logger:     logger,
		cron:       cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Start schedules the refresh jobs and kicks off an initial sync.
func (r *RefdataRefresher) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.refreshAll); err != nil {
		return fmt.Errorf("failed to schedule refdata refresh: %w", err)
	}
	r.cron.Start()

	go r.refreshAll()
	return nil
}

func (r *RefdataRefresher) Stop() {
	r.cron.Stop()
}

func (r *RefdataRefresher) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := r.refreshReferees(ctx); err != nil {
		r.logger.WithField("component", "refdata_refresher").Warnf("Referee refresh failed: %v", err)
	}
	if err := r.refreshPlayers(ctx); err != nil {
		r.logger.WithField("component", "refdata_refresher").Warnf("Player refresh failed: %v", err)
	}
}

func (r *RefdataRefresher) refreshReferees(ctx context.Context) error {
	var payload struct {
		Referees []models.Referee `json:"referees"`
	}
	if err := r.fetch(ctx, "/api/reference/referees", &payload); err != nil {
		return err
	}
	if len(payload.Referees) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"game_count", "updated_at"}),
	}).Create(&payload.Referees).Error
	if err != nil {
		return fmt.Errorf("failed to upsert referees: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, RefereeListCacheKey()); err != nil {
			r.logger.Warnf("Failed to invalidate referee cache: %v", err)
		}
	}

	r.logger.WithFields(logrus.Fields{
		"component": "refdata_refresher",
		"count":     len(payload.Referees),
	}).Info("Referee list refreshed")
	return nil
}

func (r *RefdataRefresher) refreshPlayers(ctx context.Context) error {
	var payload struct {
		Players []models.Player `json:"players"`
	}
	if err := r.fetch(ctx, "/api/reference/players?sport=nfl", &payload); err != nil {
		return err
	}
	if len(payload.Players) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "espn_player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "position", "team", "active", "updated_at"}),
	}).CreateInBatches(&payload.Players, 500).Error
	if err != nil {
		return fmt.Errorf("failed to upsert players: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"component": "refdata_refresher",
		"count":     len(payload.Players),
	}).Info("Player index refreshed")
	return nil
}

func (r *RefdataRefresher) fetch(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
