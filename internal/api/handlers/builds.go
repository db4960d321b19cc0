package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/trendlinehq/builder-api/internal/api/middleware"
	"github.com/trendlinehq/builder-api/internal/builder"
	"github.com/trendlinehq/builder-api/internal/models"
	"github.com/trendlinehq/builder-api/internal/refdata"
	"github.com/trendlinehq/builder-api/internal/services"
	"github.com/trendlinehq/builder-api/pkg/utils"
)

// BuildsHandler owns saved build CRUD and execution.
type BuildsHandler struct {
	db     *gorm.DB
	store  *refdata.Store
	engine *services.EngineClient
}

func NewBuildsHandler(db *gorm.DB, store *refdata.Store, engine *services.EngineClient) *BuildsHandler {
	return &BuildsHandler{
		db:     db,
		store:  store,
		engine: engine,
	}
}

type saveBuildRequest struct {
	Name        string              `json:"name" binding:"required,max=100"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	IsPublic    bool                `json:"is_public"`
	State       builder.FilterState `json:"state" binding:"required"`
}

// buildView is the list/detail shape: the stored row plus the decoded state
// and its display chips.
type buildView struct {
	models.SavedQuery
	State          builder.FilterState `json:"state"`
	AppliedFilters []string            `json:"applied_filters"`
}

func (h *BuildsHandler) view(q models.SavedQuery) buildView {
	var cfg builder.SavedConfig
	if err := json.Unmarshal(q.Config, &cfg); err != nil {
		logrus.Warnf("Corrupt config on saved build %s: %v", q.ID, err)
	}
	state := builder.Deserialize(cfg)
	return buildView{
		SavedQuery:     q,
		State:          state,
		AppliedFilters: builder.AppliedFilters(state),
	}
}

// ListBuilds returns the caller's saved builds, newest first.
func (h *BuildsHandler) ListBuilds(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		utils.SendUnauthorized(c, "Authentication required")
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND is_active = ?", userID, true)
	if bt := c.Query("build_type"); bt != "" {
		q = q.Where("build_type = ?", bt)
	}

	var builds []models.SavedQuery
	if err := q.Order("updated_at DESC").Find(&builds).Error; err != nil {
		utils.SendInternalError(c, "Failed to load saved builds")
		return
	}

	views := make([]buildView, 0, len(builds))
	for _, b := range builds {
		views = append(views, h.view(b))
	}
	utils.SendSuccess(c, gin.H{"builds": views})
}

// CreateBuild saves a new build. Names are unique per user; a duplicate name
// returns a conflict rather than silently overwriting.
func (h *BuildsHandler) CreateBuild(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		utils.SendUnauthorized(c, "Authentication required")
		return
	}

	var req saveBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid build", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.SavedQuery{}).
		Where("user_id = ? AND name = ? AND is_active = ?", userID, req.Name, true).
		Count(&count)
	if count > 0 {
		utils.SendConflict(c, "A build with this name already exists")
		return
	}

	config, err := json.Marshal(builder.Serialize(req.State))
	if err != nil {
		utils.SendInternalError(c, "Failed to serialize build")
		return
	}

	build := models.SavedQuery{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Sport:       "nfl",
		BuildType:   string(req.State.QueryType),
		Config:      config,
		Tags:        pq.StringArray(req.Tags),
		IsActive:    true,
		IsPublic:    req.IsPublic,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&build).Error; err != nil {
		// The unique index backstops the pre-check under concurrent creates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendConflict(c, "A build with this name already exists")
			return
		}
		utils.SendInternalError(c, "Failed to save build")
		return
	}

	utils.SendSuccess(c, h.view(build))
}

// GetBuild returns one build. Public builds are readable by anyone; private
// builds only by their owner.
func (h *BuildsHandler) GetBuild(c *gin.Context) {
	build, ok := h.fetch(c, false)
	if !ok {
		return
	}
	utils.SendSuccess(c, h.view(*build))
}

// UpdateBuild replaces the metadata and state of an owned build.
func (h *BuildsHandler) UpdateBuild(c *gin.Context) {
	build, ok := h.fetch(c, true)
	if !ok {
		return
	}

	var req saveBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid build", err.Error())
		return
	}

	if req.Name != build.Name {
		var count int64
		h.db.Model(&models.SavedQuery{}).
			Where("user_id = ? AND name = ? AND id <> ? AND is_active = ?", build.UserID, req.Name, build.ID, true).
			Count(&count)
		if count > 0 {
			utils.SendConflict(c, "A build with this name already exists")
			return
		}
	}

	config, err := json.Marshal(builder.Serialize(req.State))
	if err != nil {
		utils.SendInternalError(c, "Failed to serialize build")
		return
	}

	build.Name = req.Name
	build.Description = req.Description
	build.Tags = pq.StringArray(req.Tags)
	build.IsPublic = req.IsPublic
	build.BuildType = string(req.State.QueryType)
	build.Config = config

	if err := h.db.WithContext(c.Request.Context()).Save(build).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendConflict(c, "A build with this name already exists")
			return
		}
		utils.SendInternalError(c, "Failed to update build")
		return
	}
	utils.SendSuccess(c, h.view(*build))
}

// DeleteBuild soft-deletes an owned build.
func (h *BuildsHandler) DeleteBuild(c *gin.Context) {
	build, ok := h.fetch(c, true)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(build).Update("is_active", false).Error; err != nil {
		utils.SendInternalError(c, "Failed to delete build")
		return
	}
	utils.SendSuccess(c, gin.H{"deleted": true})
}

// RunBuild executes a saved build against the query engine and records the
// run on the row.
func (h *BuildsHandler) RunBuild(c *gin.Context) {
	build, ok := h.fetch(c, false)
	if !ok {
		return
	}

	var cfg builder.SavedConfig
	if err := json.Unmarshal(build.Config, &cfg); err != nil {
		utils.SendInternalError(c, "Saved build config is corrupt")
		return
	}
	state := builder.Deserialize(cfg)
	h.store.Resolve(c.Request.Context(), &state)

	if errs := builder.Validate(state); len(errs) > 0 {
		utils.SendError(c, 400, utils.NewAppError(utils.ErrCodeValidation, "Build has invalid filters", errs[0].Error()))
		return
	}

	req, err := builder.BuildRequest(state)
	if err != nil {
		utils.SendValidationError(c, "Build cannot be executed", err.Error())
		return
	}

	result, err := h.engine.Run(c.Request.Context(), req)
	if err != nil {
		sendEngineError(c, err)
		return
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"run_count":           gorm.Expr("run_count + 1"),
		"last_run_at":         now,
		"last_result_summary": extractSummary(result),
	}
	if err := h.db.WithContext(c.Request.Context()).Model(build).Updates(updates).Error; err != nil {
		logrus.Warnf("Failed to record run on build %s: %v", build.ID, err)
	}

	utils.SendSuccess(c, gin.H{
		"result":          result,
		"applied_filters": builder.AppliedFilters(state),
	})
}

// fetch loads the build by id and enforces ownership. With ownerOnly false,
// public builds are visible to everyone.
func (h *BuildsHandler) fetch(c *gin.Context, ownerOnly bool) (*models.SavedQuery, bool) {
	userID, _ := middleware.GetUserID(c)

	var build models.SavedQuery
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND is_active = ?", c.Param("id"), true).
		First(&build).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendNotFound(c, "Build not found")
		return nil, false
	}
	if err != nil {
		utils.SendInternalError(c, "Failed to load build")
		return nil, false
	}

	if build.UserID != userID && (ownerOnly || !build.IsPublic) {
		utils.SendNotFound(c, "Build not found")
		return nil, false
	}
	return &build, true
}

func sendEngineError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrEngineUnavailable) {
		utils.SendServiceUnavailable(c, "Query engine is temporarily unavailable")
		return
	}
	utils.SendBadGateway(c, "Query engine request failed")
}

// extractSummary pulls the one-line summary out of an engine response when
// present. The response stays opaque otherwise.
func extractSummary(result json.RawMessage) string {
	var body struct {
		Summary string `json:"summary"`
		Data    struct {
			Summary string `json:"summary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(result, &body); err != nil {
		return ""
	}
	if body.Summary != "" {
		return body.Summary
	}
	return body.Data.Summary
}
