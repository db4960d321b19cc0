package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/trendlinehq/builder-api/internal/builder"
	"github.com/trendlinehq/builder-api/internal/refdata"
	"github.com/trendlinehq/builder-api/internal/services"
	"github.com/trendlinehq/builder-api/pkg/utils"
)

// QueryHandler turns a build into an engine request and proxies it. The
// engine's responses pass through untouched.
type QueryHandler struct {
	store  *refdata.Store
	engine *services.EngineClient
}

func NewQueryHandler(store *refdata.Store, engine *services.EngineClient) *QueryHandler {
	return &QueryHandler{
		store:  store,
		engine: engine,
	}
}

// RunQuery executes a build against historical games.
func (h *QueryHandler) RunQuery(c *gin.Context) {
	h.run(c, false, h.engine.Run)
}

// RunUpcoming matches a build against this week's slate.
func (h *QueryHandler) RunUpcoming(c *gin.Context) {
	h.run(c, false, h.engine.Upcoming)
}

// RunUpcomingProps matches a prop build against this week's player lines.
func (h *QueryHandler) RunUpcomingProps(c *gin.Context) {
	h.run(c, true, h.engine.UpcomingProps)
}

func (h *QueryHandler) run(c *gin.Context, propOnly bool, exec func(context.Context, interface{}) (json.RawMessage, error)) {
	var state builder.FilterState
	if err := c.ShouldBindJSON(&state); err != nil {
		utils.SendValidationError(c, "Invalid build state", err.Error())
		return
	}

	if propOnly && state.QueryType != builder.QueryProp {
		utils.SendValidationError(c, "This endpoint only accepts prop builds", string(state.QueryType))
		return
	}

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

	result, err := exec(c.Request.Context(), req)
	if err != nil {
		sendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, gin.H{
		"result":          result,
		"applied_filters": builder.AppliedFilters(state),
	})
}
