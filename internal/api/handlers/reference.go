package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trendlinehq/builder-api/internal/refdata"
	"github.com/trendlinehq/builder-api/pkg/utils"
)

// ReferenceHandler serves the team, referee and player lookups backing the
// builder's search boxes.
type ReferenceHandler struct {
	store *refdata.Store
}

func NewReferenceHandler(store *refdata.Store) *ReferenceHandler {
	return &ReferenceHandler{
		store: store,
	}
}

// ListTeams returns all 32 teams, or a fuzzy-matched subset when q is given.
func (h *ReferenceHandler) ListTeams(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		utils.SendSuccess(c, gin.H{"teams": refdata.SearchTeams(q)})
		return
	}
	utils.SendSuccess(c, gin.H{"teams": refdata.NFLTeams})
}

// ListReferees returns the referee list ordered by game count, optionally
// filtered by a fuzzy name query.
func (h *ReferenceHandler) ListReferees(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	referees, err := h.store.SearchReferees(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to load referees")
		return
	}
	utils.SendSuccess(c, gin.H{"referees": referees})
}

// SearchPlayers finds players by name, optionally narrowed to a position.
// Mirrors the builder's search box: short queries without a position return
// nothing rather than the whole index.
func (h *ReferenceHandler) SearchPlayers(c *gin.Context) {
	query := c.Query("q")
	position := c.Query("position")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	if len(query) < 2 && (position == "" || position == "any") {
		utils.SendSuccess(c, gin.H{"players": []any{}})
		return
	}

	players, err := h.store.SearchPlayers(c.Request.Context(), query, position, limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to search players")
		return
	}
	utils.SendSuccess(c, gin.H{"players": players})
}
