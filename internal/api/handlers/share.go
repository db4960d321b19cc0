package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trendlinehq/builder-api/internal/builder"
	"github.com/trendlinehq/builder-api/internal/refdata"
	"github.com/trendlinehq/builder-api/pkg/utils"
)

// ShareHandler converts builds to and from shareable links.
type ShareHandler struct {
	store       *refdata.Store
	shareOrigin string
}

func NewShareHandler(store *refdata.Store, shareOrigin string) *ShareHandler {
	return &ShareHandler{
		store:       store,
		shareOrigin: shareOrigin,
	}
}

// DecodeShareLink restores a build from the query parameters of a shared
// link. Decoding never fails; whatever can be understood is returned along
// with the filter chips and any validation problems.
func (h *ShareHandler) DecodeShareLink(c *gin.Context) {
	state := builder.Decode(c.Request.URL.Query())
	h.store.Resolve(c.Request.Context(), &state)

	utils.SendSuccess(c, gin.H{
		"state":           state,
		"applied_filters": builder.AppliedFilters(state),
		"validation":      builder.Validate(state),
	})
}

// EncodeShareLink flattens a build into a shareable URL.
func (h *ShareHandler) EncodeShareLink(c *gin.Context) {
	var state builder.FilterState
	if err := c.ShouldBindJSON(&state); err != nil {
		utils.SendValidationError(c, "Invalid build state", err.Error())
		return
	}

	params := builder.Encode(state)
	utils.SendSuccess(c, gin.H{
		"url":    builder.ShareURL(h.shareOrigin, state),
		"params": params.Encode(),
	})
}
