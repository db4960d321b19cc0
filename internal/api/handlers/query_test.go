package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendStateBody() string {
	return `{
		"queryType": "trend",
		"betType": "spread",
		"side": "over",
		"timePeriod": "L10",
		"location": "any",
		"division": "any",
		"conference": "any",
		"playoff": "any",
		"favorite": "favorite",
		"homeFavDog": "any",
		"spreadMin": "-7",
		"spreadMax": "-3"
	}`
}

func TestRunQueryProxiesWireRequest(t *testing.T) {
	var captured map[string]any
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary":"ok"}`))
	})

	w := env.do(t, http.MethodPost, "/query", "", trendStateBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NotNil(t, captured)
	assert.Equal(t, "trend", captured["type"])
	assert.Equal(t, "spread", captured["bet_type"])
	assert.Equal(t, "favorite", captured["side"])

	filters, ok := captured["filters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "L10", filters["time_period"])
	assert.Equal(t, "favorite", filters["is_favorite"])
}

func TestRunQueryRejectsInvalidFilters(t *testing.T) {
	env := newTestEnv(t, nil)

	body := `{
		"queryType": "trend",
		"betType": "spread",
		"timePeriod": "L10",
		"location": "any", "division": "any", "conference": "any",
		"playoff": "any", "favorite": "any", "homeFavDog": "any",
		"spreadMin": "-3",
		"spreadMax": "-7"
	}`
	w := env.do(t, http.MethodPost, "/query", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, "inverted range is rejected before the proxy call")
}

func TestRunUpcomingPropsRequiresPropBuild(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/query/upcoming-props", "", trendStateBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunQueryPropWithoutSubject(t *testing.T) {
	env := newTestEnv(t, nil)

	body := `{
		"queryType": "prop",
		"betType": "spread",
		"timePeriod": "L10",
		"location": "any", "division": "any", "conference": "any",
		"playoff": "any", "favorite": "any", "homeFavDog": "any",
		"propPosition": "any",
		"propStat": "pass_yards",
		"propLine": "250",
		"propLineMode": "any"
	}`
	w := env.do(t, http.MethodPost, "/query", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunQueryEngineDown(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	w := env.do(t, http.MethodPost, "/query", "", trendStateBody())
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
