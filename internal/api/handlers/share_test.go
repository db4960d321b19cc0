package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeShareLink(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/share/decode?type=team&bet=total&side=under&period=L10&team=14&opp=21", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			State struct {
				QueryType  string `json:"queryType"`
				BetType    string `json:"betType"`
				Side       string `json:"side"`
				TeamID     int    `json:"teamId"`
				VersusTeam *struct {
					ID       int    `json:"id"`
					Name     string `json:"name"`
					Resolved bool   `json:"resolved"`
				} `json:"selectedVersusTeam"`
			} `json:"state"`
			AppliedFilters []string `json:"applied_filters"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "team", resp.Data.State.QueryType)
	assert.Equal(t, "under", resp.Data.State.Side)
	assert.Equal(t, 14, resp.Data.State.TeamID)

	require.NotNil(t, resp.Data.State.VersusTeam)
	assert.Equal(t, 21, resp.Data.State.VersusTeam.ID)
	assert.True(t, resp.Data.State.VersusTeam.Resolved, "opponent upgraded against the team table")
	assert.Equal(t, "Philadelphia Eagles", resp.Data.State.VersusTeam.Name)
	assert.NotEmpty(t, resp.Data.AppliedFilters)
}

func TestDecodeShareLinkGarbageNeverFails(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/share/decode?type=nope&spMin=xyz&junk=1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEncodeShareLink(t *testing.T) {
	env := newTestEnv(t, nil)

	body := `{"queryType":"trend","betType":"spread","timePeriod":"L10","favorite":"favorite","spreadMin":"-7","spreadMax":"-3","location":"any","division":"any","conference":"any","playoff":"any","homeFavDog":"any"}`
	w := env.do(t, http.MethodPost, "/share/encode", "", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			URL    string `json:"url"`
			Params string `json:"params"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.URL, "https://trendline.app/builder?")
	assert.Contains(t, resp.Data.Params, "spMin=-7")
	assert.Contains(t, resp.Data.Params, "fav=favorite")
}

func TestEncodeShareLinkBadBody(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/share/encode", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
