package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlinehq/builder-api/internal/models"
)

func TestListTeams(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/reference/teams", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Teams []struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
				Abbr string `json:"abbr"`
			} `json:"teams"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Teams, 32)
}

func TestSearchTeamsByQuery(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/reference/teams?q=bills", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Teams []struct {
				Abbr string `json:"abbr"`
			} `json:"teams"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Teams)
	assert.Equal(t, "BUF", resp.Data.Teams[0].Abbr)
}

func TestListReferees(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.db.Create(&[]models.Referee{
		{Name: "Carl Cheffers", GameCount: 44},
		{Name: "Shawn Hochuli", GameCount: 43},
	}).Error)

	w := env.do(t, http.MethodGet, "/reference/referees", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Referees []struct {
				Name      string `json:"referee_name"`
				GameCount int    `json:"game_count"`
			} `json:"referees"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Referees, 2)
	assert.Equal(t, "Carl Cheffers", resp.Data.Referees[0].Name, "ordered by game count")
}

func TestSearchPlayers(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.db.Create(&[]models.Player{
		{ESPNPlayerID: 1, Name: "Justin Jefferson", Position: "WR", Active: true},
		{ESPNPlayerID: 2, Name: "Justin Tucker", Position: "K", Active: true},
		{ESPNPlayerID: 3, Name: "Retired Guy", Position: "WR", Active: false},
	}).Error)

	w := env.do(t, http.MethodGet, "/reference/players/search?q=justin&position=WR", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Players []struct {
				Name     string `json:"name"`
				Position string `json:"position"`
			} `json:"players"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Players, 1)
	assert.Equal(t, "Justin Jefferson", resp.Data.Players[0].Name)
}

func TestSearchPlayersShortQuery(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/reference/players/search?q=j", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Players []any `json:"players"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Players)
}
