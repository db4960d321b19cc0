package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlinehq/builder-api/internal/models"
)

func buildPayload(name string) string {
	return fmt.Sprintf(`{
		"name": %q,
		"description": "heavy home favorites",
		"tags": ["spread"],
		"state": {
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
		}
	}`, name)
}

func createBuild(t *testing.T, env *testEnv, token, name string) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/builds", token, buildPayload(name))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	return resp.Data.ID
}

func TestBuildsRequireAuth(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/builds", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListBuilds(t *testing.T) {
	env := newTestEnv(t, nil)
	token := authToken(t, "user-1")

	createBuild(t, env, token, "Fav -3 to -7 L10")

	w := env.do(t, http.MethodGet, "/builds", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Builds []struct {
				Name           string   `json:"name"`
				BuildType      string   `json:"build_type"`
				AppliedFilters []string `json:"applied_filters"`
				State          struct {
					SpreadMin string `json:"spreadMin"`
				} `json:"state"`
			} `json:"builds"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Builds, 1)
	assert.Equal(t, "Fav -3 to -7 L10", resp.Data.Builds[0].Name)
	assert.Equal(t, "trend", resp.Data.Builds[0].BuildType)
	assert.Equal(t, "-7", resp.Data.Builds[0].State.SpreadMin)
	assert.Contains(t, resp.Data.Builds[0].AppliedFilters, "Favorite")
}

func TestCreateBuildDuplicateName(t *testing.T) {
	env := newTestEnv(t, nil)
	token := authToken(t, "user-1")

	createBuild(t, env, token, "My Build")

	w := env.do(t, http.MethodPost, "/builds", token, buildPayload("My Build"))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Same name under another user is fine.
	w = env.do(t, http.MethodPost, "/builds", authToken(t, "user-2"), buildPayload("My Build"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecreateAfterDelete(t *testing.T) {
	env := newTestEnv(t, nil)
	token := authToken(t, "user-1")
	id := createBuild(t, env, token, "Reused Name")

	w := env.do(t, http.MethodDelete, "/builds/"+id, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	// The name uniqueness only covers active rows, so the name is free again.
	w = env.do(t, http.MethodPost, "/builds", token, buildPayload("Reused Name"))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestGetBuildOwnership(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := authToken(t, "user-1")
	id := createBuild(t, env, owner, "Private Build")

	w := env.do(t, http.MethodGet, "/builds/"+id, owner, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/builds/"+id, authToken(t, "user-2"), "")
	assert.Equal(t, http.StatusNotFound, w.Code, "private builds look nonexistent to others")
}

func TestDeleteBuildSoftDeletes(t *testing.T) {
	env := newTestEnv(t, nil)
	token := authToken(t, "user-1")
	id := createBuild(t, env, token, "Doomed")

	w := env.do(t, http.MethodDelete, "/builds/"+id, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/builds/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var row models.SavedQuery
	require.NoError(t, env.db.Where("id = ?", id).First(&row).Error)
	assert.False(t, row.IsActive, "row is kept, only deactivated")
}

func TestRunBuildRecordsRun(t *testing.T) {
	env := newTestEnv(t, nil)
	token := authToken(t, "user-1")
	id := createBuild(t, env, token, "Runner")

	w := env.do(t, http.MethodPost, "/builds/"+id+"/run", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Result struct {
				Summary string `json:"summary"`
			} `json:"result"`
			AppliedFilters []string `json:"applied_filters"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "12-4 ATS (75.0%)", resp.Data.Result.Summary)

	var row models.SavedQuery
	require.NoError(t, env.db.Where("id = ?", id).First(&row).Error)
	assert.Equal(t, 1, row.RunCount)
	assert.NotNil(t, row.LastRunAt)
	assert.Equal(t, "12-4 ATS (75.0%)", row.LastResultSummary)
}

func TestRunBuildUpstreamFailure(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	token := authToken(t, "user-1")
	id := createBuild(t, env, token, "Runner")

	w := env.do(t, http.MethodPost, "/builds/"+id+"/run", token, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
