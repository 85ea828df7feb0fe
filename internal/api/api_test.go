package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cam-Smith-Games/Card-Game/internal/content"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/service"
	"github.com/Cam-Smith-Games/Card-Game/internal/storage"
)

const catalogYAML = `
cards:
  - {name: Bonk, power: 10, motion: melee}
  - {name: Fireball, power: 10, cost: 2, element: fire}
characters:
  - {name: Cam, hp: 50, control: player, deck: [Bonk, Fireball]}
  - {name: Troglodyte, hp: 30, deck: [Bonk]}
encounters:
  - name: Cave
    player: [{template: Cam}]
    enemies: [{template: Troglodyte}]
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, err := content.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)
	db, err := storage.OpenAndMigrate(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repo := storage.NewSQLiteRepository(db)
	sim := service.NewSimulator(cat, repo, service.Settings{MaxTurns: 500})
	return NewRouter(NewBattleHandler(cat, sim, repo))
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestCatalogRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cards []map[string]interface{}
	decode(t, w, &cards)
	require.Len(t, cards, 2)
	assert.Equal(t, "bonk", cards[0]["key"])
	assert.Equal(t, "melee", cards[0]["motion"])

	w = do(t, r, http.MethodGet, "/api/characters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Troglodyte"`)

	w = do(t, r, http.MethodGet, "/api/encounters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Cave"`)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/version", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", nil).Code)
}

func TestRunAndFetchBattle(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/battles", gin.H{"encounter": "cave", "seed": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	decode(t, w, &created)
	id, _ := created["uuid"].(string)
	require.NotEmpty(t, id)
	assert.Contains(t, created, "created_at")
	assert.NotContains(t, created, "CreatedAt")
	assert.EqualValues(t, 3, created["seed"])

	w = do(t, r, http.MethodGet, "/api/battles/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	decode(t, w, &got)
	assert.Equal(t, id, got["uuid"])
	assert.Contains(t, got["log"], "FIGHT COMPLETE")
	assert.NotEmpty(t, got["casts"])

	w = do(t, r, http.MethodGet, "/api/battles?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["uuid"])

	for _, q := range []string{"troglodyte%2Bcam", "troglodyte+cam", "Cam,Troglodyte"} {
		w = do(t, r, http.MethodGet, "/api/battles?team="+q, nil)
		require.Equal(t, http.StatusOK, w.Code)
		list = nil
		decode(t, w, &list)
		assert.Len(t, list, 1, q)
	}

	w = do(t, r, http.MethodGet, "/api/battles?team=mage+cam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	decode(t, w, &list)
	assert.Empty(t, list)

	w = do(t, r, http.MethodGet, "/api/encounters/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats []storage.EncounterStats
	decode(t, w, &stats)
	require.Len(t, stats, 1)
	assert.Equal(t, "Cave", stats[0].Encounter)
	assert.EqualValues(t, 1, stats[0].Played)
}

func TestBattleErrors(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/battles", gin.H{}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/api/battles", gin.H{"encounter": "moon"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/battles/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/battles/00000000-0000-0000-0000-000000000000", nil).Code)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 7, parseLimit(" 7 "))
	assert.Equal(t, 0, parseLimit("lots"))
	assert.Equal(t, 0, parseLimit(""))
}

func TestRecordJSONRenamesNestedModelKeys(t *testing.T) {
	rec := &game.BattleRecord{UUID: "u", Casts: []game.CastRecord{{Card: "Bonk"}}}
	rec.ID = 4
	rec.Casts[0].ID = 9

	out, err := recordJSON(rec)
	require.NoError(t, err)
	m := out.(map[string]interface{})
	assert.EqualValues(t, 4, m["id"])
	assert.Contains(t, m, "created_at")
	assert.Contains(t, m, "deleted_at")
	assert.NotContains(t, m, "ID")
	assert.NotContains(t, m, "UpdatedAt")

	cast := m["casts"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 9, cast["id"])
	assert.Equal(t, "Bonk", cast["card"])
	assert.NotContains(t, cast, "CreatedAt")
}
