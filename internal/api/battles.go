package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
	"github.com/Cam-Smith-Games/Card-Game/internal/service"
)

type runBattleRequest struct {
	Encounter string `json:"encounter" binding:"required"`
	// Seed replays a previous battle when set.
	Seed *int64 `json:"seed"`
}

var battleIDRegex = regexp.MustCompile("^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$")

// RunBattle simulates an encounter to completion and returns the report.
func (h *BattleHandler) RunBattle(c *gin.Context) {
	var req runBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
		return
	}
	rec, err := h.sim.RunEncounter(c.Request.Context(), strings.TrimSpace(req.Encounter), req.Seed)
	if err != nil {
		if errors.Is(err, service.ErrEncounterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
			return
		}
		logging.Error("battle run failed", err, logging.Fields{constants.LogFieldEncounter: req.Encounter})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunBattle, constants.JSONKeyDetails: err.Error()})
		return
	}
	out, err := recordJSON(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeResponse})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListBattles returns the newest battles; ?team=a+b filters by line-up and
// ?limit=N bounds the result.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	battles, err := service.ListBattles(h.repo, c.Query("team"), parseLimit(c.Query("limit")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out, err := recordJSON(battles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeResponse})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns one battle with its narrated log and casts.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := strings.ToLower(strings.TrimSpace(c.Param("battleID")))
	if !battleIDRegex.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	rec, err := service.GetBattle(h.repo, id)
	if err != nil {
		if errors.Is(err, service.ErrBattleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out, err := recordJSON(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeResponse})
		return
	}
	c.JSON(http.StatusOK, out)
}

// EncounterStats returns win rates per encounter.
func (h *BattleHandler) EncounterStats(c *gin.Context) {
	stats, err := service.EncounterStats(h.repo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, stats)
}
