package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
)

// NewRouter mounts every route on a fresh gin engine.
func NewRouter(h *BattleHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET(constants.RouteHealth, Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCards, h.ListCards)
		apiRoutes.GET(constants.RouteCharacters, h.ListCharacters)
		apiRoutes.GET(constants.RouteEncounters, h.ListEncounters)
		apiRoutes.GET(constants.RouteStats, h.EncounterStats)
		apiRoutes.GET(constants.RouteBattles, h.ListBattles)
		apiRoutes.POST(constants.RouteBattles, h.RunBattle)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
	}
	return router
}
