package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCards returns every card in catalog order.
func (h *BattleHandler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Cards())
}

// ListCharacters returns the character templates.
func (h *BattleHandler) ListCharacters(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Characters())
}

// ListEncounters returns the encounters a battle can be started from.
func (h *BattleHandler) ListEncounters(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Encounters())
}
