package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getQuote(c *gin.Context) {
	if h.deps.Quote == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote source not configured"})
		return
	}
	resp := gin.H{"usdPerSol": h.deps.Quote.USDPerSOL()}
	if at := h.deps.Quote.UpdatedAt(); !at.IsZero() {
		resp["updatedAt"] = at
	}
	c.JSON(http.StatusOK, resp)
}
