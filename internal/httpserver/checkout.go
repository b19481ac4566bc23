package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type openCheckoutRequest struct {
	Method string `json:"method" binding:"required"`
}

func (h *handlers) openCheckout(c *gin.Context) {
	var req openCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		h.fail(c, err)
		return
	}

	widget, err := h.deps.Checkout.Open(c.Request.Context(), sessionID(c), method)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout": widget})
}

func (h *handlers) checkoutEvent(c *gin.Context) {
	var ev domain.CheckoutEvent
	if err := c.ShouldBindJSON(&ev); err != nil || ev.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state, err := h.deps.Checkout.HandleEvent(c.Request.Context(), sessionID(c), ev)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) continueCheckout(c *gin.Context) {
	state, err := h.deps.Checkout.Continue(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) checkoutState(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Checkout.StateOf(sessionID(c)))
}
