package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

type handlers struct {
	deps   Deps
	logger *zap.Logger
}

// basketResponse is the wire form of the basket plus its derived totals.
type basketResponse struct {
	Lines  []domain.Line `json:"lines"`
	Totals domain.Totals `json:"totals"`
}

func toBasketResponse(b domain.Basket, totals domain.Totals) basketResponse {
	return basketResponse{Lines: b.Lines(), Totals: totals}
}

func (h *handlers) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": catalog.All()})
}

func (h *handlers) getBasket(c *gin.Context) {
	b, totals, err := h.deps.Baskets.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBasketResponse(b, totals))
}

type addItemRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sku, err := domain.ParseSKU(req.SKU)
	if err != nil {
		h.fail(c, err)
		return
	}

	b, totals, err := h.deps.Baskets.Add(c.Request.Context(), sessionID(c), sku, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBasketResponse(b, totals))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) setItemQuantity(c *gin.Context) {
	sku, err := domain.ParseSKU(c.Param("sku"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, totals, err := h.deps.Baskets.SetQuantity(c.Request.Context(), sessionID(c), sku, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBasketResponse(b, totals))
}

func (h *handlers) removeItem(c *gin.Context) {
	sku, err := domain.ParseSKU(c.Param("sku"))
	if err != nil {
		h.fail(c, err)
		return
	}

	b, totals, err := h.deps.Baskets.Remove(c.Request.Context(), sessionID(c), sku)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBasketResponse(b, totals))
}

func (h *handlers) clearBasket(c *gin.Context) {
	if err := h.deps.Baskets.Clear(c.Request.Context(), sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBasketResponse(domain.Basket{}, h.deps.Baskets.Policy().Totals(domain.Basket{})))
}

// fail maps domain errors onto HTTP statuses.
func (h *handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownSKU), errors.Is(err, domain.ErrUnknownMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyBasket), errors.Is(err, domain.ErrBadStage):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
