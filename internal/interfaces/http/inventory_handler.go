package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/posfin/pos-finanzas-api/internal/application/dto"
	"github.com/posfin/pos-finanzas-api/internal/application/inventory"
)

// InventoryHandler maneja consultas de existencias y del libro de movimientos (protegido).
type InventoryHandler struct {
	stock *inventory.StockService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockService) *InventoryHandler {
	return &InventoryHandler{stock: stock}
}

// GetLevel godoc
// @Summary      Existencias actuales de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "Product ID"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) GetLevel(c *fiber.Ctx) error {
	inv, err := h.stock.GetLevel(c.Params("productId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.StockLevelResponse{
		ProductID:   inv.ProductID,
		LocationID:  inv.LocationID,
		QuantityPz:  inv.QuantityPz,
		QuantityKg:  inv.QuantityKg,
		MinQuantity: inv.MinQuantity,
		MaxQuantity: inv.MaxQuantity,
	})
}

// ListMovements godoc
// @Summary      Movimientos del libro de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "Product ID"
// @Param        limit      query  int     false  "default 50"
// @Param        offset     query  int     false  "default 0"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/{productId}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	movements, err := h.stock.ListMovements(c.Params("productId"), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			LocationID:     m.LocationID,
			MovementTypeID: m.MovementTypeID,
			Quantity:       m.Quantity,
			MovedAt:        m.MovedAt,
			UserID:         m.UserID,
			MovementKey:    m.MovementKey,
		})
	}
	return c.JSON(out)
}
