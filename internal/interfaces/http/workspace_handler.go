package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/posfin/pos-finanzas-api/internal/application/cart"
	"github.com/posfin/pos-finanzas-api/internal/application/dto"
)

// WorkspaceHandler maneja workspaces y su carrito temporal (protegido).
type WorkspaceHandler struct {
	uc *cart.UseCase
}

// NewWorkspaceHandler construye el handler.
func NewWorkspaceHandler(uc *cart.UseCase) *WorkspaceHandler {
	return &WorkspaceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear workspace
// @Tags         workspaces
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]string
// @Router       /api/workspaces [post]
func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	workspace, err := h.uc.CreateWorkspace(c.Context(), in.Name)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": workspace.ID, "name": workspace.Name})
}

// List godoc
// @Summary      Listar workspaces
// @Tags         workspaces
// @Security     Bearer
// @Produce      json
// @Router       /api/workspaces [get]
func (h *WorkspaceHandler) List(c *fiber.Ctx) error {
	workspaces, err := h.uc.ListWorkspaces(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]fiber.Map, 0, len(workspaces))
	for _, w := range workspaces {
		out = append(out, fiber.Map{"id": w.ID, "name": w.Name})
	}
	return c.JSON(out)
}

// AddToCart godoc
// @Summary      Agregar producto al carrito del workspace
// @Description  Aparta inventario por el incremento solicitado; si el producto
//               ya está en el carrito, suma cantidades y refresca el precio.
// @Tags         workspaces
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Workspace ID"
// @Param        body  body  dto.AddToCartRequest  true  "product_id, quantity_pz, quantity_kg"
// @Success      201   {object}  dto.WorkspaceOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{id}/orders [post]
func (h *WorkspaceHandler) AddToCart(c *fiber.Ctx) error {
	workspaceID := c.Params("id")
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.uc.AddOrMerge(c.Context(), workspaceID, in.ProductID, in.QuantityPz, in.QuantityKg)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// ListCart godoc
// @Summary      Listar líneas del carrito del workspace
// @Tags         workspaces
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Workspace ID"
// @Success      200  {array}  dto.WorkspaceOrderResponse
// @Router       /api/workspaces/{id}/orders [get]
func (h *WorkspaceHandler) ListCart(c *fiber.Ctx) error {
	lines, err := h.uc.ListByWorkspace(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(lines)
}

// RemoveLine godoc
// @Summary      Eliminar una línea del carrito
// @Description  No devuelve existencias al inventario; para eso está el vaciado.
// @Tags         workspaces
// @Security     Bearer
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/orders/{lineId} [delete]
func (h *WorkspaceHandler) RemoveLine(c *fiber.Ctx) error {
	removed, err := h.uc.Remove(c.Context(), c.Params("lineId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearCart godoc
// @Summary      Vaciar el carrito del workspace
// @Description  Devuelve al inventario lo apartado por cada línea y elimina
//               todas las líneas, en una sola transacción.
// @Tags         workspaces
// @Security     Bearer
// @Param        id  path  string  true  "Workspace ID"
// @Success      204
// @Router       /api/workspaces/{id}/orders [delete]
func (h *WorkspaceHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
