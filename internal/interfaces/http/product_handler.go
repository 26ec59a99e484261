package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/posfin/pos-finanzas-api/internal/application/catalog"
	"github.com/posfin/pos-finanzas-api/internal/application/dto"
)

// ProductHandler maneja el catálogo de productos (protegido).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Alta completa de producto
// @Description  Crea el producto con su primer precio y costo, el inventario
//               inicial y el movimiento de creación, en una transacción.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.CreateProduct(c.Context(), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// List godoc
// @Summary      Listar productos con precio/costo vigentes y existencias
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "default 50"
// @Param        offset  query  int  false  "default 0"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	products, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(products)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(product)
}

// AddPrice godoc
// @Summary      Registrar nuevo precio de venta
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                   true  "Product ID"
// @Param        body  body  dto.RegisterPriceRequest true  "amount"
// @Success      201
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/prices [post]
func (h *ProductHandler) AddPrice(c *fiber.Ctx) error {
	var in dto.RegisterPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddPrice(c.Context(), c.Params("id"), in.Amount); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// AddCost godoc
// @Summary      Registrar nuevo costo de compra
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                   true  "Product ID"
// @Param        body  body  dto.RegisterPriceRequest true  "amount"
// @Success      201
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/costs [post]
func (h *ProductHandler) AddCost(c *fiber.Ctx) error {
	var in dto.RegisterPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddCost(c.Context(), c.Params("id"), in.Amount); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}
