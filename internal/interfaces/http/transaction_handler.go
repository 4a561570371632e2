package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
)

// TransactionHandler maneja las peticiones HTTP del kardex (protegido).
type TransactionHandler struct {
	record *ledger.RecordTransactionUseCase
	query  *ledger.QueryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(record *ledger.RecordTransactionUseCase, query *ledger.QueryUseCase) *TransactionHandler {
	return &TransactionHandler{record: record, query: query}
}

// Create godoc
// @Summary      Registrar un asiento del kardex
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "product_id, quantity_change, type, notes (opcional), unit_price (opcional)"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.record.RecordTransaction(c.Context(), in, GetUserID(c), GetRole(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asientos con filtros y paginación (solo admin)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página (1-indexada)"
// @Param        page_size   query  int     false  "Tamaño de página (máx 100)"
// @Param        user_id     query  string  false  "Filtrar por usuario"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo"
// @Param        start_date  query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta"
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var req dto.TransactionListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.query.List(c.Context(), req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un asiento por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del asiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.query.GetByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Asientos de un usuario (solo admin)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        userId     path   string  true   "ID del usuario"
// @Param        page       query  int     false  "Página"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions/user/{userId} [get]
func (h *TransactionHandler) ListByUser(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.query.ListByUser(c.Context(), c.Params("userId"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Asientos de un producto
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        page       query  int     false  "Página"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions/product/{productId} [get]
func (h *TransactionHandler) ListByProduct(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.query.ListByProduct(c.Context(), c.Params("productId"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// MyTransactions godoc
// @Summary      Mis asientos (usuario autenticado)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"
// @Param        page_size   query  int     false  "Tamaño de página"
// @Param        type        query  string  false  "Filtrar por tipo"
// @Param        start_date  query  string  false  "Desde"
// @Param        end_date    query  string  false  "Hasta"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions/me/my-transactions [get]
func (h *TransactionHandler) MyTransactions(c *fiber.Ctx) error {
	var req dto.TransactionListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	// El filtro de usuario se fija al dueño del token, ignorando el query.
	req.UserID = GetUserID(c)
	out, err := h.query.List(c.Context(), req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen global del kardex (solo admin)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransactionSummaryResponse
// @Router       /api/transactions/summary/overview [get]
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	out, err := h.query.Summary(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	err := c.QueryParser(&page)
	return page, err
}
