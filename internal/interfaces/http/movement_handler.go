package http

import (
	"github.com/gofiber/fiber/v2"

	appledger "github.com/despensa/despensa-api/internal/application/ledger"
	"github.com/despensa/despensa-api/internal/application/dto"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	uc    *appledger.UseCase
	query *appledger.QueryUseCase
	pdf   *appledger.PDFUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *appledger.UseCase, query *appledger.QueryUseCase, pdf *appledger.PDFUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, query: query, pdf: pdf}
}

// Create godoc
// @Summary      Registrar movimiento (entrada o salida)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveMovementRequest  true  "type, date, note (salidas), lines"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !validateRequest(c, &in) {
		return nil
	}
	input, err := toMovementInput(in)
	if err != nil {
		return respondError(c, err)
	}
	m, err := h.uc.Post(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// Update godoc
// @Summary      Editar un movimiento del mes en curso
// @Description  Reversa el asiento anterior y re-registra el nuevo como una
//	sola operación lógica. El tipo del movimiento no cambia.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del movimiento"
// @Param        body  body  dto.SaveMovementRequest  true  "date, note, lines"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.SaveMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !validateRequest(c, &in) {
		return nil
	}
	input, err := toMovementInput(in)
	if err != nil {
		return respondError(c, err)
	}
	m, err := h.uc.Update(c.Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// Delete godoc
// @Summary      Eliminar un movimiento del mes en curso (con reversa)
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento eliminado"})
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Produce      json
// @Param        type    query  string  false  "IMPORT o EXPORT (vacío = todos)"
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Param        limit   query  int     false  "máx 100, defecto 20"
// @Param        offset  query  int     false  "defecto 0"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if !validateRequest(c, &in) {
		return nil
	}
	in.DefaultPage()
	from, to, err := parseDateRange(in.DateRangeRequest)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.query.ListMovements(c.Context(), in.Type, from, to, in.Limit, in.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, dto.ToMovementResponse(m))
	}
	return c.JSON(fiber.Map{
		"total":     len(resp),
		"movements": resp,
	})
}

// GetByID godoc
// @Summary      Obtener un movimiento con sus líneas
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.query.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// DownloadInvoicePDF godoc
// @Summary      Descargar el comprobante PDF de un movimiento
// @Tags         movements
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/invoice [get]
func (h *MovementHandler) DownloadInvoicePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// toMovementInput mapea el DTO al input del caso de uso, parseando la fecha.
func toMovementInput(in dto.SaveMovementRequest) (appledger.MovementInput, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return appledger.MovementInput{}, err
	}
	input := appledger.MovementInput{
		Type:  in.Type,
		Date:  date,
		Note:  in.Note,
		Lines: make([]appledger.LineInput, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, appledger.LineInput{
			IngredientID:   l.IngredientID,
			Name:           l.Name,
			Unit:           l.Unit,
			Price:          l.Price,
			Quantity:       l.Quantity,
			OriginQuantity: l.OriginQuantity,
		})
	}
	return input, nil
}
