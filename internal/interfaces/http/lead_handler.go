package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/leads"
)

// LeadHandler maneja las solicitudes de cotización entre instaladores y proveedores.
type LeadHandler struct {
	uc *leads.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *leads.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lead
// @Description  Solo instaladores. El lead nace en estado pending y se avisa al proveedor en segundo plano.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del proyecto y contacto"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lead
// @Description  Visible para el instalador que lo creó y para la empresa destino. Para cualquier otro usuario responde 404.
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	out, err := h.uc.Get(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Leads enviados por el instalador
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LeadWithSupplierResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/leads/mine [get]
func (h *LeadHandler) ListMine(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	out, err := h.uc.ListMine(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReceived godoc
// @Summary      Leads recibidos por la empresa del proveedor
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LeadResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/leads/received [get]
func (h *LeadHandler) ListReceived(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	out, err := h.uc.ListReceived(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del lead
// @Description  Solo miembros de la empresa destino. Estados: pending, contacted, quoted, closed.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del lead"
// @Param        body  body  dto.UpdateLeadStatusRequest  true  "status, notes"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/status [put]
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	var in dto.UpdateLeadStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UpdateStatus(c.UserContext(), id, c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado del lead actualizado"})
}
