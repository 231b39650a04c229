package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/subscription"
)

// SubscriptionHandler maneja planes y suscripciones. Todo salvo Current es de administración.
type SubscriptionHandler struct {
	subs  *subscription.SubscriptionUseCase
	plans *subscription.PlanUseCase
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(subs *subscription.SubscriptionUseCase, plans *subscription.PlanUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, plans: plans}
}

// ListPlans godoc
// @Summary      Listar planes
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.PlanResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/plans [get]
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	out, err := h.plans.List(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePlan godoc
// @Summary      Crear plan
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/plans [post]
func (h *SubscriptionHandler) CreatePlan(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.plans.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Assign godoc
// @Summary      Asignar plan a una empresa
// @Description  Desactiva la suscripción activa (si existe) e inserta una nueva activa, en una sola transacción.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignSubscriptionRequest  true  "company_id, plan_id"
// @Success      200   {object}  dto.SubscriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/subscriptions [put]
func (h *SubscriptionHandler) Assign(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	var in dto.AssignSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.subs.Assign(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de suscripciones de una empresa
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {array}   dto.SubscriptionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/subscriptions/{companyId} [get]
func (h *SubscriptionHandler) History(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	out, err := h.subs.History(c.UserContext(), id, c.Params("companyId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar la suscripción activa
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/subscriptions/{companyId} [delete]
func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	if err := h.subs.Cancel(c.UserContext(), id, c.Params("companyId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "suscripción cancelada"})
}

// Companies godoc
// @Summary      Empresas con su plan activo
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máx. filas (default 50, max 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.CompanySubscriptionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/companies [get]
func (h *SubscriptionHandler) Companies(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	if err := validateStruct(page); err != nil {
		return writeError(c, err)
	}
	out, err := h.subs.Overview(c.UserContext(), id, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Suscripción activa de mi empresa
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CurrentSubscriptionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscriptions/current [get]
func (h *SubscriptionHandler) Current(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	out, err := h.subs.Current(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
