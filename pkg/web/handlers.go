package web

import (
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/persistence"
	"github.com/marden/flint/pkg/registry"
	"github.com/marden/flint/pkg/trigger"
)

// APIHandlers serves the trigger CRUD and capability endpoints.
type APIHandlers struct {
	manager   *trigger.Manager
	registry  *registry.Registry
	store     persistence.Persistence
	validator *validator.Validate
}

func NewAPIHandlers(manager *trigger.Manager, reg *registry.Registry, store persistence.Persistence) *APIHandlers {
	return &APIHandlers{
		manager:   manager,
		registry:  reg,
		store:     store,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *APIHandlers) GetTriggers(c fiber.Ctx) error {
	triggers := h.manager.ListTriggers()

	specs := make([]*models.TriggerSpec, 0, len(triggers))
	for _, t := range triggers {
		specs = append(specs, t.Spec())
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })

	return c.JSON(fiber.Map{
		"triggers": specs,
		"count":    len(specs),
	})
}

func (h *APIHandlers) GetTrigger(c fiber.Ctx) error {
	id, err := parseTriggerID(c)
	if err != nil {
		return badRequest(c, "Invalid trigger id")
	}

	t, ok := h.manager.GetTrigger(id)
	if !ok {
		return notFound(c, "trigger not found")
	}

	return c.JSON(t.Spec())
}

func (h *APIHandlers) CreateTrigger(c fiber.Ctx) error {
	spec, err := h.bindSpec(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	t, err := h.registry.BuildTrigger(spec)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.manager.Insert(c.Context(), t); err != nil {
		return handleManagerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(t.Spec())
}

func (h *APIHandlers) UpdateTrigger(c fiber.Ctx) error {
	id, err := parseTriggerID(c)
	if err != nil {
		return badRequest(c, "Invalid trigger id")
	}

	spec, err := h.bindSpec(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	spec.ID = id

	t, err := h.registry.BuildTrigger(spec)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.manager.Update(c.Context(), t); err != nil {
		return handleManagerError(c, err)
	}

	return c.JSON(t.Spec())
}

func (h *APIHandlers) DeleteTrigger(c fiber.Ctx) error {
	id, err := parseTriggerID(c)
	if err != nil {
		return badRequest(c, "Invalid trigger id")
	}

	if err := h.manager.Remove(c.Context(), id); err != nil {
		return handleManagerError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetCheckers(c fiber.Ctx) error {
	checkers := h.manager.SupportedCheckers()

	capabilities := make([]CapabilityResponse, 0, len(checkers))
	for id, factory := range checkers {
		capabilities = append(capabilities, CapabilityResponse{
			Type:        id,
			Name:        factory.Name(),
			Description: factory.Description(),
			Schema:      factory.Schema(),
		})
	}

	sort.Slice(capabilities, func(i, j int) bool { return capabilities[i].Type < capabilities[j].Type })

	return c.JSON(fiber.Map{"checkers": capabilities})
}

func (h *APIHandlers) GetActions(c fiber.Ctx) error {
	actions := h.manager.SupportedActions()

	capabilities := make([]CapabilityResponse, 0, len(actions))
	for id, factory := range actions {
		capabilities = append(capabilities, CapabilityResponse{
			Type:        id,
			Name:        factory.Name(),
			Description: factory.Description(),
			Schema:      factory.Schema(),
		})
	}

	sort.Slice(capabilities, func(i, j int) bool { return capabilities[i].Type < capabilities[j].Type })

	return c.JSON(fiber.Map{"actions": capabilities})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	if err := h.store.HealthCheck(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "healthy"})
}

func (h *APIHandlers) bindSpec(c fiber.Ctx) (*models.TriggerSpec, error) {
	var req TriggerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return nil, err
	}

	if err := h.validator.Struct(&req); err != nil {
		return nil, err
	}

	return &models.TriggerSpec{
		Name:            req.Name,
		Source:          "api",
		ResetOnFire:     req.ResetOnFire,
		ResetOnExpire:   req.ResetOnExpire,
		FireCondition:   req.FireCondition,
		ExpireCondition: req.ExpireCondition,
		Actions:         req.Actions,
	}, nil
}

func parseTriggerID(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
