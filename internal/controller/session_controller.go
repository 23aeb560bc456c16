package controller

import (
	"errors"

	"formflow-be/internal/pkg/serverutils"
	"formflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/form/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("sessions", c.Index)
	h.Get("sessions/:id", c.Show)
	h.Delete("sessions/:id", c.Delete)
}

func (c *sessionController) Index(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	domain := ctx.Locals("domain").(string)

	pageSize := ctx.QueryInt("pageSize", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.sessionService.GetSessions(ctx.Context(), username, domain, pageSize, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	domain := ctx.Locals("domain").(string)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.sessionService.GetById(ctx.Context(), username, domain, id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	domain := ctx.Locals("domain").(string)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.sessionService.DeleteById(ctx.Context(), username, domain, id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}
