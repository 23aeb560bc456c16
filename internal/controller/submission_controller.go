package controller

import (
	"errors"
	"fmt"

	"formflow-be/internal/constant"
	"formflow-be/internal/dto"
	"formflow-be/internal/pkg/logger"
	"formflow-be/internal/pkg/serverutils"
	"formflow-be/internal/service"
	"formflow-be/pkg/lock"

	"github.com/gofiber/fiber/v2"
)

type ISubmissionController interface {
	RegisterRoutes(r fiber.Router)
	SubmitAll(ctx *fiber.Ctx) error
}

type submissionController struct {
	submissionService service.ISubmissionService
	locker            lock.Locker
	logger            logger.ILogger
}

func NewSubmissionController(submissionService service.ISubmissionService, locker lock.Locker, sysLogger logger.ILogger) ISubmissionController {
	return &submissionController{
		submissionService: submissionService,
		locker:            locker,
		logger:            sysLogger,
	}
}

func (c *submissionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/form/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("submit-all", c.SubmitAll)
}

func (c *submissionController) SubmitAll(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	domain := ctx.Locals("domain").(string)

	var req dto.SubmitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Username = username
	req.Domain = domain

	// All submissions for one user are serialized under a single named lock
	// held for the whole pipeline run.
	lockName := fmt.Sprintf("%s:%s:%s", constant.UserLockPrefix, domain, username)
	handle, err := c.locker.Acquire(ctx.Context(), lockName)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "could not acquire user lock")
	}
	defer func() {
		if releaseErr := handle.Release(ctx.Context()); releaseErr != nil {
			c.logger.Warn("controller", "failed to release user lock", map[string]interface{}{
				"lock":  lockName,
				"error": releaseErr.Error(),
			})
		}
	}()

	res, err := c.submissionService.SubmitAll(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	// Pipeline outcomes, successful or not, always ride a 200.
	return ctx.JSON(res)
}
