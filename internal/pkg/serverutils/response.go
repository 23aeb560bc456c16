package serverutils

import "github.com/gofiber/fiber/v2"

type ApiResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) *ApiResponse {
	return &ApiResponse{
		Message: message,
		Data:    data,
	}
}

// ErrorHandlerMiddleware converts errors escaping a handler into a stable JSON
// envelope. Pipeline-level failures never reach here: those travel inside a 200
// body. This only fires for transport-level problems (bad request, missing
// session, unexpected internal errors).
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		return ctx.Status(code).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
}
