package handler

import "github.com/labstack/echo/v4"

// apiResponse is the uniform success envelope. Errors use the same shape with
// success=false, rendered by the central error handler.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}
