package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "maintenance-system/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorResponse переводит ошибку в HTTP-ответ. Причина отказа всегда видна клиенту:
// 400 - неверные данные, 401/403 - нет доступа, 404 - нет записи.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		fields := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
			fields = append(fields, e.Field())
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
			"body":    map[string]interface{}{"fields": fields},
		})
	}

	code := apperrors.StatusCode(err)
	response := map[string]interface{}{"status": false}

	var (
		httpErr       *apperrors.HttpError
		validationErr *apperrors.ValidationError
		authErr       *apperrors.AuthError
		notFoundErr   *apperrors.NotFoundError
	)
	switch {
	case errors.As(err, &httpErr):
		response["message"] = httpErr.Message
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
	case errors.As(err, &validationErr):
		response["message"] = "Неверные данные: " + validationErr.Error()
		response["body"] = map[string]interface{}{"field": validationErr.Field, "reason": validationErr.Reason}
	case errors.As(err, &authErr):
		if authErr.Forbidden {
			response["message"] = "Доступ запрещён: " + authErr.Reason
		} else {
			response["message"] = "Ошибка аутентификации: " + authErr.Reason
		}
	case errors.As(err, &notFoundErr):
		response["message"] = "Не найдено: " + notFoundErr.Error()
		response["body"] = map[string]interface{}{"entity": notFoundErr.Entity, "id": notFoundErr.ID}
	case code == http.StatusInternalServerError:
		logger.Error("Unexpected Error", zap.Error(err))
		response["message"] = "Внутренняя ошибка сервера"
	default:
		response["message"] = err.Error()
	}

	if code == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}

	return c.JSON(code, response)
}
