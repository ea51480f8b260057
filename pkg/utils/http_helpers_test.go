package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "maintenance-system/pkg/errors"
)

func runErrorResponse(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, ErrorResponse(c, err, zap.NewNop()))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorResponse_Taxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", apperrors.NewValidationError("area", "обязательное поле"), http.StatusBadRequest},
		{"authentication", apperrors.NewAuthError("неверный пароль"), http.StatusUnauthorized},
		{"role", apperrors.NewForbiddenError("только администратор"), http.StatusForbidden},
		{"not found", apperrors.NewNotFoundError("оборудование", "42"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("repo: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"http error", apperrors.NewHttpError(http.StatusConflict, "конфликт", nil, nil), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := runErrorResponse(t, tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, false, body["status"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestErrorResponse_DistinctMessages(t *testing.T) {
	_, notFound := runErrorResponse(t, apperrors.NewNotFoundError("оборудование", "42"))
	_, forbidden := runErrorResponse(t, apperrors.NewForbiddenError("только администратор"))
	_, invalid := runErrorResponse(t, apperrors.NewValidationError("area", "обязательное поле"))

	assert.NotEqual(t, notFound["message"], forbidden["message"])
	assert.NotEqual(t, forbidden["message"], invalid["message"])
	assert.Equal(t, "area", invalid["body"].(map[string]interface{})["field"])
}

func TestErrorResponse_InternalDetailsHidden(t *testing.T) {
	_, body := runErrorResponse(t, errors.New("pq: connection refused"))
	assert.Equal(t, "Внутренняя ошибка сервера", body["message"])
}
