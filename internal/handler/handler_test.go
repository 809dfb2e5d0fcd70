package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wacdo/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "validation error",
			err:            model.ValidationError("nom is required"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name:           "unknown product",
			err:            model.UnknownProductError(777),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeUnknownProduct,
		},
		{
			name:           "unknown option",
			err:            model.UnknownOptionError(11, 777),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeUnknownOption,
		},
		{
			name:           "protected fields",
			err:            model.ProtectedFieldsError(),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   model.ErrCodeProtectedFields,
		},
		{
			name:           "not found",
			err:            model.NotFoundError("order", 404),
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeNotFound,
		},
		{
			name:           "forbidden",
			err:            model.ForbiddenError("order deletion", model.RoleAdministrateur),
			expectedStatus: http.StatusForbidden,
			expectedCode:   model.ErrCodeForbidden,
		},
		{
			name:           "conflict",
			err:            model.ConflictError("email already registered"),
			expectedStatus: http.StatusConflict,
			expectedCode:   model.ErrCodeConflict,
		},
		{
			name:           "unauthorized",
			err:            model.UnauthorizedError("token expired"),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorized,
		},
		{
			name:           "untyped error",
			err:            errors.New("pq: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)

			writeError(rec, req, zerolog.Nop(), tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body model.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteError_InternalErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)

	writeError(rec, req, zerolog.Nop(), errors.New("pq: relation orders does not exist"))

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestForbiddenError_NamesAllowedRoles(t *testing.T) {
	err := model.ForbiddenError("preparer assignment", model.RoleSuperviseur, model.RoleAdministrateur)
	assert.Contains(t, err.Message, string(model.RoleSuperviseur))
	assert.Contains(t, err.Message, string(model.RoleAdministrateur))
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	req.SetPathValue("id", "42")

	id, err := pathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/orders/x", nil)
		req.SetPathValue("id", bad)
		_, err := pathID(req, "id")
		assert.Error(t, err, bad)
	}
}
