package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, userID, expenseID int64, req models.DummyExpense) (int, error) {
	args := m.Called(ctx, userID, expenseID, req)
	return args.Int(0), args.Error(1)
}

func TestUpdateExpenseHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	validReq := models.DummyExpense{
		Amount:      2000,
		ExpenseTime: "16-03-2025",
		Comment:     "dinner",
		Tags:        []string{"food", "restaurants"},
	}

	tests := []struct {
		name           string
		withSession    bool
		requestBody    interface{}
		setupMock      func(*MockService)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "успешное обновление расхода",
			withSession: true,
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(5), int64(11), validReq).
					Return(1, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"updated":1`,
		},
		{
			name:           "запрос без сессии",
			withSession:    false,
			requestBody:    validReq,
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"error_type":"not_logged_in"`,
		},
		{
			name:        "расход не найден",
			withSession: true,
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(5), int64(11), validReq).
					Return(0, nil).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `"error_type":"not_found"`,
		},
		{
			name:           "некорректный JSON",
			withSession:    true,
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"error":"invalid request body"`,
		},
		{
			name:        "ошибка базы данных",
			withSession: true,
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, int64(5), int64(11), validReq).
					Return(0, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `"error_type":"database_error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(v)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, "/expenses/11", bytes.NewReader(bodyBytes))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "11")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.withSession {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, int64(5)))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			mockService.AssertExpectations(t)
		})
	}
}
