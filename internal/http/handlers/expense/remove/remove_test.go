package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, userID, expenseID int64) (int, error) {
	args := m.Called(ctx, userID, expenseID)
	return args.Int(0), args.Error(1)
}

func TestRemoveExpenseHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		withSession    bool
		setupMock      func(*MockService)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "успешное удаление расхода",
			withSession: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, int64(5), int64(11)).
					Return(1, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"deleted":1`,
		},
		{
			name:           "запрос без сессии",
			withSession:    false,
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"error_type":"not_logged_in"`,
		},
		{
			name:        "расход не найден",
			withSession: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, int64(5), int64(11)).
					Return(0, nil).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `"error_type":"not_found"`,
		},
		{
			name:        "ошибка базы данных",
			withSession: true,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, int64(5), int64(11)).
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

			req := httptest.NewRequest(http.MethodDelete, "/expenses/11", nil)
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
