package userid

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUserIDHandler(t *testing.T) {
	handler := New(newNoopLogger())

	t.Run("с валидной сессией", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/user_id", nil)
		ctx := context.WithValue(req.Context(), middlewarectx.UserID, int64(42))
		req = req.WithContext(ctx)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user_id":42`)
		assert.Contains(t, rec.Body.String(), `"status":"success"`)
	})

	t.Run("без сессии", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/user_id", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error_type":"not_logged_in"`)
	})
}
