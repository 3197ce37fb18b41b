package middlewarectx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/session"
)

func TestSessionMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sessions, err := session.New(bytes.Repeat([]byte("k"), 32), time.Hour)
	require.NoError(t, err)

	validToken, err := sessions.Establish(42)
	require.NoError(t, err)

	tests := []struct {
		name           string
		cookie         *http.Cookie
		expectedStatus int
		expectedUserID int64
		expectNext     bool
	}{
		{
			name:           "валидная сессия попадает в контекст",
			cookie:         &http.Cookie{Name: session.CookieName, Value: validToken},
			expectedStatus: http.StatusOK,
			expectedUserID: 42,
			expectNext:     true,
		},
		{
			name:           "запрос без cookie отклоняется",
			cookie:         nil,
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
		{
			name:           "подделанная cookie отклоняется",
			cookie:         &http.Cookie{Name: session.CookieName, Value: validToken[:len(validToken)-4] + "AAAA"},
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = UserIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			SessionMiddleware(sessions, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectNext {
				assert.Equal(t, tt.expectedUserID, gotUserID)
			} else {
				assert.Contains(t, w.Body.String(), `"error_type":"not_logged_in"`)
			}
		})
	}
}

func TestUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
