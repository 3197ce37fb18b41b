package session

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = bytes.Repeat([]byte("k"), 32)

func TestNew_KeyLength(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{name: "valid 32 byte key", key: testKey, wantErr: false},
		{name: "empty key", key: nil, wantErr: true},
		{name: "short key", key: []byte("too-short"), wantErr: true},
		{name: "long key", key: bytes.Repeat([]byte("k"), 33), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.key, time.Hour)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidKey)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEstablishResolve_Roundtrip(t *testing.T) {
	m, err := New(testKey, time.Hour)
	require.NoError(t, err)

	token, err := m.Establish(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok := m.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)
}

func TestEstablish_TokensAreUnique(t *testing.T) {
	m, err := New(testKey, time.Hour)
	require.NoError(t, err)

	first, err := m.Establish(1)
	require.NoError(t, err)
	second, err := m.Establish(1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestResolve_FailsClosed(t *testing.T) {
	m, err := New(testKey, time.Hour)
	require.NoError(t, err)

	valid, err := m.Establish(7)
	require.NoError(t, err)

	otherKey, err := New(bytes.Repeat([]byte("x"), 32), time.Hour)
	require.NoError(t, err)

	expired, err := (&Manager{key: m.key, ttl: -time.Minute}).Establish(7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "v4.local.not-a-real-token"},
		{name: "tampered token", token: valid[:len(valid)-4] + "AAAA"},
		{name: "expired token", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, ok := m.Resolve(tt.token)
			assert.False(t, ok)
			assert.Zero(t, userID)
		})
	}

	t.Run("token under different key", func(t *testing.T) {
		foreign, err := otherKey.Establish(7)
		require.NoError(t, err)

		_, ok := m.Resolve(foreign)
		assert.False(t, ok)
	})
}

func TestSetClearCookie(t *testing.T) {
	m, err := New(testKey, time.Hour)
	require.NoError(t, err)

	token, err := m.Establish(9)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.SetCookie(w, token)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	// Cookie из ответа читается обратно через FromRequest
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	assert.Equal(t, token, FromRequest(req))

	w = httptest.NewRecorder()
	m.ClearCookie(w)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
	assert.Empty(t, cleared[0].Value)
}

func TestFromRequest_NoCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, FromRequest(req))
}
