package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlowther/centsy/internal/http/auth"
)

const secret = "test-secret"

func protected(t *testing.T, gotOwner *uuid.UUID) http.Handler {
	return auth.Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.OwnerID(r.Context())
		require.True(t, ok)
		*gotOwner = id

		w.WriteHeader(http.StatusOK)
	}))
}

func TestMiddleware(t *testing.T) {
	ownerID := uuid.New()

	token, err := auth.Sign(secret, ownerID, time.Hour)
	require.NoError(t, err)

	var gotOwner uuid.UUID

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	protected(t, &gotOwner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ownerID, gotOwner)
}

func TestMiddleware_Rejections(t *testing.T) {
	expired, err := auth.Sign(secret, uuid.New(), -time.Hour)
	require.NoError(t, err)

	wrongKey, err := auth.Sign("other-secret", uuid.New(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"MissingHeader", ""},
		{"NotBearer", "Basic abc"},
		{"Garbage", "Bearer not-a-jwt"},
		{"Expired", "Bearer " + expired},
		{"WrongKey", "Bearer " + wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner uuid.UUID

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			protected(t, &gotOwner).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
