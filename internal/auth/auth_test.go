package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessCodeShape(t *testing.T) {
	code, err := NewAccessCode()
	require.NoError(t, err)
	assert.Len(t, code, AccessCodeLength)
	assert.True(t, ValidAccessCode(code), "generated code %q should validate", code)
	assert.NotContains(t, code, "0")
	assert.NotContains(t, code, "O")
	assert.NotContains(t, code, "1")
	assert.NotContains(t, code, "I")
}

func TestAccessCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code, err := NewAccessCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "code %q generated twice", code)
		seen[code] = true
	}
}

func TestNormalizeAccessCode(t *testing.T) {
	assert.Equal(t, "ABCD2345", NormalizeAccessCode("  abcd2345 "))
}

func TestValidAccessCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"ABCD2345", true},
		{"ABCD234", false},  // too short
		{"ABCD23456", false}, // too long
		{"ABCD234O", false},  // ambiguous char
		{"abcd2345", false},  // lowercase is not normalized here
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidAccessCode(tt.code), "code %q", tt.code)
	}
}

func TestStaffTokenRoundTrip(t *testing.T) {
	token, err := GenerateStaffToken(testSecret, "u-1", "jane@firm.test", "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, ScopeStaff, claims.Scope)
}

func TestPortalTokenRoundTrip(t *testing.T) {
	token, err := GeneratePortalToken(testSecret, "cu-1", "c-1")
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "cu-1", claims.ClientUserID)
	assert.Equal(t, "c-1", claims.ClientID)
	assert.Equal(t, ScopePortal, claims.Scope)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateStaffToken(testSecret, "u-1", "jane@firm.test", "staff")
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter23", hash))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestStaffMiddlewareRejectsPortalToken(t *testing.T) {
	token, err := GeneratePortalToken(testSecret, "cu-1", "c-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	StaffMiddleware(testSecret)(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPortalMiddlewareRejectsStaffToken(t *testing.T) {
	token, err := GenerateStaffToken(testSecret, "u-1", "jane@firm.test", "staff")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/portal/checklists", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	PortalMiddleware(testSecret)(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareAcceptsMatchingScope(t *testing.T) {
	token, err := GenerateStaffToken(testSecret, "u-1", "jane@firm.test", "staff")
	require.NoError(t, err)

	var got *Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	StaffMiddleware(testSecret)(inner).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.UserID)
}

func TestMiddlewareMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	rec := httptest.NewRecorder()

	StaffMiddleware(testSecret)(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	adminToken, err := GenerateStaffToken(testSecret, "u-1", "jane@firm.test", "admin")
	require.NoError(t, err)
	staffToken, err := GenerateStaffToken(testSecret, "u-2", "sam@firm.test", "staff")
	require.NoError(t, err)

	handler := StaffMiddleware(testSecret)(RequireAdmin(okHandler()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/work-types", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/work-types", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
