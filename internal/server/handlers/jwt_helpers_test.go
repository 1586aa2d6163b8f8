package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:         []byte("test-secret-key"),
		AccessTokenTTL: time.Hour,
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	cfg := testJWTConfig()

	token, expiresIn, err := GenerateAccessToken(cfg, "device-1", "bms-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "device-1", claims.DeviceID)
	assert.Equal(t, "bms-agent", claims.AgentName)
	assert.Equal(t, "bmsview-sync", claims.Issuer)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	token, _, err := GenerateAccessToken(cfg, "device-1", "bms-agent")
	require.NoError(t, err)

	other := cfg
	other.Secret = []byte("different-secret")

	_, err = ValidateAccessToken(other, token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = -time.Hour

	token, _, err := GenerateAccessToken(cfg, "device-1", "bms-agent")
	require.NoError(t, err)

	_, err = ValidateAccessToken(cfg, token)
	assert.Error(t, err)
}

func TestValidateAccessToken_RejectsUnexpectedAlgorithm(t *testing.T) {
	cfg := testJWTConfig()

	// A token signed with "none" must never validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{DeviceID: "device-1"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAccessToken(cfg, tokenString)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := ValidateAccessToken(testJWTConfig(), "not.a.token")
	assert.Error(t, err)
}
