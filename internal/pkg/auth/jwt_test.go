package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ambassador-platform/internal/config"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.JWT.Issuer = "test"
	return cfg
}

func TestJWTManager_TokenPairRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	access, refresh, err := manager.GenerateTokenPair("maria@example.com", "María", "Embajador", "Colombia")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, "María", claims.Name)
	assert.Equal(t, "Embajador", claims.Role)
	assert.Equal(t, "Colombia", claims.Country)

	refreshClaims, err := manager.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestJWTManager_TokenTypeEnforced(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	access, refresh, err := manager.GenerateTokenPair("maria@example.com", "María", "Embajador", "Colombia")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	access, _, err := manager.GenerateTokenPair("maria@example.com", "María", "Embajador", "Colombia")
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	access, _, err := manager.GenerateTokenPair("maria@example.com", "María", "Embajador", "Colombia")
	require.NoError(t, err)

	_, err = manager.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractTokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)

	assert.NoError(t, CheckPassword("s3cret!", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("abc", 4)
	assert.Error(t, err)
}
