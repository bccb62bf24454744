// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/sec"
)

func signToken(t *testing.T, key *rsa.PrivateKey, issuer string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		UserID:   "user-1",
		Username: "mara",
		Role:     string(sec.RoleEditor),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

/*
TestTokenVerifier covers valid, expired and foreign-issuer tokens.
*/
func TestTokenVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := sec.NewTokenVerifierFromKey(&key.PublicKey, "folio.app")

	t.Run("valid", func(t *testing.T) {
		claims, err := verifier.VerifyToken(signToken(t, key, "folio.app", time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "mara", claims.Username)
		assert.Equal(t, string(sec.RoleEditor), claims.Role)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := verifier.VerifyToken(signToken(t, key, "folio.app", -time.Minute))
		assert.Error(t, err)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		_, err := verifier.VerifyToken(signToken(t, key, "someone.else", time.Hour))
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.VerifyToken("not-a-token")
		assert.Error(t, err)
	})
}

/*
TestUserRole_AtLeast checks the staff role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleViewer.AtLeast(sec.RoleEditor))
	assert.False(t, sec.UserRole("intern").AtLeast(sec.RoleViewer))
}
