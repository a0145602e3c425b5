package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken(7, "admin", "Trần Thị B")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Trần Thị B", claims.Name)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := New("secret", time.Hour).GenerateToken(7, "staff", "")
	require.NoError(t, err)

	_, err = New("other", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	token, err := New("secret", -time.Minute).GenerateToken(7, "staff", "")
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}
