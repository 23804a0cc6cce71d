package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JibinB02/pehlahath/internal/entity"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret")

	user := &entity.User{
		ID:    42,
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  entity.RoleVolunteer,
	}

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)

	caller, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, caller.ID)
	assert.Equal(t, "asha@example.com", caller.Email)
	assert.Equal(t, entity.RoleVolunteer, caller.Role)
	assert.False(t, caller.IsAuthority())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a").GenerateToken(&entity.User{ID: 1, Role: entity.RoleAuthority})
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret").ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordManager(t *testing.T) {
	manager := NewPasswordManager()

	hash, err := manager.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, manager.VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, manager.VerifyPassword(hash, "wrong password"))
}
