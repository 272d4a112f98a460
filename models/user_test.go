package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTableName(t *testing.T) {
	user := User{}
	assert.Equal(t, "users", user.TableName(), "Table name should be 'users'")
}

func TestUserPasswordRoundTrip(t *testing.T) {
	user := User{Email: "test@example.com"}

	err := user.SetPassword("wholesale-only-42")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "wholesale-only-42", user.PasswordHash, "Hash must never equal the plaintext")

	assert.True(t, user.CheckPassword("wholesale-only-42"))
	assert.False(t, user.CheckPassword("wrong-password"))
	assert.False(t, user.CheckPassword(""))
}

func TestUserPasswordHashesDiffer(t *testing.T) {
	first := User{}
	second := User{}

	assert.NoError(t, first.SetPassword("same-password"))
	assert.NoError(t, second.SetPassword("same-password"))

	// bcrypt salts per hash
	assert.NotEqual(t, first.PasswordHash, second.PasswordHash)
}

func TestAdminUserPassword(t *testing.T) {
	admin := AdminUser{Email: "admin@example.com"}

	assert.NoError(t, admin.SetPassword("back-office-pass"))
	assert.True(t, admin.CheckPassword("back-office-pass"))
	assert.False(t, admin.CheckPassword("customer-pass"))
}

func TestAdminUserTableName(t *testing.T) {
	assert.Equal(t, "admin_users", AdminUser{}.TableName())
}
