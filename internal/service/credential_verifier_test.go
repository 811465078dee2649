package service

import (
	"context"
	"testing"

	"hospitron/config"
	"hospitron/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoVerifier(t *testing.T) CredentialVerifier {
	t.Helper()
	v, err := NewDemoCredentialVerifier(config.DemoUserConfig{
		ID:       "1",
		Email:    "doctor@hospital.com",
		Name:     "Dr. John Smith",
		Role:     "Doctor",
		Password: "doctor123",
	})
	require.NoError(t, err)
	return v
}

func TestAuthenticate_Success(t *testing.T) {
	user, err := demoVerifier(t).Authenticate(context.Background(), Credentials{
		Email:    "  Doctor@Hospital.com ",
		Password: "doctor123",
	})

	require.NoError(t, err)
	assert.Equal(t, &entity.User{ID: "1", Email: "doctor@hospital.com", Name: "Dr. John Smith", Role: entity.RoleDoctor}, user)
}

func TestAuthenticate_Rejects(t *testing.T) {
	v := demoVerifier(t)

	cases := []Credentials{
		{Email: "doctor@hospital.com", Password: "wrong"},
		{Email: "nurse@hospital.com", Password: "doctor123"},
		{Email: "", Password: ""},
	}
	for _, creds := range cases {
		user, err := v.Authenticate(context.Background(), creds)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestNewDemoCredentialVerifier_UnknownRoleFallsBackToDoctor(t *testing.T) {
	v, err := NewDemoCredentialVerifier(config.DemoUserConfig{
		ID: "7", Email: "x@hospital.com", Name: "X", Role: "Janitor", Password: "pw",
	})
	require.NoError(t, err)

	user, err := v.Authenticate(context.Background(), Credentials{Email: "x@hospital.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, user.Role)
}

func TestStaticCredentialVerifier_MultipleAccounts(t *testing.T) {
	v, err := NewStaticCredentialVerifier(
		StaticAccount{User: entity.User{ID: "1", Email: "a@h.com", Role: entity.RoleNurse}, Password: "a"},
		StaticAccount{User: entity.User{ID: "2", Email: "b@h.com", Role: entity.RoleAdmin}, Password: "b"},
	)
	require.NoError(t, err)

	user, err := v.Authenticate(context.Background(), Credentials{Email: "b@h.com", Password: "b"})
	require.NoError(t, err)
	assert.Equal(t, "2", user.ID)

	_, err = v.Authenticate(context.Background(), Credentials{Email: "b@h.com", Password: "a"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
