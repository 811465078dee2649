package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospitron/config"
	"hospitron/internal/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Credentials struct {
	Email    string
	Password string
}

// CredentialVerifier decides whether credentials identify a known user.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, creds Credentials) (*entity.User, error)
}

// StaticAccount is a user with a plaintext password, hashed on construction.
type StaticAccount struct {
	User     entity.User
	Password string
}

type hashedAccount struct {
	user entity.User
	hash []byte
}

type staticCredentialVerifier struct {
	accounts  map[string]hashedAccount
	dummyHash []byte
}

func NewStaticCredentialVerifier(accounts ...StaticAccount) (CredentialVerifier, error) {
	v := &staticCredentialVerifier{accounts: make(map[string]hashedAccount, len(accounts))}

	for _, account := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", account.User.Email, err)
		}
		v.accounts[normalizeEmail(account.User.Email)] = hashedAccount{user: account.User, hash: hash}
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	v.dummyHash = dummy

	return v, nil
}

// NewDemoCredentialVerifier accepts only the configured demo account.
func NewDemoCredentialVerifier(cfg config.DemoUserConfig) (CredentialVerifier, error) {
	role := entity.Role(cfg.Role)
	if !role.IsValid() {
		role = entity.RoleDoctor
	}
	return NewStaticCredentialVerifier(StaticAccount{
		User: entity.User{
			ID:    cfg.ID,
			Email: cfg.Email,
			Name:  cfg.Name,
			Role:  role,
		},
		Password: cfg.Password,
	})
}

func (v *staticCredentialVerifier) Authenticate(ctx context.Context, creds Credentials) (*entity.User, error) {
	account, ok := v.accounts[normalizeEmail(creds.Email)]
	if !ok {
		// Equalize timing with the known-account path.
		bcrypt.CompareHashAndPassword(v.dummyHash, []byte(creds.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(account.hash, []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := account.user
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
