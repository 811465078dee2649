package usecase

import (
	"context"
	"errors"
	"time"

	"hospitron/internal/converter"
	"hospitron/internal/delivery/dto"
	"hospitron/internal/domain/entity"
	"hospitron/internal/domain/repository"
	"hospitron/internal/service"
	"hospitron/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = service.ErrInvalidCredentials
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionNotFound    = repository.ErrSessionNotFound
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID, userID string) error
	// Authenticate resolves a session token to its live session.
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
	CurrentUser(ctx context.Context, sessionID string) (*dto.UserResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	verifier     service.CredentialVerifier
	sessionRepo  repository.SessionRepository
	jwtService   *jwt.JWTService
	auditService service.AuditService
	listUsecase  AppointmentListUsecase
	now          func() time.Time
}

func NewAuthUsecase(
	log *logrus.Logger,
	verifier service.CredentialVerifier,
	sessionRepo repository.SessionRepository,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
	listUsecase AppointmentListUsecase,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		verifier:     verifier,
		sessionRepo:  sessionRepo,
		jwtService:   jwtService,
		auditService: auditService,
		listUsecase:  listUsecase,
		now:          time.Now,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.verifier.Authenticate(ctx, service.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to verify credentials: %+v", err)
		return nil, err
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := u.jwtService.GenerateSessionToken(sessionID, user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	session := &entity.Session{
		ID:        sessionID,
		User:      *user,
		CreatedAt: u.now(),
		ExpiresAt: expiresAt,
	}
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save session: %+v", err)
		return nil, err
	}

	// Audit failures are logged by the service and never fail the login.
	_ = u.auditService.RecordSignIn(ctx, *user, sessionID)

	u.log.Infof("User %s signed in", user.Email)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
		User:      *converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, sessionID, userID string) error {
	if err := u.sessionRepo.Clear(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to clear session: %+v", err)
		return err
	}

	u.listUsecase.Close(sessionID)

	_ = u.auditService.RecordSignOut(ctx, userID, sessionID)

	return nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := u.sessionRepo.Load(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		u.log.Warnf("Failed to load session: %+v", err)
		return nil, err
	}

	// A token must belong to the user its session was created for.
	if session.User.ID != claims.UserID {
		return nil, ErrInvalidToken
	}

	return session, nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, sessionID string) (*dto.UserResponse, error) {
	session, err := u.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		u.log.Warnf("Failed to load session: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(&session.User), nil
}
