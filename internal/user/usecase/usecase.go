package usecase

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/user"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type userUseCase struct {
	repo       user.Repository
	sessions   auth.SessionStore
	bcryptCost int
	logger     logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, sessions auth.SessionStore, bcryptCost int, log logger.ZapLogger) user.UseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userUseCase{
		repo:       repo,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*dto.Session, error) {
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || input.Password == "" || fullName == "" {
		return nil, apperror.Validation("all_fields_required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.Validation("password_too_long")
		}
		return nil, errors.Wrap(err, "hash password")
	}

	u := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return uc.startSession(ctx, u)
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperror.Auth("invalid_credentials")
	}

	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.Auth("invalid_credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Auth("invalid_credentials")
	}

	return uc.startSession(ctx, u)
}

func (uc *userUseCase) startSession(ctx context.Context, u *model.User) (*dto.Session, error) {
	token, err := uc.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &dto.Session{Token: token, User: u}, nil
}

func (uc *userUseCase) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	userID, err := uc.sessions.Resolve(ctx, token)
	if err != nil {
		// An unreadable session is the same as no session.
		uc.logger.Warn("failed to resolve session", zap.Error(err))
		return nil, nil
	}
	if userID == 0 {
		return nil, nil
	}
	return uc.repo.FindByID(ctx, userID)
}

func (uc *userUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Delete(ctx, token)
}
