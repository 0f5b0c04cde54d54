package user

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.Session, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.Session, error)
	// CurrentUser returns nil without error when the token is absent or stale.
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}
