package dto

import "github.com/fekuna/omnipos-storefront/internal/model"

// Session is returned by register and login. Token goes into the cookie.
type Session struct {
	Token string
	User  *model.User
}
