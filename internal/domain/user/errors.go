package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("email is already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
