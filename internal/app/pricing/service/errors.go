package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user with this username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrPricingNotFound    = errors.New("pricing record not found")
	ErrInvalidPrice       = errors.New("price must be a non-negative decimal")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenBlacklisted   = errors.New("token is blacklisted")
)
