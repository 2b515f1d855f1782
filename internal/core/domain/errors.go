package domain

import "errors"

var ErrListingNotFound = errors.New("listing not found")
var ErrReviewNotFound = errors.New("review not found")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrUsernameTaken = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
