package service

import "errors"

// Error taxonomy shared by all services. The API layer maps these to HTTP
// status codes with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrAlreadyExists  = errors.New("already exists")
	ErrRelationAbsent = errors.New("relation does not exist")
	ErrSelfFollow     = errors.New("cannot follow yourself")

	ErrNoIngredients       = errors.New("at least one ingredient is required")
	ErrDuplicateIngredient = errors.New("ingredients cannot repeat")
	ErrIngredientNotFound  = errors.New("ingredient with the given id does not exist")
	ErrInvalidAmount       = errors.New("amount must be at least 1")
	ErrInvalidCookingTime  = errors.New("cooking time must be at least 1 minute")

	ErrInvalidImageEncoding   = errors.New("malformed base64 image")
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	ErrInvalidImageData       = errors.New("invalid base64 image data")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidUsername    = errors.New("username may only contain letters, digits and @/./+/-/_")
)
