package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrExamNotFound        = errors.New("exam not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrResultNotFound      = errors.New("result not found")
	ErrTagExists           = errors.New("tag name already exists")
	ErrInvalidPayload      = errors.New("invalid submission payload")
	ErrEmptyExplanation    = errors.New("explanation text or url is required")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrMissingOptions      = errors.New("single choice questions need at least one option")
	ErrUnknownTag          = errors.New("unknown tag id")
	ErrInvalidImage        = errors.New("file is not an image")
	ErrInvalidRole         = errors.New("invalid role")
)
