package service

import "errors"

var (
	ErrRequiredFields      = errors.New("required fields are missing")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrProtectedUser       = errors.New("the bootstrap administrator can not be renamed, demoted or deleted")
	ErrNoAdminForReassign  = errors.New("no other administrator to take over the documents")
	ErrInvalidTransition   = errors.New("status can not be changed anymore")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus       = errors.New("unknown status")
	ErrInvalidRole         = errors.New("unknown role")
	ErrInvalidParent       = errors.New("news item can not be its own parent")
	ErrApplicationNotFound = errors.New("no application for this username")
	ErrUploadTooLarge      = errors.New("uploaded file is too large")
	ErrUploadForbidden     = errors.New("file type is not allowed")
)
