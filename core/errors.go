package core

import "errors"

var (
	ErrNotFound         = errors.New("file not found")
	ErrBanned           = errors.New("user is banned")
	ErrNotOwner         = errors.New("not an owner")
	ErrInvalidMessageID = errors.New("invalid message id")
	ErrNotStorage       = errors.New("not a storage channel file")
	ErrPostFailed       = errors.New("failed to post to channel")
)
