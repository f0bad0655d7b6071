package errors

import "errors"

var (
	ErrUserNotFound    = errors.New("user with provided email was not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrSessionNotFound = errors.New("session was not found")
	ErrUserExists      = errors.New("user already exists")

	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD form")

	ErrEmptyEmail       = errors.New("email is empty")
	ErrSelfFriend       = errors.New("cannot befriend yourself")
	ErrAlreadyFriends   = errors.New("already friends")
	ErrRequestPending   = errors.New("friend request already pending")
	ErrNotFriends       = errors.New("opponent is not in your friends list")
	ErrSelfChallenge    = errors.New("cannot challenge yourself")
	ErrUnknownChallenge = errors.New("unknown challenge type")
	ErrUnknownResponse  = errors.New("response must be accept or decline")
)
