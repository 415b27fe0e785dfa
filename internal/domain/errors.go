package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotConnected        = errors.New("wallet not connected")
	ErrInvalidState        = errors.New("operation not valid in current state")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyClaimed      = errors.New("winnings already claimed")
	ErrUserRejected        = errors.New("connection rejected by user")
)
