package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrAccountNotActive = errors.New("Account is not active")
var ErrAccountAlreadyClosed = errors.New("Account is already closed")
var ErrSelfTransfer = errors.New("Cannot transfer to the same account")
var ErrDailyLimitExceeded = errors.New("Daily transfer limit exceeded")
var ErrUnauthorized = errors.New("Not authorized for this account")
