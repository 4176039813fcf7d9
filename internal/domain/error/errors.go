package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest     = 4000
	CodeInvalidAmount      = 4001
	CodeInsufficientFunds  = 4002
	CodeInvalidPin         = 4003
	CodePinNotSet          = 4004
	CodeAccountFrozen      = 4005
	CodeAccountDeleted     = 4006
	CodeInvalidWebhookURL  = 4007
	CodeSelfTransfer       = 4008
	CodeInvalidCredentials = 4010
	CodeForbidden          = 4030
	CodeAccountNotFound    = 4040
	CodeTokenNotFound      = 4041
	CodeGiftCodeNotFound   = 4042
	CodeUserNotFound       = 4043
	CodeNotFound           = 4044
	CodeNoJob              = 4045
	CodeDuplicate          = 4090
	CodeConflict           = 4091
	CodeTokenExpired       = 4100
	CodeGiftCodeExpired    = 4101
	CodeAlreadyConsumed    = 4220
	CodeAlreadyRedeemed    = 4221
	CodeAccountLocked      = 4230
	CodeCooldownActive     = 4290

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidAmount is returned when an amount is not positive, carries more
	// than three fraction digits or exceeds the configured ceiling
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a debit would take a balance below zero
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidPin is returned when the supplied PIN does not match the stored hash
	ErrInvalidPin = errors.New("invalid pin")

	// ErrPinNotSet is returned when a PIN-gated operation targets an account without a PIN
	ErrPinNotSet = errors.New("no pin configured for this account")

	// ErrAccountLocked is returned while an account is inside its PIN lockout window
	ErrAccountLocked = errors.New("account is locked due to failed pin attempts")

	// ErrAccountFrozen is returned when either side of a movement is frozen
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrAccountDeleted is returned when either side of a movement is deleted
	ErrAccountDeleted = errors.New("account is deleted")

	// ErrSelfTransfer is returned when source and destination are the same account
	ErrSelfTransfer = errors.New("cannot move funds to the same account")

	// ErrInvalidWebhookURL is returned when a token webhook URL fails validation
	ErrInvalidWebhookURL = errors.New("invalid webhook url")

	// ErrForbidden is returned when the actor does not own the touched resource
	// and is not privileged to bypass ownership
	ErrForbidden = errors.New("operation not permitted")

	// ErrUnsupportedAccountType is returned when a PIN operation targets a
	// non-personal account
	ErrUnsupportedAccountType = errors.New("pin authorization is only available for personal accounts")

	// ErrUnsupportedRecipient is returned when a payment token names a
	// recipient type the token flow does not support yet
	ErrUnsupportedRecipient = errors.New("unsupported recipient type")

	// ErrInvalidCredentials is returned on bad login or registration input
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrTokenNotFound is returned when the requested payment token doesn't exist
	ErrTokenNotFound = errors.New("payment token not found")

	// ErrGiftCodeNotFound is returned when the requested gift code doesn't exist
	ErrGiftCodeNotFound = errors.New("gift code not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested ledger entry doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrTokenExpired is returned when a payment token is past its expiry
	ErrTokenExpired = errors.New("payment token has expired")

	// ErrGiftCodeExpired is returned when a gift code is past its expiry
	ErrGiftCodeExpired = errors.New("gift code has expired")

	// ErrAlreadyConsumed is returned when a payment token is no longer in the issued state
	ErrAlreadyConsumed = errors.New("payment token has already been used")

	// ErrAlreadyRedeemed is returned when a gift code has already been redeemed
	ErrAlreadyRedeemed = errors.New("gift code has already been redeemed")

	// ErrCooldownActive is returned when a salary claim arrives inside the cooldown window
	ErrCooldownActive = errors.New("salary cooldown is still active")

	// ErrNoJob is returned when a salary claim arrives for a user with no job assigned
	ErrNoJob = errors.New("no job assigned")

	// ErrDuplicate is returned when a unique value collides with an existing row
	ErrDuplicate = errors.New("resource already exists")

	// ErrConflict is returned when a concurrent operation prevented this one from completing
	ErrConflict = errors.New("conflicting concurrent operation")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidPin):
		return CodeInvalidPin
	case errors.Is(err, ErrPinNotSet):
		return CodePinNotSet
	case errors.Is(err, ErrAccountFrozen):
		return CodeAccountFrozen
	case errors.Is(err, ErrAccountDeleted):
		return CodeAccountDeleted
	case errors.Is(err, ErrInvalidWebhookURL):
		return CodeInvalidWebhookURL
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrUnsupportedAccountType),
		errors.Is(err, ErrUnsupportedRecipient):
		return CodeForbidden
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrTokenNotFound):
		return CodeTokenNotFound
	case errors.Is(err, ErrGiftCodeNotFound):
		return CodeGiftCodeNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound), errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicate):
		return CodeDuplicate
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrTokenExpired):
		return CodeTokenExpired
	case errors.Is(err, ErrGiftCodeExpired):
		return CodeGiftCodeExpired
	case errors.Is(err, ErrAlreadyConsumed):
		return CodeAlreadyConsumed
	case errors.Is(err, ErrAlreadyRedeemed):
		return CodeAlreadyRedeemed
	case errors.Is(err, ErrAccountLocked):
		return CodeAccountLocked
	case errors.Is(err, ErrCooldownActive):
		return CodeCooldownActive
	case errors.Is(err, ErrNoJob):
		return CodeNoJob
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for failed debits
type InsufficientFundsError struct {
	AccountUUID string
	Required    string
	Available   string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s: required %s, available %s",
		e.AccountUUID, e.Required, e.Available)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "insufficient_funds",
		"account_uuid": e.AccountUUID,
		"required":     e.Required,
		"available":    e.Available,
		"error_code":   CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(accountUUID, required, available string) error {
	return &InsufficientFundsError{
		AccountUUID: accountUUID,
		Required:    required,
		Available:   available,
	}
}

// AccountLockedError carries the lockout deadline alongside the sentinel
type AccountLockedError struct {
	AccountUUID string
	Until       string
}

// Error implements the error interface
func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account %s is locked until %s", e.AccountUUID, e.Until)
}

// Is checks if the target error is an ErrAccountLocked
func (e *AccountLockedError) Is(target error) bool {
	return target == ErrAccountLocked
}

// LogFields returns a map of fields for structured logging
func (e *AccountLockedError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "account_locked",
		"account_uuid": e.AccountUUID,
		"locked_until": e.Until,
		"error_code":   CodeAccountLocked,
	}
}

// NewAccountLockedError creates a new detailed account lockout error
func NewAccountLockedError(accountUUID, until string) error {
	return &AccountLockedError{AccountUUID: accountUUID, Until: until}
}

// LedgerError represents a failure while executing a ledger operation
type LedgerError struct {
	Operation string
	FromUUID  string
	ToUUID    string
	Amount    string
	Reason    string
	Err       error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger %s failed (from: %s, to: %s, amount: %s): %s - %v",
		e.Operation, e.FromUUID, e.ToUUID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"operation":  e.Operation,
		"from_uuid":  e.FromUUID,
		"to_uuid":    e.ToUUID,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed ledger error
func NewLedgerError(operation, fromUUID, toUUID, amount, reason string, err error) error {
	return &LedgerError{
		Operation: operation,
		FromUUID:  fromUUID,
		ToUUID:    toUUID,
		Amount:    amount,
		Reason:    reason,
		Err:       err,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAccountLockedError checks if the error is a PIN lockout error
func IsAccountLockedError(err error) bool {
	return errors.Is(err, ErrAccountLocked)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrGiftCodeNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsFrozenOrDeletedError checks if the error is caused by an unusable account
func IsFrozenOrDeletedError(err error) bool {
	return errors.Is(err, ErrAccountFrozen) || errors.Is(err, ErrAccountDeleted)
}

// IsConflictError checks if the error came from a concurrent operation
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}
