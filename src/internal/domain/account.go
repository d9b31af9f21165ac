package domain

import "time"

type AccountType string

const (
	AccountTypeSaving       AccountType = "SAVING"
	AccountTypeFixedDeposit AccountType = "FIXED-DEPOSIT"
	AccountTypeLoan         AccountType = "LOAN"
)

type AccountStatus string

const (
	AccountStatusOpen   AccountStatus = "OPEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

// Account is the directory row every money-movement operation consults for
// existence and status. Status moves OPEN -> CLOSED exactly once.
type Account struct {
	AccountID    string
	AccountType  AccountType
	CustomerID   string
	OpenedBy     string
	OpenedByRole Role
	OpenDate     time.Time
	Status       AccountStatus
	ClosedDate   *time.Time
}
