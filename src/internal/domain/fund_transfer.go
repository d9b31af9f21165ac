package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferStatusSuccess TransferStatus = "SUCCESS"
	TransferStatusFailed  TransferStatus = "FAILED"
)

// FundTransfer records a transfer attempt. It backs the transfer-history view
// and the daily-limit aggregate, which only counts SUCCESS rows.
type FundTransfer struct {
	TransferID     int64
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	TransferDate   time.Time
	FromCustomerID string
	ToCustomerID   string
	Status         TransferStatus
	Remarks        string
}
