// Package idgen allocates the typed identifiers used across the bank:
// a short prefix encodes the entity class, the rest comes from a UUID so
// allocations never collide across instances.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

const (
	SavingsAccountPrefix      = "SB"
	FixedDepositAccountPrefix = "FD"
	LoanAccountPrefix         = "LN"
	CustomerPrefix            = "CU"
)

// Allocator hands out globally unique, prefixed identifiers. Engines receive
// it as an injected capability and never reason about the format.
type Allocator interface {
	SavingsAccountID() string
	FixedDepositAccountID() string
	LoanAccountID() string
	CustomerID() string
}

type UUIDAllocator struct{}

func NewUUIDAllocator() *UUIDAllocator {
	return &UUIDAllocator{}
}

func (a *UUIDAllocator) SavingsAccountID() string {
	return SavingsAccountPrefix + randomSuffix()
}

func (a *UUIDAllocator) FixedDepositAccountID() string {
	return FixedDepositAccountPrefix + randomSuffix()
}

func (a *UUIDAllocator) LoanAccountID() string {
	return LoanAccountPrefix + randomSuffix()
}

func (a *UUIDAllocator) CustomerID() string {
	return CustomerPrefix + randomSuffix()
}

func randomSuffix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:10])
}
