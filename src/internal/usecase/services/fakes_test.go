package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

type fakeSavingsRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.SavingsAccount

	failUpdateFor map[string]bool
}

func newFakeSavingsRepo() *fakeSavingsRepo {
	return &fakeSavingsRepo{
		accounts:      make(map[string]domain.SavingsAccount),
		failUpdateFor: make(map[string]bool),
	}
}

func (r *fakeSavingsRepo) Create(ctx context.Context, account domain.SavingsAccount) (domain.SavingsAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.SBAccountID] = account
	return account, nil
}

func (r *fakeSavingsRepo) GetByID(ctx context.Context, sbAccountID string) (domain.SavingsAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[sbAccountID]
	if !ok {
		return domain.SavingsAccount{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r *fakeSavingsRepo) GetByCustomerID(ctx context.Context, customerID string) (domain.SavingsAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.CustomerID == customerID {
			return account, nil
		}
	}
	return domain.SavingsAccount{}, commons.ErrRecordNotFound
}

func (r *fakeSavingsRepo) CustomerHasSavingsAccount(ctx context.Context, customerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSavingsRepo) UpdateBalance(ctx context.Context, sbAccountID string, newBalance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateFor[sbAccountID] {
		return errStoreDown
	}
	account, ok := r.accounts[sbAccountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	account.Balance = newBalance
	r.accounts[sbAccountID] = account
	return nil
}

func (r *fakeSavingsRepo) balance(sbAccountID string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[sbAccountID].Balance
}

type fakeTxnRepo struct {
	mu         sync.Mutex
	records    []domain.SavingsTransaction
	nextID     int64
	failRecord bool
}

func newFakeTxnRepo() *fakeTxnRepo {
	return &fakeTxnRepo{}
}

func (r *fakeTxnRepo) Record(ctx context.Context, sbAccountID string, transactionType domain.TransactionType, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRecord {
		return errStoreDown
	}
	r.nextID++
	r.records = append(r.records, domain.SavingsTransaction{
		TransactionID:   r.nextID,
		SBAccountID:     sbAccountID,
		TransactionDate: time.Now(),
		TransactionType: transactionType,
		Amount:          amount,
	})
	return nil
}

func (r *fakeTxnRepo) ListByAccountID(ctx context.Context, sbAccountID string) ([]domain.SavingsTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SavingsTransaction
	for _, record := range r.records {
		if record.SBAccountID == sbAccountID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) ListByDateRange(ctx context.Context, sbAccountID string, startDate, endDate time.Time) ([]domain.SavingsTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SavingsTransaction
	for _, record := range r.records {
		if record.SBAccountID == sbAccountID && !record.TransactionDate.Before(startDate) && !record.TransactionDate.After(endDate) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) TotalByType(ctx context.Context, sbAccountID string, transactionType domain.TransactionType) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, record := range r.records {
		if record.SBAccountID == sbAccountID && record.TransactionType == transactionType {
			total = total.Add(record.Amount)
		}
	}
	return total, nil
}

func (r *fakeTxnRepo) CountByAccountID(ctx context.Context, sbAccountID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, record := range r.records {
		if record.SBAccountID == sbAccountID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTxnRepo) LastTransactionDate(ctx context.Context, sbAccountID string) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *time.Time
	for _, record := range r.records {
		if record.SBAccountID != sbAccountID {
			continue
		}
		when := record.TransactionDate
		if latest == nil || when.After(*latest) {
			latest = &when
		}
	}
	return latest, nil
}

func (r *fakeTxnRepo) recordsOfType(transactionType domain.TransactionType) []domain.SavingsTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SavingsTransaction
	for _, record := range r.records {
		if record.TransactionType == transactionType {
			out = append(out, record)
		}
	}
	return out
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.OpenDate.IsZero() {
		account.OpenDate = time.Now()
	}
	r.accounts[account.AccountID] = account
	return account, nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, accountID string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) Exists(ctx context.Context, accountID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accounts[accountID]
	return ok, nil
}

func (r *fakeAccountRepo) GetByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Account
	for _, account := range r.accounts {
		if account.CustomerID == customerID {
			out = append(out, account)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Close(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	if account.Status == domain.AccountStatusClosed {
		return commons.ErrAccountAlreadyClosed
	}
	now := time.Now()
	account.Status = domain.AccountStatusClosed
	account.ClosedDate = &now
	r.accounts[accountID] = account
	return nil
}

type fakeTransferRepo struct {
	mu         sync.Mutex
	transfers  []domain.FundTransfer
	nextID     int64
	failCreate bool
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{}
}

func (r *fakeTransferRepo) Create(ctx context.Context, transfer domain.FundTransfer) (domain.FundTransfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return domain.FundTransfer{}, errStoreDown
	}
	r.nextID++
	transfer.TransferID = r.nextID
	if transfer.TransferDate.IsZero() {
		transfer.TransferDate = time.Now()
	}
	r.transfers = append(r.transfers, transfer)
	return transfer, nil
}

func (r *fakeTransferRepo) ListByCustomerID(ctx context.Context, customerID string) ([]domain.FundTransfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FundTransfer
	for _, transfer := range r.transfers {
		if transfer.FromCustomerID == customerID || transfer.ToCustomerID == customerID {
			out = append(out, transfer)
		}
	}
	return out, nil
}

func (r *fakeTransferRepo) DailyTransferTotal(ctx context.Context, fromAccountID string, day time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, transfer := range r.transfers {
		if transfer.FromAccountID != fromAccountID || transfer.Status != domain.TransferStatusSuccess {
			continue
		}
		y1, m1, d1 := transfer.TransferDate.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			total = total.Add(transfer.Amount)
		}
	}
	return total, nil
}

type fakeLoanRepo struct {
	mu    sync.Mutex
	loans map[string]domain.LoanAccount
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[string]domain.LoanAccount)}
}

func (r *fakeLoanRepo) Create(ctx context.Context, account domain.LoanAccount) (domain.LoanAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans[account.LNAccountID] = account
	return account, nil
}

func (r *fakeLoanRepo) GetByID(ctx context.Context, lnAccountID string) (domain.LoanAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loan, ok := r.loans[lnAccountID]
	if !ok {
		return domain.LoanAccount{}, commons.ErrRecordNotFound
	}
	return loan, nil
}

type fakeLoanTxnRepo struct {
	mu         sync.Mutex
	records    []domain.LoanTransaction
	nextID     int64
	failCreate bool
}

func newFakeLoanTxnRepo() *fakeLoanTxnRepo {
	return &fakeLoanTxnRepo{}
}

func (r *fakeLoanTxnRepo) Create(ctx context.Context, transaction domain.LoanTransaction) (domain.LoanTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return domain.LoanTransaction{}, errStoreDown
	}
	r.nextID++
	transaction.TransactionID = r.nextID
	if transaction.EMIDate.IsZero() {
		transaction.EMIDate = time.Now()
	}
	r.records = append(r.records, transaction)
	return transaction, nil
}

func (r *fakeLoanTxnRepo) GetLatestByLoanID(ctx context.Context, lnAccountID string) (domain.LoanTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.LoanTransaction
	for i := range r.records {
		record := r.records[i]
		if record.LNAccountID != lnAccountID {
			continue
		}
		if latest == nil || record.TransactionID > latest.TransactionID {
			latest = &record
		}
	}
	if latest == nil {
		return domain.LoanTransaction{}, commons.ErrRecordNotFound
	}
	return *latest, nil
}

func (r *fakeLoanTxnRepo) ListByLoanID(ctx context.Context, lnAccountID string) ([]domain.LoanTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.LoanTransaction
	for _, record := range r.records {
		if record.LNAccountID == lnAccountID {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeFDRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.FixedDepositAccount
}

func newFakeFDRepo() *fakeFDRepo {
	return &fakeFDRepo{accounts: make(map[string]domain.FixedDepositAccount)}
}

func (r *fakeFDRepo) Create(ctx context.Context, account domain.FixedDepositAccount) (domain.FixedDepositAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.FDAccountID] = account
	return account, nil
}

func (r *fakeFDRepo) GetByID(ctx context.Context, fdAccountID string) (domain.FixedDepositAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[fdAccountID]
	if !ok {
		return domain.FixedDepositAccount{}, commons.ErrRecordNotFound
	}
	return account, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]domain.Customer)}
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, customerID string) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[customerID]
	if !ok {
		return domain.Customer{}, commons.ErrRecordNotFound
	}
	return customer, nil
}

func (r *fakeCustomerRepo) Exists(ctx context.Context, customerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.customers[customerID]
	return ok, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.UserLogin
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.UserLogin)}
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (domain.UserLogin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return domain.UserLogin{}, commons.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, username string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return commons.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	r.users[username] = user
	return nil
}

type fixedIDs struct {
	savingsID  string
	fdID       string
	loanID     string
	customerID string
}

func (f fixedIDs) SavingsAccountID() string      { return f.savingsID }
func (f fixedIDs) FixedDepositAccountID() string { return f.fdID }
func (f fixedIDs) LoanAccountID() string         { return f.loanID }
func (f fixedIDs) CustomerID() string            { return f.customerID }
