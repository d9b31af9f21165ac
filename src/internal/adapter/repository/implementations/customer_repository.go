package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID string) (domain.Customer, error) {
	const query = `
SELECT customer_id, name, dob, pan, address, phone_number
FROM customers
WHERE customer_id = $1`

	var customer domain.Customer
	var dob sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&customer.CustomerID,
		&customer.Name,
		&dob,
		&customer.PAN,
		&customer.Address,
		&customer.PhoneNumber,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("customer repository record not found", logger.Fields{
				"customerId": customerID,
			})
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository get failed", err, logger.Fields{
			"customerId": customerID,
		})
		return domain.Customer{}, fmt.Errorf("get customer by id: %w", err)
	}

	if dob.Valid {
		value := dob.Time
		customer.DOB = &value
	}

	return customer, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, customerID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM customers
	WHERE customer_id = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&exists); err != nil {
		logger.Error("customer repository exists check failed", err, logger.Fields{
			"customerId": customerID,
		})
		return false, fmt.Errorf("check customer exists: %w", err)
	}

	return exists, nil
}
