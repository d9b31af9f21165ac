package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

type TransactionService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error)
	GetTransactionHistory(ctx context.Context, sbAccountID string, startDate, endDate *time.Time) (commons.Response[[]models.TransactionHistoryItem], error)
	GetAccountSummary(ctx context.Context, sbAccountID string) (commons.Response[models.AccountSummaryResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/transactions/deposit", wrap(c.deposit))
	mux.Handle("/transactions/withdraw", wrap(c.withdraw))
	mux.Handle("/transactions/history", wrap(c.history))
	mux.Handle("/transactions/summary", wrap(c.summary))
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Deposit(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromReason(response.Reason)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse](commons.ReasonValidation, "invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Withdraw(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromReason(response.Reason)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) history(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.TransactionHistoryItem](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		response := commons.ErrorResponse[[]models.TransactionHistoryItem](commons.ReasonValidation, "validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetTransactionHistory(r.Context(), r.URL.Query().Get("sbAccountId"), startDate, endDate)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromReason(response.Reason)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) summary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.AccountSummaryResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.service.GetAccountSummary(r.Context(), r.URL.Query().Get("sbAccountId"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromReason(response.Reason)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// parseDateRange reads optional startDate/endDate query parameters. Both must
// be present for a range query; either alone is rejected.
func parseDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")
	if startRaw == "" && endRaw == "" {
		return nil, nil, nil
	}
	if startRaw == "" || endRaw == "" {
		return nil, nil, errInvalidDateRange
	}

	startDate, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return nil, nil, errInvalidDateRange
	}
	endDate, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return nil, nil, errInvalidDateRange
	}
	// Make the end date inclusive of the whole day.
	endDate = endDate.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &startDate, &endDate, nil
}
