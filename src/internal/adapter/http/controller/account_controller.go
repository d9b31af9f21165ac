package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

type SavingsAccountService interface {
	OpenSavings(ctx context.Context, req models.OpenSavingsRequest) (commons.Response[models.OpenSavingsResponse], error)
	CloseSavings(ctx context.Context, sbAccountID string) (commons.Response[models.CloseAccountResponse], error)
	GetAccountsByCustomer(ctx context.Context, customerID string) (commons.Response[[]domain.Account], error)
}

type FixedDepositService interface {
	OpenFixedDeposit(ctx context.Context, req models.OpenFixedDepositRequest) (commons.Response[models.OpenFixedDepositResponse], error)
}

type AccountController struct {
	savings SavingsAccountService
	fds     FixedDepositService
}

func NewAccountController(savings SavingsAccountService, fds FixedDepositService) *AccountController {
	return &AccountController{savings: savings, fds: fds}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/accounts/savings", wrap(c.openSavings))
	mux.Handle("/accounts/fixed-deposit", wrap(c.openFixedDeposit))
	mux.Handle("/accounts/close", wrap(c.closeAccount))
	mux.Handle("/accounts", wrap(c.listAccounts))
}

func (c *AccountController) openSavings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.OpenSavingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.OpenSavingsResponse](commons.ReasonValidation, "invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.savings.OpenSavings(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromReason(response.Reason)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) openFixedDeposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.OpenFixedDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.OpenFixedDepositResponse](commons.ReasonValidation, "invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.fds.OpenFixedDeposit(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromReason(response.Reason)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) closeAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.CloseAccountResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.savings.CloseSavings(r.Context(), r.URL.Query().Get("accountId"))
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

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]domain.Account](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.savings.GetAccountsByCustomer(r.Context(), r.URL.Query().Get("customerId"))
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
