package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/models"
	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/domain"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

type LoanPaymentService interface {
	PayEMI(ctx context.Context, req models.LoanPaymentRequest) (commons.Response[models.LoanPaymentResponse], error)
	GetOutstanding(ctx context.Context, lnAccountID string) (commons.Response[decimal.Decimal], error)
	GetPaymentHistory(ctx context.Context, lnAccountID string) (commons.Response[[]domain.LoanTransaction], error)
}

type LoanAccountService interface {
	OpenLoan(ctx context.Context, req models.OpenLoanRequest) (commons.Response[models.OpenLoanResponse], error)
}

type LoanController struct {
	payments LoanPaymentService
	accounts LoanAccountService
}

func NewLoanController(payments LoanPaymentService, accounts LoanAccountService) *LoanController {
	return &LoanController{payments: payments, accounts: accounts}
}

func (c *LoanController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/loans/open", wrap(c.open))
	mux.Handle("/loans/pay", wrap(c.pay))
	mux.Handle("/loans/outstanding", wrap(c.outstanding))
	mux.Handle("/loans/history", wrap(c.history))
}

func (c *LoanController) open(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.OpenLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.OpenLoanResponse](commons.ReasonValidation, "invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.accounts.OpenLoan(r.Context(), req)
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

func (c *LoanController) pay(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var req models.LoanPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.LoanPaymentResponse](commons.ReasonValidation, "invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.payments.PayEMI(r.Context(), req)
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

func (c *LoanController) outstanding(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[decimal.Decimal](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.payments.GetOutstanding(r.Context(), r.URL.Query().Get("lnAccountId"))
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

func (c *LoanController) history(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]domain.LoanTransaction](commons.ReasonValidation, "method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.payments.GetPaymentHistory(r.Context(), r.URL.Query().Get("lnAccountId"))
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
