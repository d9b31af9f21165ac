package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/controller"
	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/middleware"
	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/http/router"
	"github.com/MrFranklink/bank-backoffice/src/internal/adapter/repository/implementations"
	"github.com/MrFranklink/bank-backoffice/src/internal/config"
	"github.com/MrFranklink/bank-backoffice/src/internal/idgen"
	"github.com/MrFranklink/bank-backoffice/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := implementations.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := implementations.NewAccountRepository(db)
	savingsRepo := implementations.NewSavingsAccountRepository(db)
	txnRepo := implementations.NewSavingsTransactionRepository(db)
	transferRepo := implementations.NewFundTransferRepository(db)
	loanRepo := implementations.NewLoanAccountRepository(db)
	loanTxnRepo := implementations.NewLoanTransactionRepository(db)
	fdRepo := implementations.NewFixedDepositRepository(db)
	customerRepo := implementations.NewCustomerRepository(db)
	userRepo := implementations.NewUserLoginRepository(db)

	locker := services.NewAccountLocker()
	ids := idgen.NewUUIDAllocator()

	transactionService := services.NewSavingsTransactionService(savingsRepo, txnRepo, locker)
	transferService := services.NewFundTransferService(transferRepo, savingsRepo, accountRepo, txnRepo, locker)
	loanPaymentService := services.NewLoanPaymentService(loanRepo, loanTxnRepo, savingsRepo, txnRepo, accountRepo, locker)
	loanAccountService := services.NewLoanAccountService(accountRepo, loanRepo, customerRepo, ids)
	savingsAccountService := services.NewSavingsAccountService(accountRepo, savingsRepo, txnRepo, customerRepo, ids)
	fixedDepositService := services.NewFixedDepositService(accountRepo, fdRepo, customerRepo, ids)
	authService := services.NewAuthService(userRepo)

	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)

	mux := router.New(
		authMiddleware,
		controller.NewTransactionController(transactionService),
		controller.NewTransferController(transferService),
		controller.NewLoanController(loanPaymentService, loanAccountService),
		controller.NewAccountController(savingsAccountService, fixedDepositService),
		controller.NewAuthController(authService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve http: %v", err)
	}
}
