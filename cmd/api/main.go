package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/smartexpense/smartexpense/internal/config"
	"github.com/smartexpense/smartexpense/internal/handler"
	"github.com/smartexpense/smartexpense/internal/integrations/ecb"
	"github.com/smartexpense/smartexpense/internal/middleware"
	"github.com/smartexpense/smartexpense/internal/reminder"
	"github.com/smartexpense/smartexpense/internal/repository"
	"github.com/smartexpense/smartexpense/internal/service"
	"github.com/smartexpense/smartexpense/internal/utils/email"
)

func main() {
	// Load .env when present; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg)
	h := handler.NewHandler(svc, logger)
	ecbClient := ecb.NewClient(cfg, logger)
	sender := email.NewSender(cfg, logger)

	// Start the daily reminder job
	job := reminder.NewJob(svc, sender, cfg, logger)
	if err := job.Start(); err != nil {
		logger.Fatalf("Failed to start reminder job: %v", err)
	}
	defer job.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))

	authRouter.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	authRouter.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/expenses/category-summary", h.CategorySummary).Methods("GET")
	authRouter.HandleFunc("/expenses/{id:[0-9]+}", h.DeleteExpense).Methods("DELETE")

	authRouter.HandleFunc("/expense-types", h.ListExpenseTypes).Methods("GET")
	authRouter.HandleFunc("/expense-types", h.CreateExpenseType).Methods("POST")
	authRouter.HandleFunc("/expense-types/{id:[0-9]+}", h.RenameExpenseType).Methods("PUT")
	authRouter.HandleFunc("/expense-types/{id:[0-9]+}", h.DeleteExpenseType).Methods("DELETE")

	authRouter.HandleFunc("/emi-types", h.ListEMITypes).Methods("GET")
	authRouter.HandleFunc("/emi-types", h.CreateEMIType).Methods("POST")
	authRouter.HandleFunc("/emi-types/{id:[0-9]+}", h.RenameEMIType).Methods("PUT")
	authRouter.HandleFunc("/emi-types/{id:[0-9]+}", h.DeleteEMIType).Methods("DELETE")

	authRouter.HandleFunc("/emis", h.CreateEMI).Methods("POST")
	authRouter.HandleFunc("/emis", h.ListEMIs).Methods("GET")
	authRouter.HandleFunc("/emis/{id:[0-9]+}", h.GetEMI).Methods("GET")
	authRouter.HandleFunc("/emis/{id:[0-9]+}", h.UpdateEMI).Methods("PUT")
	authRouter.HandleFunc("/emis/{id:[0-9]+}", h.DeleteEMI).Methods("DELETE")

	authRouter.HandleFunc("/recurring", h.CreateRecurring).Methods("POST")
	authRouter.HandleFunc("/recurring", h.ListRecurring).Methods("GET")
	authRouter.HandleFunc("/recurring/{id:[0-9]+}", h.UpdateRecurring).Methods("PUT")
	authRouter.HandleFunc("/recurring/{id:[0-9]+}", h.DeleteRecurring).Methods("DELETE")

	authRouter.HandleFunc("/paid-marks", h.MarkPaid).Methods("POST")
	authRouter.HandleFunc("/paid-marks", h.ListPaidMarks).Methods("GET")
	authRouter.HandleFunc("/paid-marks/check", h.CheckPaid).Methods("GET")

	authRouter.HandleFunc("/persons", h.CreatePerson).Methods("POST")
	authRouter.HandleFunc("/persons", h.ListPersons).Methods("GET")
	authRouter.HandleFunc("/persons/{id:[0-9]+}", h.RenamePerson).Methods("PATCH")
	authRouter.HandleFunc("/persons/{id:[0-9]+}", h.DeletePerson).Methods("DELETE")

	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/person/{personId:[0-9]+}", h.ListPersonTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/{id:[0-9]+}/settle", h.Settle).Methods("PUT")
	authRouter.HandleFunc("/khata/entries/{entryId:[0-9]+}", h.DeleteEntry).Methods("DELETE")
	authRouter.HandleFunc("/khata/{personId:[0-9]+}/close", h.CloseKhata).Methods("DELETE")

	authRouter.HandleFunc("/dashboard/stats", h.DashboardStats).Methods("GET")
	authRouter.HandleFunc("/dashboard/reminders", h.DashboardReminders).Methods("GET")
	authRouter.HandleFunc("/dashboard/collect-reminders", h.CollectReminders).Methods("GET")

	authRouter.HandleFunc("/reports/monthly", h.MonthlyReport).Methods("GET")
	authRouter.HandleFunc("/reports/category", h.CategoryReport).Methods("GET")
	authRouter.HandleFunc("/reports/summary", h.SummaryReport).Methods("GET")
	authRouter.HandleFunc("/reports/export", h.ExportExpenses).Methods("GET")

	authRouter.HandleFunc("/settings", h.GetSettings).Methods("GET")
	authRouter.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")
	authRouter.HandleFunc("/category-budgets", h.ListCategoryBudgets).Methods("GET")
	authRouter.HandleFunc("/category-budgets", h.SetCategoryBudget).Methods("POST", "PUT")

	// ECB reference rates endpoint
	r.HandleFunc("/rates", func(w http.ResponseWriter, r *http.Request) {
		rates, err := ecbClient.GetRates()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get rates: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(rates)
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
