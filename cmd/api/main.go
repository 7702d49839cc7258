package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/andina-hr/timeclock-backend-go/internal/config"
	appHTTP "github.com/andina-hr/timeclock-backend-go/internal/handler/http"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/andina-hr/timeclock-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/andina-hr/timeclock-backend-go/internal/service/auth"
	"github.com/andina-hr/timeclock-backend-go/internal/service/punchfile"
	"github.com/andina-hr/timeclock-backend-go/internal/service/reconcile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	loc := cfg.Timezone()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	exceptionRepo := postgresql.NewExceptionRepository(db)
	timeOffRepo := postgresql.NewTimeOffRepository(db)
	punchRepo := postgresql.NewPunchEventRepository(db)
	workEntryRepo := postgresql.NewWorkEntryRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authService := serviceAuth.NewAuthService(userRepo, jwtService, logger)
	importService := punchfile.NewPunchImportService(employeeRepo, punchRepo, loc, logger)
	reconcileService := reconcile.NewReconcileService(
		employeeRepo,
		calendarRepo,
		assignmentRepo,
		exceptionRepo,
		timeOffRepo,
		punchRepo,
		workEntryRepo,
		reconcile.OptionsFromConfig(cfg.Reconcile),
		loc,
		logger,
	)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService)
	punchHandler := appHTTP.NewPunchHandler(importService)
	reconciliationHandler := appHTTP.NewReconciliationHandler(reconcileService)
	workEntryHandler := appHTTP.NewWorkEntryHandler(workEntryRepo)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		punchHandler,
		reconciliationHandler,
		workEntryHandler,
		cfg.App.AllowedOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
