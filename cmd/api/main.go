package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/rakitahr/hrms-backend-go/internal/config"
	appHTTP "github.com/rakitahr/hrms-backend-go/internal/handler/http"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/database"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/jwt"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/mailer"
	"github.com/rakitahr/hrms-backend-go/internal/repository/postgresql"
	authService "github.com/rakitahr/hrms-backend-go/internal/service/auth"
	employeeService "github.com/rakitahr/hrms-backend-go/internal/service/employee"
	leaveService "github.com/rakitahr/hrms-backend-go/internal/service/leave"
	notificationService "github.com/rakitahr/hrms-backend-go/internal/service/notification"
	payrollService "github.com/rakitahr/hrms-backend-go/internal/service/payroll"
	rosterService "github.com/rakitahr/hrms-backend-go/internal/service/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)
	payrollRecordRepo := postgresql.NewPayrollRecordRepository(db)
	payrollSettingsRepo := postgresql.NewPayrollSettingsRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	mail := mailer.NewMailer(cfg.SMTP)

	notifier := notificationService.NewNotificationService(notificationRepo, mail)
	notificationListSvc := notificationService.NewListService(notificationRepo)
	rosterSvc := rosterService.NewRosterService(rosterRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, rosterSvc, notifier, cfg.App.FrontendURL)
	payrollSvc := payrollService.NewPayrollService(postgresql.NewTxManager(db), payrollRecordRepo, payrollSettingsRepo, employeeRepo, notifier)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	authSvc := authService.NewAuthService(userRepo, jwtService)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewRosterHandler(rosterSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewNotificationHandler(notificationListSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
