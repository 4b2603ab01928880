package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	authrepository "kowapp/internal/auth/repository"
	authservice "kowapp/internal/auth/service"
	"kowapp/internal/auth/token"
	"kowapp/internal/chat"
	"kowapp/internal/common/config"
	"kowapp/internal/common/db"
	"kowapp/internal/common/logger"
	"kowapp/internal/common/mq"
	driverhandler "kowapp/internal/driver/handler"
	driverrepository "kowapp/internal/driver/repository"
	driverservice "kowapp/internal/driver/service"
	"kowapp/internal/mail"
	requesthandler "kowapp/internal/request/handler"
	requestrepository "kowapp/internal/request/repository"
	requestservice "kowapp/internal/request/service"
	"kowapp/internal/server"
	"kowapp/internal/storage"
	studenthandler "kowapp/internal/student/handler"
	studentrepository "kowapp/internal/student/repository"
	studentservice "kowapp/internal/student/service"
	tutorhandler "kowapp/internal/tutor/handler"
	tutorrepository "kowapp/internal/tutor/repository"
	tutorservice "kowapp/internal/tutor/service"
	verificationrepository "kowapp/internal/verification/repository"
	verificationservice "kowapp/internal/verification/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger.SetServiceName("kowapp-server")
	logger.Info("startup", "Starting kowapp server...", "", "")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.NewPostgres(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pg.Close()

	if err := pg.RunMigrations("migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	rmq, err := mq.NewRabbitMQ(
		cfg.RabbitMQ.Host, cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
	)
	if err != nil {
		log.Fatalf("rabbitmq error: %v", err)
	}
	defer rmq.Close()

	publisher, err := mail.NewPublisher(rmq.Chan)
	if err != nil {
		log.Fatalf("mail queue error: %v", err)
	}

	sender := mail.NewSMTPSender(
		cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From,
	)
	worker := mail.NewWorker(rmq.Chan, sender)
	if err := worker.Start(ctx); err != nil {
		log.Fatalf("mail worker error: %v", err)
	}

	images, err := storage.NewImageStore(
		cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey,
		cfg.Storage.Bucket, cfg.Storage.UseSSL, cfg.Security.SignedURLExpiry,
	)
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}

	tokens := token.NewManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	sessionRepo := authrepository.NewSessionRepository(pg.Pool)
	sessions := authservice.NewSessionService(sessionRepo, tokens)

	tutorRepo := tutorrepository.NewTutorRepository(pg.Pool)
	codeRepo := verificationrepository.NewCodeRepository(pg.Pool)
	codes := verificationservice.NewCodeService(
		codeRepo, tutorRepo, publisher,
		cfg.Security.VerificationExpiry, cfg.Security.RecoveryExpiry,
	)
	tutors := tutorservice.NewTutorService(tutorRepo, codes)

	driverRepo := driverrepository.NewDriverRepository(pg.Pool)
	drivers := driverservice.NewDriverService(driverRepo)

	studentRepo := studentrepository.NewStudentRepository(pg.Pool)
	students := studentservice.NewStudentService(studentRepo, tutorRepo, driverRepo)

	requestRepo := requestrepository.NewRequestRepository(pg.Pool)
	requests := requestservice.NewRequestService(requestRepo)

	router := server.NewRouter(server.Deps{
		Sessions:           sessions,
		Tutors:             tutorhandler.NewTutorHandler(tutors, sessions, codes, images),
		Drivers:            driverhandler.NewDriverHandler(drivers),
		Students:           studenthandler.NewStudentHandler(students),
		Requests:           requesthandler.NewRequestHandler(requests),
		Chat:               chat.NewChatHandler(chat.NewHub()),
		LoginRatePerSecond: cfg.Security.LoginRatePerSecond,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "graceful shutdown failed", "", "", err.Error())
		}
	}()

	logger.Info("startup_complete", fmt.Sprintf("kowapp server listening on :%d", cfg.HTTP.Port), "", "")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	logger.Info("shutdown", "kowapp server stopped", "", "")
}
