package server

import (
	"context"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kowapp/internal/auth"
	authservice "kowapp/internal/auth/service"
	"kowapp/internal/chat"
	driverhandler "kowapp/internal/driver/handler"
	requesthandler "kowapp/internal/request/handler"
	studenthandler "kowapp/internal/student/handler"
	tutorhandler "kowapp/internal/tutor/handler"
)

// Deps carries every handler the router mounts.
type Deps struct {
	Sessions *authservice.SessionService
	Tutors   *tutorhandler.TutorHandler
	Drivers  *driverhandler.DriverHandler
	Students *studenthandler.StudentHandler
	Requests *requesthandler.RequestHandler
	Chat     *chat.ChatHandler

	// LoginRatePerSecond throttles the credential endpoints per client IP.
	LoginRatePerSecond float64
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	lmt := tollbooth.NewLimiter(deps.LoginRatePerSecond, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Hour,
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public surface.
	r.Post("/insert-tutor", deps.Tutors.Register)
	r.Method(http.MethodPost, "/login", tollbooth.LimitFuncHandler(lmt, deps.Tutors.Login))
	r.Post("/insert-driver", deps.Drivers.Register)
	r.Post("/verify-email", deps.Tutors.VerifyEmail)
	r.Method(http.MethodPost, "/identify", tollbooth.LimitFuncHandler(lmt, deps.Tutors.Identify))
	r.Post("/verify-recovery-code", deps.Tutors.VerifyRecoveryCode)

	// The chat relay has no auth handshake.
	r.Get("/ws", deps.Chat.Serve)

	// Everything below requires an authenticated session.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(deps.Sessions))

		pr.Post("/logout", deps.Tutors.Logout)
		pr.Get("/get-tutor-details", deps.Tutors.Details)
		pr.Delete("/delete-tutor", deps.Tutors.Delete)
		pr.Post("/upload-profile-picture", deps.Tutors.UploadProfilePicture)
		pr.Get("/get-tutor-profile-picture", deps.Tutors.GetProfilePicture)

		pr.Get("/list-drivers", deps.Drivers.List)

		pr.Get("/list-students", deps.Students.List)
		pr.Post("/add-student", deps.Students.Add)
		pr.Post("/update-student", deps.Students.Update)
		pr.Delete("/delete-student/{id}", deps.Students.Delete)
		pr.Post("/asist-student/{id}", deps.Students.MarkAttending)
		pr.Post("/no-asist-student/{id}", deps.Students.MarkNotAttending)
		pr.Get("/student-count", deps.Students.Count)

		pr.Post("/create-request", deps.Requests.Create)
		pr.Get("/list-requests", deps.Requests.List)
	})

	return r
}

// requestID tags each request so log lines can be correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), "request_id", uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
