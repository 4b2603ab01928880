package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"kowapp/internal/auth"
	authservice "kowapp/internal/auth/service"
	"kowapp/internal/common/apperr"
	"kowapp/internal/tutor/handler/dto"
	"kowapp/internal/tutor/service"
	verificationservice "kowapp/internal/verification/service"
)

const maxProfileImageBytes = 10 << 20

// ImageStore is the slice of object storage the handler needs.
type ImageStore interface {
	UploadProfileImage(ctx context.Context, tutorID int, filename, contentType string, r io.Reader, size int64) (string, error)
	SignedURL(ctx context.Context, objectName string) (string, error)
}

type TutorHandler struct {
	tutors   *service.TutorService
	sessions *authservice.SessionService
	codes    *verificationservice.CodeService
	images   ImageStore
}

func NewTutorHandler(tutors *service.TutorService, sessions *authservice.SessionService, codes *verificationservice.CodeService, images ImageStore) *TutorHandler {
	return &TutorHandler{tutors: tutors, sessions: sessions, codes: codes, images: images}
}

func (h *TutorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterTutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}

	created, err := h.tutors.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterTutorResponse{
		Message: "Usuario registrado correctamente",
		TutorID: created.ID,
	})
}

func (h *TutorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "Datos de inicio de sesión inválidos.", err))
		return
	}

	tutor, err := h.tutors.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	signed, err := h.sessions.EstablishSession(r.Context(), tutor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   h.sessions.TokenTTL(),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Inicio de sesión exitoso",
		Tutor:   tutor,
	})
}

func (h *TutorHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := auth.TutorFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.KindAuthMissing, "Acceso denegado. No se proporcionó token."))
		return
	}

	if err := h.sessions.EndSession(r.Context(), tutorID); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Sesión cerrada correctamente."})
}

func (h *TutorHandler) Details(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	tutor, err := h.tutors.Profile(r.Context(), tutorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tutor)
}

func (h *TutorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	if err := h.tutors.Delete(r.Context(), tutorID); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Cuenta eliminada correctamente."})
}

func (h *TutorHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "Datos de verificación inválidos.", err))
		return
	}

	ok, err := h.codes.RedeemVerificationCode(r.Context(), req.Email, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, apperr.New(apperr.KindValidation, "Código inválido o expirado."))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Correo verificado correctamente."})
}

func (h *TutorHandler) Identify(w http.ResponseWriter, r *http.Request) {
	var req dto.IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "Correo electrónico inválido.", err))
		return
	}

	if err := h.codes.IssueRecoveryCode(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Código de recuperación enviado."})
}

func (h *TutorHandler) VerifyRecoveryCode(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRecoveryCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "Datos de recuperación inválidos.", err))
		return
	}

	// The temporary password travels by email only, never in the response.
	if _, err := h.codes.RedeemRecoveryCode(r.Context(), req.Email, req.Code); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Se ha enviado una contraseña temporal a tu correo.",
	})
}

func (h *TutorHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	if err := r.ParseMultipartForm(maxProfileImageBytes); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "No se pudo leer la imagen.", err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "Falta el archivo de imagen.", err))
		return
	}
	defer file.Close()

	objectName, err := h.images.UploadProfileImage(
		r.Context(),
		tutorID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "No se pudo guardar la imagen.", err))
		return
	}

	if err := h.tutors.SaveProfileImageURL(r.Context(), tutorID, objectName); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Imagen de perfil actualizada."})
}

func (h *TutorHandler) GetProfilePicture(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	tutor, err := h.tutors.Profile(r.Context(), tutorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if tutor.ProfileImageURL == "" {
		writeError(w, apperr.New(apperr.KindNotFound, "No hay imagen de perfil."))
		return
	}

	url, err := h.images.SignedURL(r.Context(), tutor.ProfileImageURL)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "No se pudo generar la URL de la imagen.", err))
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfilePictureResponse{URL: url})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	body := map[string]string{"error": "error interno"}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body["error"] = appErr.Message
		if appErr.Field != "" {
			body["field"] = appErr.Field
		}
	}
	writeJSON(w, apperr.Status(err), body)
}
