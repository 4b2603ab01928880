package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kowapp/internal/auth"
	"kowapp/internal/common/apperr"
	"kowapp/internal/request/handler/dto"
	"kowapp/internal/request/service"
)

type RequestHandler struct {
	requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	var req dto.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}

	requestID, err := h.requests.Create(r.Context(), tutorID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateRequestResponse{
		Message:   "Solicitud creada correctamente",
		RequestID: requestID,
	})
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	requests, err := h.requests.List(r.Context(), tutorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
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
