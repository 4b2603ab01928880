package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kowapp/internal/common/apperr"
	"kowapp/internal/driver/handler/dto"
	"kowapp/internal/driver/service"
)

type DriverHandler struct {
	drivers *service.DriverService
}

func NewDriverHandler(drivers *service.DriverService) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

func (h *DriverHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}

	created, err := h.drivers.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterDriverResponse{
		Message:  "Conductor registrado correctamente",
		DriverID: created.ID,
	})
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.drivers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
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
