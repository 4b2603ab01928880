package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kowapp/internal/auth"
	"kowapp/internal/common/apperr"
	"kowapp/internal/student/handler/dto"
	"kowapp/internal/student/service"
)

type StudentHandler struct {
	students *service.StudentService
}

func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	students, err := h.students.List(r.Context(), tutorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) Add(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	var req dto.AddStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}

	created, err := h.students.Add(r.Context(), tutorID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	var req dto.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Cuerpo de la solicitud inválido."))
		return
	}

	if err := h.students.Update(r.Context(), tutorID, req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Estudiante actualizado correctamente."})
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	studentID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.students.Delete(r.Context(), tutorID, studentID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Estudiante eliminado correctamente."})
}

func (h *StudentHandler) MarkAttending(w http.ResponseWriter, r *http.Request) {
	h.setAttendance(w, r, true)
}

func (h *StudentHandler) MarkNotAttending(w http.ResponseWriter, r *http.Request) {
	h.setAttendance(w, r, false)
}

func (h *StudentHandler) setAttendance(w http.ResponseWriter, r *http.Request, attending bool) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	studentID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.students.SetAttendance(r.Context(), tutorID, studentID, attending); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Asistencia actualizada."})
}

func (h *StudentHandler) Count(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := auth.TutorFromContext(r.Context())

	count, err := h.students.Count(r.Context(), tutorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StudentCountResponse{Count: count})
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperr.New(apperr.KindValidation, "Identificador inválido.")
	}
	return id, nil
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
