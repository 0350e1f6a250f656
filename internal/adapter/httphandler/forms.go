package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
)

// POST /v1/login JSON {"email","password"} (200 OK, 400 Bad request)
// POST /v1/contact JSON {"name","email","topic","message"} (200 OK, 400 Bad request)
// POST /v1/reviews JSON {"name","email","rating","comment"} (200 OK, 400 Bad request)
//
// Simulated UI-only flows: validation mirrors the storefront forms,
// success performs no side effect and stores nothing.

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FormsHandler struct{}

func RegisterForms(mux *http.ServeMux) {
	h := FormsHandler{}
	mux.HandleFunc("POST /v1/login", h.PostLogin)
	mux.HandleFunc("POST /v1/contact", h.PostContact)
	mux.HandleFunc("POST /v1/reviews", h.PostReview)
}

func (h FormsHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "FormsHandler.PostLogin"
	log := slog.With("op", op)

	var req LoginRequest
	if !decodeForm(w, r, log, &req) {
		return
	}

	errs := map[string]string{}
	switch email := strings.TrimSpace(req.Email); {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	}

	if len(errs) > 0 {
		writeFormErrors(w, log, "Please fill in all required fields correctly.", errs)
		return
	}
	writeJSON(w, FormResponse{Message: "Login successful!"}, log)
}

func (h FormsHandler) PostContact(w http.ResponseWriter, r *http.Request) {
	const op = "FormsHandler.PostContact"
	log := slog.With("op", op)

	var req ContactRequest
	if !decodeForm(w, r, log, &req) {
		return
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required"
	}
	switch email := strings.TrimSpace(req.Email); {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(req.Topic) == "" {
		errs["topic"] = "Topic is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		errs["message"] = "Message is required"
	}

	if len(errs) > 0 {
		writeFormErrors(w, log, "Please fill in all required fields correctly.", errs)
		return
	}
	writeJSON(w, FormResponse{
		Message: "Thank you for your message! We will contact you soon.",
	}, log)
}

func (h FormsHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "FormsHandler.PostReview"
	log := slog.With("op", op)

	var req ReviewRequest
	if !decodeForm(w, r, log, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Rating == 0 || req.Comment == "" {
		writeFormErrors(w, log, "Please fill in all fields", nil)
		return
	}
	if !emailRe.MatchString(req.Email) {
		writeFormErrors(w, log, "Please enter a valid email address", nil)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeFormErrors(w, log, "Rating must be between 1 and 5", nil)
		return
	}

	writeJSON(w, FormResponse{
		Message: "Thank you for your review! It has been submitted successfully.",
	}, log)
}

func decodeForm(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return false
	}
	return true
}

func writeFormErrors(
	w http.ResponseWriter, log *slog.Logger, msg string, errs map[string]string,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	resp := FormResponse{Message: msg, Errors: errs}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
