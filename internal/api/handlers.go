// Package api exposes HTTP handlers for the fitness journal service.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"example.com/fitjournal/internal/domain"
	"example.com/fitjournal/internal/observability"
)

// errBadBody marks request bodies that could not be parsed at all, as opposed
// to well-formed bodies that fail validation.
var errBadBody = errors.New("unable to parse body")

// Repositories bundles the per-kind instantiations of the ownership-scoped
// store for handler wiring.
type Repositories struct {
	Exercises domain.OwnedRepository[domain.Exercise, domain.ExercisePatch]
	Goals     domain.OwnedRepository[domain.Goal, domain.GoalPatch]
	Progress  domain.OwnedRepository[domain.Progress, domain.ProgressPatch]
	Workouts  domain.OwnedRepository[domain.WorkoutSession, domain.WorkoutSessionPatch]
	Plans     domain.OwnedRepository[domain.WorkoutPlan, domain.WorkoutPlanPatch]
}

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	accounts  *domain.Accounts
	exercises *resourceHandler[domain.Exercise, domain.ExercisePatch]
	goals     *resourceHandler[domain.Goal, domain.GoalPatch]
	progress  *resourceHandler[domain.Progress, domain.ProgressPatch]
	workouts  *resourceHandler[domain.WorkoutSession, domain.WorkoutSessionPatch]
	plans     *resourceHandler[domain.WorkoutPlan, domain.WorkoutPlanPatch]
}

// NewHandler builds a Handler over the accounts service and resource stores.
func NewHandler(accounts *domain.Accounts, repos Repositories) *Handler {
	return &Handler{
		accounts:  accounts,
		exercises: newExerciseHandler(repos.Exercises),
		goals:     newGoalHandler(repos.Goals),
		progress:  newProgressHandler(repos.Progress),
		workouts:  newWorkoutHandler(repos.Workouts),
		plans:     newPlanHandler(repos.Plans),
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", h.register)
	mux.HandleFunc("/api/auth/token", h.token)
	h.exercises.register(mux, "/api/exercises/")
	h.goals.register(mux, "/api/goals/")
	h.progress.register(mux, "/api/progress/")
	h.workouts.register(mux, "/api/workouts/")
	h.plans.register(mux, "/api/plans/")
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

// Validate ensures request correctness.
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is not a valid address")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// UserView exposes account details. The password hash never appears here.
type UserView struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", errBadBody.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "email_taken", "Email already registered")
			return
		}
		serverError(w, err)
		return
	}

	observability.RecordRegistration()
	writeJSON(w, http.StatusCreated, UserView{ID: user.ID, Email: user.Email, FullName: user.FullName})
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", errBadBody.Error())
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "username and password are required")
		return
	}

	token, err := h.accounts.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			observability.RecordLogin(false)
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "unauthorized", "Incorrect email or password")
			return
		}
		serverError(w, err)
		return
	}

	observability.RecordLogin(true)
	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

// serverError hides store failure detail from the client; it only gets logged.
func serverError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "server_error", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
