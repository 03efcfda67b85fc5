package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopdemo/authkit/pkg/auth"
	"github.com/shopdemo/authkit/pkg/logger"
	"github.com/shopdemo/authkit/pkg/session"
)

// Client-facing message strings. The credential failure message is shared
// by every login failure path so responses cannot be used to probe which
// check failed.
const (
	msgCredentialsRequired = "Login ID and password are required"
	msgInvalidCredentials  = "Invalid Login ID or password"
	msgMethodNotAllowed    = "Method not allowed"
	msgInvalidAction       = "Invalid action specified"
	msgMissingFields       = "Missing required fields"
	msgWeakPassword        = "Password must be at least 8 characters long"
	msgLoginIDTaken        = "Login ID is already taken"
	msgEmailTaken          = "Email is already registered"
	msgInternalError       = "Internal server error"
	msgLogoutFailed        = "Logout failed"
)

// CredentialService is the slice of auth.Service the handlers need.
type CredentialService interface {
	Authenticate(ctx context.Context, loginID, password string) (*auth.User, error)
	Register(ctx context.Context, loginID, email, password string) (*auth.User, error)
}

// SessionManager is the slice of session.Manager the handlers need.
type SessionManager interface {
	Authenticate(ctx context.Context, w http.ResponseWriter, userID uuid.UUID, loginID, email string) (*session.Session, error)
	Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Session, session.State)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Handler serves the action-selector auth endpoint.
type Handler struct {
	creds    CredentialService
	sessions SessionManager
	log      *slog.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the logger for internal failure detail.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// NewHandler creates the auth endpoint handler.
func NewHandler(creds CredentialService, sessions SessionManager, opts ...Option) *Handler {
	h := &Handler{
		creds:    creds,
		sessions: sessions,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Router returns the handler wired for mounting, with CORS applied. A
// preflight request is answered by the CORS middleware and never reaches
// the dispatcher.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(CORS)
	r.HandleFunc("/", h.dispatch)
	return r
}

// dispatch routes by the action query parameter, enforcing one allowed
// method per action.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "login":
		h.withMethod(w, r, http.MethodPost, h.handleLogin)
	case "check":
		h.withMethod(w, r, http.MethodGet, h.handleCheck)
	case "logout":
		h.withMethod(w, r, http.MethodPost, h.handleLogout)
	case "register":
		h.withMethod(w, r, http.MethodPost, h.handleRegister)
	default:
		writeError(w, http.StatusBadRequest, msgInvalidAction)
	}
}

func (h *Handler) withMethod(w http.ResponseWriter, r *http.Request, method string, next http.HandlerFunc) {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}
	next(w, r)
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}
	if req.LoginID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	ctx := r.Context()

	user, err := h.creds.Authenticate(ctx, req.LoginID, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if _, err := h.sessions.Authenticate(ctx, w, user.ID, user.LoginID, user.Email); err != nil {
		h.log.ErrorContext(ctx, "failed to establish session",
			logger.Error(err),
			logger.UserID(user.ID.String()),
			logger.Action("login"),
		)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User: userPayload{
			ID:      user.ID.String(),
			LoginID: user.LoginID,
			Email:   user.Email,
		},
	})
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	sess, state := h.sessions.Resolve(r.Context(), w, r)
	if state != session.StateValid {
		writeJSON(w, http.StatusOK, checkResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Authenticated: true,
		User: &userPayload{
			ID:      sess.UserID.String(),
			LoginID: sess.LoginID,
			Email:   sess.Email,
		},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.log.ErrorContext(r.Context(), "failed to destroy session",
			logger.Error(err),
			logger.Action("logout"),
		)
		writeError(w, http.StatusInternalServerError, msgLogoutFailed)
		return
	}

	writeJSON(w, http.StatusOK, logoutResponse{Success: true})
}

type registerRequest struct {
	LoginID  string `json:"loginId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	ctx := r.Context()

	user, err := h.creds.Register(ctx, req.LoginID, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingField):
			writeError(w, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, msgWeakPassword)
		case errors.Is(err, auth.ErrLoginIDTaken):
			writeError(w, http.StatusBadRequest, msgLoginIDTaken)
		case errors.Is(err, auth.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, msgEmailTaken)
		default:
			h.log.ErrorContext(ctx, "registration failed",
				logger.Error(err),
				logger.Action("register"),
			)
			writeError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		Success: true,
		User: userPayload{
			ID:      user.ID.String(),
			LoginID: user.LoginID,
			Email:   user.Email,
		},
	})
}
