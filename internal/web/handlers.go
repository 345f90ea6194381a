// Package web binds the HTTP routes to the auth flow and the ledger service.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/kmalov/cashlogger/internal/auth"
	"github.com/kmalov/cashlogger/internal/forms"
	"github.com/kmalov/cashlogger/internal/ledger"
	"github.com/kmalov/cashlogger/internal/middleware"
	"github.com/kmalov/cashlogger/internal/session"
)

// Flash texts shown by the auth flow.
const (
	flashEmailTaken    = "You've already signed up with that email, log in instead!"
	flashEmailUnknown  = "That email does not exist, please try again."
	flashWrongPassword = "Password incorrect, please try again."
)

// Handler holds the services the routes dispatch to.
type Handler struct {
	authenticator auth.Authenticator
	users         auth.UserStorage
	sessions      *session.Manager
	ledger        *ledger.Service
	logger        *slog.Logger
}

// New creates the web handler.
func New(authenticator auth.Authenticator, users auth.UserStorage, sessions *session.Manager, ledgerSvc *ledger.Service, logger *slog.Logger) *Handler {
	return &Handler{
		authenticator: authenticator,
		users:         users,
		sessions:      sessions,
		ledger:        ledgerSvc,
		logger:        logger,
	}
}

// Routes builds the router with all application endpoints.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics, middleware.Logging)

	r.Handle("/", middleware.OptionalAuth(h.sessions, http.HandlerFunc(h.home))).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.signup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", h.login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodGet)
	r.Handle("/history", middleware.RequireAuth(h.sessions, http.HandlerFunc(h.history))).Methods(http.MethodGet)
	r.Handle("/add-transaction", middleware.RequireAuth(h.sessions, http.HandlerFunc(h.addTransaction))).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/metrics", middleware.MetricsHandler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)

	return r
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, title string) pageData {
	return pageData{
		Title:    title,
		Flash:    h.sessions.TakeFlash(w, r),
		LoggedIn: middleware.GetUserID(r.Context()) != 0,
	}
}

// redact strips credentials from submitted values before they are echoed
// back into a re-rendered form.
func redact(values url.Values) url.Values {
	clean := url.Values{}
	for k, v := range values {
		if k == "password" {
			continue
		}
		clean[k] = v
	}
	return clean
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Home")
	if userID := middleware.GetUserID(r.Context()); userID != 0 {
		if user, err := h.users.GetUserByID(r.Context(), userID); err == nil && user != nil {
			data.UserName = user.Name
		}
	}
	render(w, "index.html", data)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Sign Up")

	if r.Method == http.MethodGet {
		render(w, "signup.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form, errs := forms.ParseSignup(r.PostForm)
	if !errs.Valid() {
		data.Errors = errs
		data.Values = redact(r.PostForm)
		render(w, "signup.html", data)
		return
	}

	user, err := h.authenticator.Register(r.Context(), form.Email, form.Name, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			h.sessions.Flash(w, flashEmailTaken)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, auth.ErrPasswordRequired):
			data.Errors = forms.Errors{"password": err.Error()}
			data.Values = redact(r.PostForm)
			render(w, "signup.html", data)
		default:
			h.logger.Error("Signup failed", "email", form.Email, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	if err := h.sessions.Establish(w, user); err != nil {
		h.logger.Error("Failed to establish session", "user_id", user.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Log In")

	if r.Method == http.MethodGet {
		render(w, "login.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form, errs := forms.ParseLogin(r.PostForm)
	if !errs.Valid() {
		data.Errors = errs
		data.Values = redact(r.PostForm)
		render(w, "login.html", data)
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailNotFound):
			h.sessions.Flash(w, flashEmailUnknown)
		case errors.Is(err, auth.ErrWrongPassword):
			h.sessions.Flash(w, flashWrongPassword)
		default:
			h.logger.Error("Login failed", "email", form.Email, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		h.logger.Warn("Login rejected", "email", form.Email, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Establish(w, user); err != nil {
		h.logger.Error("Failed to establish session", "user_id", user.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/add-transaction", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	data := h.page(w, r, "History")

	txs, err := h.ledger.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load history", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	totals, err := h.ledger.TotalsByDate(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to aggregate totals", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data.Transactions = txs
	data.Totals = totals
	for _, dt := range totals {
		data.Balance += dt.Total
	}
	render(w, "history.html", data)
}

func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	data := h.page(w, r, "Add Transaction")

	if r.Method == http.MethodGet {
		render(w, "add_transaction.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form, errs := forms.ParseTransaction(r.PostForm)
	if !errs.Valid() {
		data.Errors = errs
		data.Values = r.PostForm
		render(w, "add_transaction.html", data)
		return
	}

	if _, err := h.ledger.Add(r.Context(), userID, ledger.Input{
		Name:        form.Name,
		Magnitude:   form.Magnitude,
		Type:        form.Type,
		Description: form.Description,
		Date:        form.Date,
	}); err != nil {
		h.logger.Error("Failed to add transaction", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
