package fakeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type errorBody struct {
	Error string `json:"error"`
}

// NewRouter mounts the REST surface under apiPrefix, plus GET /health at the
// root.
func NewRouter(s *Store, apiPrefix string, log logging.Logger) http.Handler {
	if log == nil {
		log = logging.Nop()
	}
	h := &handlers{store: s, log: log.With("module", "fakeapi")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	api := func(r chi.Router) {
		r.Post("/login", h.login)
		r.Get("/settings", h.getSettings)
		r.Post("/settings", h.saveSettings)

		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Put("/orders/{id}", h.updateOrder)
		r.Patch("/orders/{id}", h.updateOrder)

		r.Get("/ti/tickets", h.listTickets)
		r.Post("/ti/tickets", h.createTicket)
		r.Put("/ti/tickets/{id}", h.updateTicket)
		r.Patch("/ti/tickets/{id}", h.updateTicket)
	}

	if p := "/" + strings.Trim(apiPrefix, "/"); p != "/" {
		r.Route(p, api)
	} else {
		api(r)
	}
	return r
}

type handlers struct {
	store *Store
	log   logging.Logger
}

func (h *handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get("X-Request-Id"),
			"elapsed", time.Since(started))
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}
	id, err := h.store.Login(creds.Email, creds.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (h *handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings())
}

func (h *handlers) saveSettings(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if !decode(w, r, &p) {
		return
	}
	saved, err := h.store.SaveSettings(p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func filterFrom(r *http.Request) models.Filter {
	q := r.URL.Query()
	return models.Filter{
		Status:      models.Status(q.Get("status")),
		Sector:      q.Get("sector"),
		NameOrStore: q.Get("nameOrStore"),
		Q:           q.Get("q"),
	}
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Orders(filterFrom(r)))
}

func (h *handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var n models.NewOrder
	if !decode(w, r, &n) {
		return
	}
	o, err := h.store.CreateOrder(n)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *handlers) updateOrder(w http.ResponseWriter, r *http.Request) {
	var p models.Patch
	if !decode(w, r, &p) {
		return
	}
	o, err := h.store.UpdateOrder(models.ID(chi.URLParam(r, "id")), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *handlers) listTickets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Tickets(filterFrom(r)))
}

func (h *handlers) createTicket(w http.ResponseWriter, r *http.Request) {
	var n models.NewTicket
	if !decode(w, r, &n) {
		return
	}
	t, err := h.store.CreateTicket(n)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *handlers) updateTicket(w http.ResponseWriter, r *http.Request) {
	var p models.Patch
	if !decode(w, r, &p) {
		return
	}
	t, err := h.store.UpdateTicket(models.ID(chi.URLParam(r, "id")), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
