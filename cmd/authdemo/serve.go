package main

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	auth0 "github.com/hookauth/go-auth0-strategy"
	"github.com/hookauth/go-auth0-strategy/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo service",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logrus.New()

		app := service.NewApp()
		app.Use(entityService, service.NewMemoryService(entityID))
		app.Use("auth0-keys", service.NewMemoryService("kid"))

		cfg := auth0.Config{
			Domain:   domain,
			Service:  entityService,
			EntityID: entityID,
			Create:   create,
		}
		if audience != "" {
			cfg.JWTOptions.Audience = []string{audience}
		}

		strategy, err := auth0.New(cfg, auth0.WithLogger(auth0.NewLogrusLogger(log)))
		if err != nil {
			return err
		}

		auth := auth0.NewAuthService(app, "authentication")
		if err := auth.Register("auth0", strategy); err != nil {
			return err
		}

		app.On("login", func(args ...any) {
			log.Info("login")
		})

		srv := &server{
			app:       app,
			auth:      auth,
			log:       log,
			protect:   auth0.NewAuthenticateHook(auth, "auth0"),
			after:     service.Chain(auth0.NewConnectionHook(), auth0.NewEventsHook(app)),
			whitelist: auth0.NewIPWhitelist(),
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Post("/authentication", srv.login)
		r.Get("/users", srv.findUsers)
		r.Post("/webhooks/keys", srv.ingestKey)

		log.WithField("addr", addr).Info("starting authdemo")
		return http.ListenAndServe(addr, r)
	},
}

type server struct {
	app       *service.App
	auth      *auth0.AuthService
	log       *logrus.Logger
	protect   service.Hook
	after     service.Hook
	whitelist *auth0.IPWhitelist
}

// callParams translates an incoming HTTP request into call params the hooks
// understand.
func callParams(r *http.Request) service.Params {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return service.Params{
		Provider: "rest",
		Headers:  map[string]string{"Authorization": r.Header.Get("Authorization")},
		IP:       ip,
	}
}

// login authenticates the supplied bearer token and runs the after hooks so
// login events fire exactly as they would for a persistent transport.
func (s *server) login(w http.ResponseWriter, r *http.Request) {
	params := callParams(r)

	strategy, _ := s.auth.Strategy("auth0")
	creds, err := strategy.ParseCredentials(params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.auth.AuthenticateWith(r.Context(), creds, params, "auth0")
	if err != nil {
		s.writeError(w, err)
		return
	}

	after := service.Context{
		Type:    service.After,
		Service: s.auth.Path(),
		Method:  "create",
		Params:  params,
		Result:  result,
	}
	if _, err := s.after(r.Context(), after); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, result)
}

// findUsers lists the user service, gated by the authenticate hook.
func (s *server) findUsers(w http.ResponseWriter, r *http.Request) {
	c := service.Context{
		Type:    service.Before,
		Service: entityService,
		Method:  "find",
		Params:  callParams(r),
	}

	c, err := s.protect(r.Context(), c)
	if err != nil {
		s.writeError(w, err)
		return
	}

	svc, err := s.app.Service(entityService)
	if err != nil {
		s.writeError(w, err)
		return
	}
	recs, err := svc.Find(r.Context(), c.Params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, recs)
}

// ingestKey accepts a {kid, pem} record pushed by the identity provider.
// Only calls from the provider's published addresses are accepted.
func (s *server) ingestKey(w http.ResponseWriter, r *http.Request) {
	c := service.Context{
		Type:    service.Before,
		Service: "auth0-keys",
		Method:  "create",
		Params:  callParams(r),
	}
	if !s.whitelist.FromProvider(c) {
		s.writeJSON(w, http.StatusForbidden, map[string]any{"message": "Forbidden"})
		return
	}

	var key service.Record
	if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid payload"})
		return
	}

	svc, err := s.app.Service("auth0-keys")
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := svc.Create(r.Context(), key, c.Params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("writing response")
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, auth0.ErrNotAuthenticated) {
		status = http.StatusUnauthorized
	}

	s.log.WithError(err).Warn("request failed")
	s.writeJSON(w, status, map[string]any{
		"message": "Not authenticated",
		"code":    auth0.ErrorCode(err),
	})
}
