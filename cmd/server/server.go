package server

import (
	"context"
	"encoding/json"
	"net/http"

	"example.com/socialhub/internal/imagehost"
	config "example.com/socialhub/internal/init"
	"example.com/socialhub/internal/logger"
	"example.com/socialhub/internal/middleware"
	"example.com/socialhub/internal/store"
)

type Server struct {
	store  store.StoreInterface
	images imagehost.Client
	cfg    *config.Config
}

var logg = logger.New()

// routes builds the API mux. Signup, signin, profile lookup and post reads
// are public; everything else requires a bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	secret := []byte(s.cfg.SecretKey)
	auth := func(h http.HandlerFunc) http.Handler {
		return middleware.JWTAuth(secret, h)
	}

	mux.HandleFunc("POST /api/v1/user/signup", s.signupHandler)
	mux.HandleFunc("POST /api/v1/user/signin", s.signinHandler)
	mux.HandleFunc("GET /api/v1/user/profile/{query}", s.profileHandler)
	mux.Handle("POST /api/v1/user/follow/{id}", auth(s.followHandler))
	mux.Handle("PUT /api/v1/user/update", auth(s.updateHandler))
	mux.Handle("PUT /api/v1/user/freeze", auth(s.freezeHandler))

	mux.Handle("POST /api/v1/post/create", auth(s.createPostHandler))
	mux.HandleFunc("GET /api/v1/post/{id}", s.getPostHandler)
	mux.Handle("DELETE /api/v1/post/{id}", auth(s.deletePostHandler))
	mux.Handle("PUT /api/v1/post/like/{id}", auth(s.likePostHandler))
	mux.Handle("PUT /api/v1/post/reply/{id}", auth(s.replyPostHandler))

	mux.Handle("POST /api/v1/message/send", auth(s.sendMessageHandler))
	mux.Handle("GET /api/v1/message/{id}", auth(s.conversationHandler))

	return middleware.CORS(mux)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func Run(ctx context.Context, st store.StoreInterface, images imagehost.Client, cfg *config.Config) {
	s := &Server{
		store:  st,
		images: images,
		cfg:    cfg,
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout, // prevent slowloris attacks
		WriteTimeout: cfg.WriteTimeout,
	}

	// --- Start server in a goroutine ---
	go func() {
		var err error
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			logg.Info("server", "Starting HTTPS server on "+cfg.ServerAddr)
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			logg.Info("server", "Starting HTTP server on "+cfg.ServerAddr)
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logg.Error("server", "Server stopped unexpectedly", err)
		}
	}()

	// --- Graceful shutdown ---
	<-ctx.Done()
	logg.Info("server", "Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server", "Error during server shutdown", err)
	} else {
		logg.Info("server", "Server stopped gracefully")
	}
}

// --- Response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}
