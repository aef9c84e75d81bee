package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/browse"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/metrics"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/prefs"
)

// Config holds the listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(cfg Config, browser *browse.Browser, prefs *prefs.Prefs, m *metrics.Metrics, logger *slog.Logger) *http.Server {
	server := newHTTPServer(browser, prefs, m, logger)
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.routes(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(server.log.Handler(), slog.LevelError),
	}
}

type httpServer struct {
	browser *browse.Browser
	prefs   *prefs.Prefs
	metrics *metrics.Metrics
	log     *slog.Logger
}

func newHTTPServer(browser *browse.Browser, prefs *prefs.Prefs, m *metrics.Metrics, logger *slog.Logger) *httpServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &httpServer{
		browser: browser,
		prefs:   prefs,
		metrics: m,
		log:     logger,
	}
}

func (h *httpServer) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID, h.observe)

	r.HandleFunc("/cars", h.GetCars).Methods(http.MethodGet)
	// before /cars/{id} so "brands" is not taken for an id
	r.HandleFunc("/cars/brands", h.GetBrands).Methods(http.MethodGet)
	r.HandleFunc("/cars/{id}", h.GetCar).Methods(http.MethodGet)

	r.HandleFunc("/wishlist", h.GetWishlist).Methods(http.MethodGet)
	r.HandleFunc("/wishlist/{id}", h.GetWishlistMember).Methods(http.MethodGet)
	r.HandleFunc("/wishlist/{id}/toggle", h.ToggleWishlist).Methods(http.MethodPost)

	r.HandleFunc("/preferences/dark-mode", h.GetDarkMode).Methods(http.MethodGet)
	r.HandleFunc("/preferences/dark-mode", h.PutDarkMode).Methods(http.MethodPut)

	r.HandleFunc("/healthcheck", h.Healthcheck).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}
	return r
}
