// Package dashboard serves email engagement metrics and hosts the tracking
// endpoints that populate them.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"sea-news-bot/internal/domain/model"
	"sea-news-bot/internal/domain/ports"
)

const defaultWindowDays = 7

// A transparent 1x1 GIF returned by the open-tracking pixel.
var pixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// Server exposes the analytics API.
type Server struct {
	metrics ports.MetricsStore
	logger  ports.Logger
	now     func() time.Time
	addr    string
}

// New constructs a dashboard Server.
func New(metrics ports.MetricsStore, logger ports.Logger, addr string) *Server {
	return &Server{
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		addr:    addr,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/track/open.gif", s.handleOpen).Methods(http.MethodGet)
	r.HandleFunc("/track/click", s.handleClick).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "dashboard listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type metricsResponse struct {
	Days             int                `json:"days"`
	SentCount        int                `json:"sent_count"`
	OpenCount        int                `json:"open_count"`
	ClickCount       int                `json:"click_count"`
	OpenRate         float64            `json:"open_rate"`
	ClickThroughRate float64            `json:"click_through_rate"`
	Sent             []model.SentRecord `json:"sent"`
	Opens            []model.OpenEvent  `json:"opens"`
	Clicks           []model.ClickEvent `json:"clicks"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	days := defaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			http.Error(w, "days must be an integer between 1 and 365", http.StatusBadRequest)
			return
		}
		days = n
	}

	since := s.now().UTC().AddDate(0, 0, -days)
	metrics, err := s.metrics.MetricsSince(r.Context(), since)
	if err != nil {
		s.logger.Error(r.Context(), "failed to load metrics", "error", err)
		http.Error(w, "failed to load metrics", http.StatusInternalServerError)
		return
	}

	resp := metricsResponse{
		Days:             days,
		SentCount:        len(metrics.Sent),
		OpenCount:        len(metrics.Opens),
		ClickCount:       len(metrics.Clicks),
		OpenRate:         metrics.OpenRate(),
		ClickThroughRate: metrics.ClickThroughRate(),
		Sent:             metrics.Sent,
		Opens:            metrics.Opens,
		Clicks:           metrics.Clicks,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error(r.Context(), "failed to encode metrics", "error", err)
	}
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	spent := 0.0
	if raw := r.URL.Query().Get("spent"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			spent = v
		}
	}

	if id != "" {
		event := model.OpenEvent{
			MessageID: id,
			TimeSpent: spent,
			Timestamp: s.now().UTC(),
		}
		if err := s.metrics.RecordOpen(r.Context(), event); err != nil {
			s.logger.Error(r.Context(), "failed to record open", "error", err)
		}
	}

	// Always serve the pixel; tracking failures must not break email clients.
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(pixelGIF)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	target := r.URL.Query().Get("url")

	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		http.Error(w, "url must be absolute http(s)", http.StatusBadRequest)
		return
	}

	if id != "" {
		event := model.ClickEvent{
			MessageID: id,
			URL:       target,
			Timestamp: s.now().UTC(),
		}
		if err := s.metrics.RecordClick(r.Context(), event); err != nil {
			s.logger.Error(r.Context(), "failed to record click", "error", err)
		}
	}

	http.Redirect(w, r, target, http.StatusFound)
}
