package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/booking-window/internal/auth"
	"github.com/example/booking-window/internal/bookingwindow"
	"github.com/example/booking-window/internal/preview"
)

//go:embed templates/*.html
var fs embed.FS

// Form and query keys shared by the panel form and the JSON endpoint.
const (
	keyUnlock    = "unlock"
	keyNumber    = "number"
	keyUnit      = "unit"
	keyClosest   = "closest"
	keyIncrement = "increment"
	keyDays      = "days"

	keyFlash = "flash"
)

// Flash notices shown after a redirect, keyed by the flash query value.
var flashes = map[string]map[preview.Lang]string{
	"saved": {
		preview.English:  "Preview updated.",
		preview.Japanese: "プレビューを更新しました。",
	},
	"reset": {
		preview.English:  "Settings reset to defaults.",
		preview.Japanese: "設定を初期値に戻しました。",
	},
}

// TimeIncrements are the same-day lead times offered by the form, in minutes.
var TimeIncrements = []int{15, 30, 45, 60, 90, 120, 180, 240}

type Server struct {
	Sessions    *SessionManager
	Gate        auth.Gate
	Log         *slog.Logger
	DefaultLang preview.Lang

	// Refresh is how often the panel reloads itself so "now" keeps moving.
	Refresh time.Duration
	Clock   func() time.Time
}

type tmplData struct {
	Title   string
	Lang    preview.Lang
	Refresh int
	Flash   string

	Config     bookingwindow.Config
	Increments []int
	Current    preview.Preview
	Other      preview.Preview
}

type apiResponse struct {
	Config   bookingwindow.Config             `json:"config"`
	Window   bookingwindow.Window             `json:"window"`
	Unlock   *bookingwindow.Unlock            `json:"unlock,omitempty"`
	Previews map[preview.Lang]preview.Preview `json:"previews"`
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(withRequestID)
	r.Use(withAccessLog(s.Log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.Gate.RequireAuth)
		r.Get("/", s.handlePanel)
		r.Post("/booking-window", s.handleUpdate)
		r.Post("/booking-window/reset", s.handleReset)
		r.Get("/api/booking-window", s.handleAPI)
	})

	return r
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(r)
	cfg := s.Sessions.Load(r)
	all := preview.BuildAll(cfg, s.now())

	other := preview.Japanese
	if lang == preview.Japanese {
		other = preview.English
	}
	s.render(w, "templates/panel.html", tmplData{
		Title:      "Booking window",
		Lang:       lang,
		Refresh:    int(s.Refresh.Seconds()),
		Flash:      flashes[r.URL.Query().Get(keyFlash)][lang],
		Config:     cfg,
		Increments: incrementOptions(cfg.Closest.TimeIncrementMinutes),
		Current:    all[lang],
		Other:      all[other],
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg, err := applyValues(s.Sessions.Load(r), r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Sessions.Save(w, r, cfg); err != nil {
		s.Log.Error("save form state", "err", err, "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, "failed to save form state", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, redirectTarget(r, "saved"), http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear(w)
	http.Redirect(w, r, redirectTarget(r, "reset"), http.StatusSeeOther)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	cfg, err := applyValues(s.Sessions.Load(r), r.URL.Query())
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	cfg = cfg.Normalize()
	now := s.now()

	resp := apiResponse{
		Config:   cfg,
		Window:   bookingwindow.Compute(cfg, now),
		Previews: preview.BuildAll(cfg, now),
	}
	if u, ok := bookingwindow.NextUnlock(cfg.Furthest, now); ok {
		resp.Unlock = &u
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// applyValues overlays the recognised keys present in v onto cfg. Keys that
// are absent leave the previous value in place.
func applyValues(cfg bookingwindow.Config, v url.Values) (bookingwindow.Config, error) {
	var err error
	if v.Has(keyUnlock) {
		if cfg.Furthest.UnlockType, err = bookingwindow.ParseUnlockType(v.Get(keyUnlock)); err != nil {
			return cfg, err
		}
	}
	if v.Has(keyUnit) {
		if cfg.Furthest.Unit, err = bookingwindow.ParseUnit(v.Get(keyUnit)); err != nil {
			return cfg, err
		}
	}
	if v.Has(keyClosest) {
		if cfg.Closest.Mode, err = bookingwindow.ParseClosestMode(v.Get(keyClosest)); err != nil {
			return cfg, err
		}
	}
	if v.Has(keyNumber) {
		cfg.Furthest.Number = bookingwindow.ParseMagnitude(v.Get(keyNumber))
	}
	if v.Has(keyIncrement) {
		cfg.Closest.TimeIncrementMinutes = bookingwindow.ParseMagnitude(v.Get(keyIncrement))
	}
	if v.Has(keyDays) {
		cfg.Closest.AdvanceDays = bookingwindow.ParseMagnitude(v.Get(keyDays))
	}
	if cfg.Furthest.UnlockType == bookingwindow.CalendarMonths {
		cfg.Furthest.Unit = bookingwindow.Months
	}
	return cfg, nil
}

func (s *Server) lang(r *http.Request) preview.Lang {
	if q := r.URL.Query().Get("lang"); q != "" {
		return preview.ParseLang(q)
	}
	if l, ok := preview.MatchLang(r.Header.Get("Accept-Language")); ok {
		return l
	}
	if s.DefaultLang == "" {
		return preview.English
	}
	return s.DefaultLang
}

func (s *Server) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// incrementOptions is TimeIncrements plus the stored value when it is not one
// of them, so re-submitting the form keeps it.
func incrementOptions(current int) []int {
	if slices.Contains(TimeIncrements, current) {
		return TimeIncrements
	}
	opts := append(slices.Clone(TimeIncrements), current)
	slices.Sort(opts)
	return opts
}

func redirectTarget(r *http.Request, flash string) string {
	q := url.Values{}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		q.Set("lang", lang)
	}
	q.Set(keyFlash, flash)
	return "/?" + q.Encode()
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.Log.Error("encode json response", "err", err, "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) render(w http.ResponseWriter, name string, data tmplData) {
	t, err := template.ParseFS(fs,
		"templates/base.html",
		name,
	)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
	}
}

func Start(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
