package web

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/example/booking-window/internal/bookingwindow"
)

const sessionName = "bookingwin_form"

const sessionMaxAge = 14 * 24 * time.Hour

// SessionManager keeps the booking window form's working state in a signed,
// encrypted cookie, so values of the inactive mode survive a toggle.
type SessionManager struct{ sc *securecookie.SecureCookie }

func NewSessionManager(hashKey, blockKey []byte) *SessionManager {
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(sessionMaxAge.Seconds()))
	return &SessionManager{sc: sc}
}

// Load returns the stored form state, or the defaults when there is none or
// the cookie cannot be decoded.
func (s *SessionManager) Load(r *http.Request) bookingwindow.Config {
	c, err := r.Cookie(sessionName)
	if err != nil {
		return bookingwindow.DefaultConfig()
	}
	var cfg bookingwindow.Config
	if err := s.sc.Decode(sessionName, c.Value, &cfg); err != nil {
		return bookingwindow.DefaultConfig()
	}
	return cfg
}

func (s *SessionManager) Save(w http.ResponseWriter, r *http.Request, cfg bookingwindow.Config) error {
	encoded, err := s.sc.Encode(sessionName, cfg)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(sessionMaxAge.Seconds()),
	})
	return nil
}

func (s *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name: sessionName, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}
