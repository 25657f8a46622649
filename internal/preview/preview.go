// Package preview turns a computed booking window into the English and
// Japanese sentences shown next to the booking window form. It does no date
// arithmetic of its own.
package preview

import (
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/example/booking-window/internal/bookingwindow"
)

// Message is one preview sentence. HTML wraps the emphasised values in
// <strong>; Text is the same sentence without markup.
type Message struct {
	Text string        `json:"text"`
	HTML template.HTML `json:"html"`
}

type Preview struct {
	Lang     Lang                  `json:"lang"`
	Window   bookingwindow.Window  `json:"window"`
	Unlock   *bookingwindow.Unlock `json:"unlock,omitempty"`
	Furthest Message               `json:"furthest"`
	Closest  Message               `json:"closest"`
}

// Build computes the window for cfg at now and renders it in lang.
func Build(lang Lang, cfg bookingwindow.Config, now time.Time) Preview {
	return render(lang, cfg, bookingwindow.Compute(cfg, now), now)
}

// BuildAll renders every supported language from a single computation.
func BuildAll(cfg bookingwindow.Config, now time.Time) map[Lang]Preview {
	w := bookingwindow.Compute(cfg, now)
	out := make(map[Lang]Preview, len(Langs))
	for _, l := range Langs {
		out[l] = render(l, cfg, w, now)
	}
	return out
}

func render(lang Lang, cfg bookingwindow.Config, w bookingwindow.Window, now time.Time) Preview {
	p := Preview{
		Lang:     lang,
		Window:   w,
		Furthest: Furthest(lang, cfg.Furthest, w, now),
		Closest:  Closest(lang, cfg.Closest, w, now),
	}
	if u, ok := bookingwindow.NextUnlock(cfg.Furthest, now); ok {
		p.Unlock = &u
	}
	return p
}

// Furthest describes the latest bookable date and how the horizon advances.
func Furthest(lang Lang, p bookingwindow.FurthestPolicy, w bookingwindow.Window, now time.Time) Message {
	var lead, tail message
	if lang == Japanese {
		lead = msg("現在の最長予約可能日は%sです。", monthDay(lang, w.Latest))
	} else {
		lead = msg("Furthest booking right now would be %s.", monthDay(lang, w.Latest))
	}

	if u, ok := bookingwindow.NextUnlock(p, now); ok {
		if lang == Japanese {
			tail = msg("%sは%sの深夜0時に利用可能になります。", monthName(lang, u.Month), monthDay(lang, u.At))
		} else {
			tail = msg("%s will become available on %s at midnight.", monthName(lang, u.Month), monthDay(lang, u.At))
		}
	} else {
		if lang == Japanese {
			tail = msg("予約枠は毎日深夜0時に1日分ずつ追加されます。")
		} else {
			tail = msg("The booking window advances by 1 day each day at midnight.")
		}
	}
	return join(lead, tail)
}

// Closest describes the earliest bookable slot. Same-day policies show only
// the clock time while the slot is still today.
func Closest(lang Lang, p bookingwindow.ClosestPolicy, w bookingwindow.Window, now time.Time) Message {
	e := w.Earliest
	var m message
	switch {
	case p.Mode == bookingwindow.SameDay && sameDate(e, now):
		if lang == Japanese {
			m = msg("現在の最短予約可能時刻は%sです。", clock(e))
		} else {
			m = msg("Earliest booking right now would be at %s.", clock(e))
		}
	case p.Mode == bookingwindow.SameDay:
		if lang == Japanese {
			m = msg("現在の最短予約可能日時は%sです。", weekdayClock(lang, e))
		} else {
			m = msg("Earliest booking right now would be %s.", weekdayClock(lang, e))
		}
	default:
		if lang == Japanese {
			m = msg("現在の最短予約可能日は%sです。", weekdayMonthDay(lang, e))
		} else {
			m = msg("Earliest booking right now would be %s.", weekdayMonthDay(lang, e))
		}
	}
	return m.Message()
}

type message struct {
	format string
	args   []string
}

func msg(format string, args ...string) message {
	return message{format: format, args: args}
}

func (m message) text() string {
	return fmt.Sprintf(m.format, toAny(m.args, func(s string) string { return s })...)
}

func (m message) html() string {
	escaped := toAny(m.args, func(s string) string { return "<strong>" + html.EscapeString(s) + "</strong>" })
	return fmt.Sprintf(html.EscapeString(m.format), escaped...)
}

func (m message) Message() Message {
	return Message{Text: m.text(), HTML: template.HTML(m.html())}
}

func join(ms ...message) Message {
	texts := make([]string, len(ms))
	htmls := make([]string, len(ms))
	for i, m := range ms {
		texts[i] = m.text()
		htmls[i] = m.html()
	}
	return Message{
		Text: strings.Join(texts, " "),
		HTML: template.HTML(strings.Join(htmls, "<br>")),
	}
}

func toAny(ss []string, f func(string) string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = f(s)
	}
	return out
}
