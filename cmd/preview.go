package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/booking-window/internal/bookingwindow"
	"github.com/example/booking-window/internal/preview"
	"github.com/example/booking-window/internal/scheduler"
)

const localLayout = "2006-01-02 15:04"

func newPreviewCmd() *cobra.Command {
	var (
		unlock    string
		number    int
		unit      string
		closest   string
		increment int
		days      int
		lang      string
		nowStr    string
		watch     bool
		interval  time.Duration
	)

	c := &cobra.Command{
		Use:   "preview",
		Short: "Compute the current booking window and print the preview text",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bookingwindow.Config{
				Furthest: bookingwindow.FurthestPolicy{Number: number},
				Closest:  bookingwindow.ClosestPolicy{TimeIncrementMinutes: increment, AdvanceDays: days},
			}
			var err error
			if cfg.Furthest.UnlockType, err = bookingwindow.ParseUnlockType(unlock); err != nil {
				return err
			}
			if cfg.Furthest.Unit, err = bookingwindow.ParseUnit(unit); err != nil {
				return err
			}
			if cfg.Closest.Mode, err = bookingwindow.ParseClosestMode(closest); err != nil {
				return err
			}
			cfg = cfg.Normalize()

			langs, err := parseLangs(lang)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !watch {
				now := time.Now()
				if nowStr != "" {
					if now, err = parseNow(nowStr); err != nil {
						return err
					}
				}
				printPreview(out, cfg, now, langs)
				return nil
			}

			if interval <= 0 {
				return fmt.Errorf("--interval must be > 0")
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			s := &scheduler.Scheduler{
				Config:   func() bookingwindow.Config { return cfg },
				Interval: interval,
				OnChange: func(now time.Time, _ bookingwindow.Window) {
					printPreview(out, cfg, now, langs)
				},
			}
			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	c.Flags().StringVar(&unlock, "unlock", "rolling-days", "furthest policy: rolling-days, rolling-months or calendar-months")
	c.Flags().IntVar(&number, "number", 2, "how far ahead bookings open (days or months)")
	c.Flags().StringVar(&unit, "unit", "months", "unit for rolling-days: days or months (a month counts as 30 days)")
	c.Flags().StringVar(&closest, "closest", "same-day", "closest policy: same-day or advance")
	c.Flags().IntVar(&increment, "increment", 15, "same-day minimum lead time in minutes")
	c.Flags().IntVar(&days, "days", 1, "advance policy minimum days")
	c.Flags().StringVar(&lang, "lang", "both", "preview language: en, ja or both")
	c.Flags().StringVar(&nowStr, "now", "", "evaluate at this local time (RFC3339 or \"2006-01-02 15:04\")")
	c.Flags().BoolVar(&watch, "watch", false, "keep running and print whenever the window moves")
	c.Flags().DurationVar(&interval, "interval", time.Minute, "recompute interval for --watch")
	return c
}

func parseLangs(s string) ([]preview.Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "":
		return preview.Langs, nil
	case "en":
		return []preview.Lang{preview.English}, nil
	case "ja":
		return []preview.Lang{preview.Japanese}, nil
	}
	return nil, fmt.Errorf("invalid --lang %q (want en, ja or both)", s)
}

func parseNow(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q (want RFC3339 or %q)", s, localLayout)
	}
	return t, nil
}

func printPreview(w io.Writer, cfg bookingwindow.Config, now time.Time, langs []preview.Lang) {
	win := bookingwindow.Compute(cfg, now)
	fmt.Fprintf(w, "now:      %s\n", now.Format("2006-01-02 15:04:05 Mon"))
	fmt.Fprintf(w, "earliest: %s\n", win.Earliest.Format("2006-01-02 15:04 Mon"))
	fmt.Fprintf(w, "latest:   %s\n", win.Latest.Format("2006-01-02 15:04:05.000 Mon"))
	if u, ok := bookingwindow.NextUnlock(cfg.Furthest, now); ok {
		fmt.Fprintf(w, "next:     %s opens %s\n", u.Month.Format("2006-01"), u.At.Format(localLayout))
	}

	all := preview.BuildAll(cfg, now)
	for _, l := range langs {
		p := all[l]
		fmt.Fprintf(w, "[%s] %s\n", l, p.Furthest.Text)
		fmt.Fprintf(w, "[%s] %s\n", l, p.Closest.Text)
	}
}
