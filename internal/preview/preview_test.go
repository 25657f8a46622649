package preview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/booking-window/internal/bookingwindow"
)

// 2026-03-10 is a Tuesday.
var now = time.Date(2026, 3, 10, 10, 1, 0, 0, time.UTC)

func rolling(n int, unit bookingwindow.Unit) bookingwindow.FurthestPolicy {
	return bookingwindow.FurthestPolicy{UnlockType: bookingwindow.RollingDays, Number: n, Unit: unit}
}

func TestFurthest_Rolling(t *testing.T) {
	cfg := bookingwindow.Config{
		Furthest: rolling(2, bookingwindow.Days),
		Closest:  bookingwindow.ClosestPolicy{Mode: bookingwindow.SameDay, TimeIncrementMinutes: 15},
	}

	en := Build(English, cfg, now)
	ja := Build(Japanese, cfg, now)

	assert.Equal(t, "Furthest booking right now would be March 12. The booking window advances by 1 day each day at midnight.", en.Furthest.Text)
	assert.Equal(t, "Furthest booking right now would be <strong>March 12</strong>.<br>The booking window advances by 1 day each day at midnight.", string(en.Furthest.HTML))
	assert.Equal(t, "現在の最長予約可能日は3月12日です。 予約枠は毎日深夜0時に1日分ずつ追加されます。", ja.Furthest.Text)
	assert.Nil(t, en.Unlock)
}

func TestFurthest_Calendar(t *testing.T) {
	cfg := bookingwindow.Config{
		Furthest: bookingwindow.FurthestPolicy{UnlockType: bookingwindow.CalendarMonths, Number: 2},
		Closest:  bookingwindow.ClosestPolicy{Mode: bookingwindow.SameDay, TimeIncrementMinutes: 15},
	}
	jan := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)

	en := Build(English, cfg, jan)
	ja := Build(Japanese, cfg, jan)

	assert.Equal(t, "Furthest booking right now would be March 31. April will become available on March 1 at midnight.", en.Furthest.Text)
	assert.Equal(t, "現在の最長予約可能日は<strong>3月31日</strong>です。<br><strong>4月</strong>は<strong>3月1日</strong>の深夜0時に利用可能になります。", string(ja.Furthest.HTML))
	require.NotNil(t, en.Unlock)
	assert.Equal(t, time.April, en.Unlock.Month.Month())
}

func TestClosest(t *testing.T) {
	tests := []struct {
		name   string
		policy bookingwindow.ClosestPolicy
		now    time.Time
		en, ja string
	}{
		{
			name:   "same day keeps clock only",
			policy: bookingwindow.ClosestPolicy{Mode: bookingwindow.SameDay, TimeIncrementMinutes: 15},
			now:    now,
			en:     "Earliest booking right now would be at 10:30.",
			ja:     "現在の最短予約可能時刻は10:30です。",
		},
		{
			name:   "same day crossing midnight names weekday",
			policy: bookingwindow.ClosestPolicy{Mode: bookingwindow.SameDay, TimeIncrementMinutes: 30},
			now:    time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC),
			en:     "Earliest booking right now would be Tuesday 00:30.",
			ja:     "現在の最短予約可能日時は火曜日 00:30です。",
		},
		{
			name:   "advance shows date",
			policy: bookingwindow.ClosestPolicy{Mode: bookingwindow.Advance, AdvanceDays: 1},
			now:    now,
			en:     "Earliest booking right now would be Wednesday, March 11.",
			ja:     "現在の最短予約可能日は3月11日水曜日です。",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := bookingwindow.Window{Earliest: bookingwindow.Earliest(tt.policy, tt.now)}
			assert.Equal(t, tt.en, Closest(English, tt.policy, w, tt.now).Text)
			assert.Equal(t, tt.ja, Closest(Japanese, tt.policy, w, tt.now).Text)
		})
	}
}

func TestBuildAll_SharesOneWindow(t *testing.T) {
	all := BuildAll(bookingwindow.DefaultConfig(), now)

	require.Len(t, all, 2)
	assert.Equal(t, all[English].Window, all[Japanese].Window)
	assert.Equal(t, Japanese, all[Japanese].Lang)
}

func TestParseLang(t *testing.T) {
	assert.Equal(t, Japanese, ParseLang("ja"))
	assert.Equal(t, Japanese, ParseLang("ja-JP"))
	assert.Equal(t, English, ParseLang("en-US"))
	assert.Equal(t, English, ParseLang(""))
	assert.Equal(t, English, ParseLang("not a tag!"))
}

func TestMatchLang(t *testing.T) {
	l, ok := MatchLang("ja,en-US;q=0.8")
	assert.True(t, ok)
	assert.Equal(t, Japanese, l)

	l, ok = MatchLang("en-GB,en;q=0.9")
	assert.True(t, ok)
	assert.Equal(t, English, l)

	_, ok = MatchLang("")
	assert.False(t, ok)
}
