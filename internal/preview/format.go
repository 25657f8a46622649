package preview

import (
	"fmt"
	"time"
)

var jaWeekdays = [...]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}

func monthDay(lang Lang, t time.Time) string {
	if lang == Japanese {
		return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
	}
	return t.Format("January 2")
}

func monthName(lang Lang, t time.Time) string {
	if lang == Japanese {
		return fmt.Sprintf("%d月", int(t.Month()))
	}
	return t.Month().String()
}

func weekday(lang Lang, t time.Time) string {
	if lang == Japanese {
		return jaWeekdays[t.Weekday()]
	}
	return t.Weekday().String()
}

func clock(t time.Time) string {
	return t.Format("15:04")
}

func weekdayClock(lang Lang, t time.Time) string {
	return weekday(lang, t) + " " + clock(t)
}

func weekdayMonthDay(lang Lang, t time.Time) string {
	if lang == Japanese {
		return monthDay(lang, t) + weekday(lang, t)
	}
	return weekday(lang, t) + ", " + monthDay(lang, t)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
