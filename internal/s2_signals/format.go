package s2_signals

import (
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 라벨 숫자 포맷: 천 단위 구분 (1,234,567)
var printer = message.NewPrinter(language.English)

// money formats a dollar amount without decimals, e.g. 1,250,000
func money(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// count formats a contract count with separators, e.g. 8,000
func count(v float64) string {
	return printer.Sprintf("%d", int64(v))
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
