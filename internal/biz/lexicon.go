package biz

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Token is a month or weekday parameter, classified once at the API boundary.
type Token struct {
	Raw     string
	Number  int
	Numeric bool
}

// ParseToken classifies raw as a number when it is made only of ASCII digits.
// Anything else, including signs and blanks, is treated as a name.
func ParseToken(raw string) Token {
	if raw == "" {
		return Token{Raw: raw}
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return Token{Raw: raw}
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// too large for int; still numeric, never in range
		return Token{Raw: raw, Number: -1, Numeric: true}
	}
	return Token{Raw: raw, Number: n, Numeric: true}
}

func (t Token) numberText() string {
	if t.Number < 0 {
		return strings.TrimLeft(t.Raw, "0")
	}
	return strconv.Itoa(t.Number)
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var weekdayNames = [...]string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

var (
	monthCodes   = foldedIndex(monthNames[:])
	weekdayCodes = foldedIndex(weekdayNames[:])
)

func foldedIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[foldName(name)] = i + 1
	}
	return idx
}

// foldName lower-cases s and strips combining marks, so "Miércoles" and
// "miercoles" fold to the same key.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ResolveMonth maps a token to a month, 1 = Enero.
func ResolveMonth(tok Token) (Period, error) {
	if tok.Numeric {
		if tok.Number < 1 || tok.Number > len(monthNames) {
			return Period{}, diagnose(ReasonMonthOutOfRange, tok.numberText())
		}
		return Period{Code: tok.Number, Name: monthNames[tok.Number-1]}, nil
	}
	code, ok := monthCodes[foldName(tok.Raw)]
	if !ok {
		return Period{}, diagnose(ReasonUnknownMonth, tok.Raw)
	}
	return Period{Code: code, Name: monthNames[code-1]}, nil
}

// ResolveWeekday maps a token to a weekday, 1 = Lunes ... 7 = Domingo.
func ResolveWeekday(tok Token) (Period, error) {
	if tok.Numeric {
		if tok.Number < 1 || tok.Number > len(weekdayNames) {
			return Period{}, diagnose(ReasonWeekdayOutOfRange, tok.numberText())
		}
		return Period{Code: tok.Number, Name: weekdayNames[tok.Number-1]}, nil
	}
	code, ok := weekdayCodes[foldName(tok.Raw)]
	if !ok {
		return Period{}, diagnose(ReasonUnknownWeekday, tok.Raw)
	}
	return Period{Code: code, Name: weekdayNames[code-1]}, nil
}
