package biz

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Token
	}{
		{raw: "3", want: Token{Raw: "3", Number: 3, Numeric: true}},
		{raw: "07", want: Token{Raw: "07", Number: 7, Numeric: true}},
		{raw: "0", want: Token{Raw: "0", Number: 0, Numeric: true}},
		{raw: "-1", want: Token{Raw: "-1"}},
		{raw: "1.5", want: Token{Raw: "1.5"}},
		{raw: "enero", want: Token{Raw: "enero"}},
		{raw: "", want: Token{Raw: ""}},
		{raw: "99999999999999999999999", want: Token{Raw: "99999999999999999999999", Number: -1, Numeric: true}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseToken(tt.raw))
		})
	}
}

// ---------------------------------------------------------------------------
// Months
// ---------------------------------------------------------------------------

func TestResolveMonth_NumbersAndNamesAgree(t *testing.T) {
	t.Parallel()

	names := []string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	for i, name := range names {
		byNumber, err := ResolveMonth(ParseToken(strconv.Itoa(i + 1)))
		require.NoError(t, err)
		byName, err := ResolveMonth(ParseToken(name))
		require.NoError(t, err)
		assert.Equal(t, byNumber, byName)
		assert.Equal(t, i+1, byName.Code)
	}
}

func TestResolveMonth_CaseAndAccents(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"ENERO", "Enero", "énero"} {
		p, err := ResolveMonth(ParseToken(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, Period{Code: 1, Name: "Enero"}, p)
	}
}

func TestResolveMonth_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		reason  Reason
		subject string
	}{
		{raw: "0", reason: ReasonMonthOutOfRange, subject: "0"},
		{raw: "13", reason: ReasonMonthOutOfRange, subject: "13"},
		{raw: "013", reason: ReasonMonthOutOfRange, subject: "13"},
		{raw: "smarch", reason: ReasonUnknownMonth, subject: "smarch"},
		{raw: "-3", reason: ReasonUnknownMonth, subject: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			_, err := ResolveMonth(ParseToken(tt.raw))
			var diag *Diagnostic
			require.True(t, errors.As(err, &diag))
			assert.Equal(t, tt.reason, diag.Reason)
			assert.Equal(t, tt.subject, diag.Subject)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// ---------------------------------------------------------------------------
// Weekdays
// ---------------------------------------------------------------------------

func TestResolveWeekday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Period
	}{
		{raw: "1", want: Period{Code: 1, Name: "Lunes"}},
		{raw: "lunes", want: Period{Code: 1, Name: "Lunes"}},
		{raw: "Martes", want: Period{Code: 2, Name: "Martes"}},
		{raw: "3", want: Period{Code: 3, Name: "Miércoles"}},
		{raw: "miercoles", want: Period{Code: 3, Name: "Miércoles"}},
		{raw: "miércoles", want: Period{Code: 3, Name: "Miércoles"}},
		{raw: "MIÉRCOLES", want: Period{Code: 3, Name: "Miércoles"}},
		{raw: "jueves", want: Period{Code: 4, Name: "Jueves"}},
		{raw: "viernes", want: Period{Code: 5, Name: "Viernes"}},
		{raw: "6", want: Period{Code: 6, Name: "Sábado"}},
		{raw: "sabado", want: Period{Code: 6, Name: "Sábado"}},
		{raw: "sábado", want: Period{Code: 6, Name: "Sábado"}},
		{raw: "domingo", want: Period{Code: 7, Name: "Domingo"}},
		{raw: "7", want: Period{Code: 7, Name: "Domingo"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveWeekday(ParseToken(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWeekday_Invalid(t *testing.T) {
	t.Parallel()

	for raw, reason := range map[string]Reason{
		"0":      ReasonWeekdayOutOfRange,
		"8":      ReasonWeekdayOutOfRange,
		"funday": ReasonUnknownWeekday,
		"lunes ": ReasonUnknownWeekday,
	} {
		_, err := ResolveWeekday(ParseToken(raw))
		var diag *Diagnostic
		require.True(t, errors.As(err, &diag), raw)
		assert.Equal(t, reason, diag.Reason, raw)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
