package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cinestats/internal/biz"
)

const unknownYear = "desconocido"

// pyFloat renders f the way Python's repr does: shortest round-trip digits,
// always with a fractional part, exponent form outside [1e-4, 1e16).
func pyFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func yearText(year int, known bool) string {
	if !known {
		return unknownYear
	}
	return strconv.Itoa(year)
}

func renderMonthCount(r *biz.ReleaseCount) string {
	return fmt.Sprintf("%d película(s) fueron estrenadas en el mes de %s.", r.Count, r.Period.Name)
}

func renderWeekdayCount(r *biz.ReleaseCount) string {
	return fmt.Sprintf("%d película(s) fueron estrenadas en el día %s.", r.Count, r.Period.Name)
}

func renderTitleScore(r *biz.TitleScore) string {
	return fmt.Sprintf("La película '%s' fue estrenada en el año %s con un score/popularidad de %s.",
		r.Title, yearText(r.Year, r.YearKnown), pyFloat(r.VoteAverage))
}

func renderTitleVotes(r *biz.TitleVotes) string {
	return fmt.Sprintf("La película '%s' fue estrenada en el año %s. Cuenta con %d valoraciones, con un promedio de %s.",
		r.Title, yearText(r.Year, r.YearKnown), r.VoteCount, pyFloat(r.VoteAverage))
}

func movieLine(m *biz.Movie) string {
	released := "N/A"
	if m.ReleaseDate != nil {
		released = m.ReleaseDate.Format("2006-01-02")
	}
	return fmt.Sprintf("- %s (Fecha: %s), Retorno: %.2f, Costo: %s, Ganancia: %s",
		m.Title, released, m.Return, pyFloat(m.Budget), pyFloat(m.Revenue))
}

func renderActorSuccess(r *biz.ActorSuccess) string {
	lines := make([]string, 0, len(r.Movies))
	for _, m := range r.Movies {
		lines = append(lines, movieLine(m))
	}
	return fmt.Sprintf("El actor '%s' ha participado en %d filmación(es), "+
		"consiguiendo un retorno total de %.2f y un promedio de %.2f por filmación.\n"+
		"Lista de Peliculas:\n%s",
		r.Name, len(r.Movies), r.TotalReturn, r.AverageReturn, strings.Join(lines, "\n"))
}

func renderDirectorSuccess(r *biz.DirectorSuccess) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Director: %s\nPelículas:\n", r.Name)
	for _, m := range r.Movies {
		b.WriteString(movieLine(m))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderDiagnostic(d *biz.Diagnostic) string {
	switch d.Reason {
	case biz.ReasonMonthOutOfRange:
		return fmt.Sprintf("El número de mes '%s' no es válido. Debe estar entre 1 y 12.", d.Subject)
	case biz.ReasonUnknownMonth:
		return fmt.Sprintf("El mes '%s' no es válido.", d.Subject)
	case biz.ReasonWeekdayOutOfRange:
		return fmt.Sprintf("El número de día '%s' no es válido. Debe estar entre 1 (lunes) y 7 (domingo).", d.Subject)
	case biz.ReasonUnknownWeekday:
		return fmt.Sprintf("El día '%s' no es válido.", d.Subject)
	case biz.ReasonTitleNotFound:
		return fmt.Sprintf("No se encontró la película '%s'.", d.Subject)
	case biz.ReasonVotesBelowThreshold:
		return fmt.Sprintf("La película '%s' no cumple con la condición de tener al menos %d valoraciones.", d.Subject, biz.MinVoteCount)
	case biz.ReasonActorNotFound:
		return fmt.Sprintf("No se encontró al actor '%s'.", d.Subject)
	case biz.ReasonActorMoviesMissing:
		return fmt.Sprintf("No se encontraron películas para el actor '%s'.", d.Subject)
	case biz.ReasonDirectorNotFound:
		return fmt.Sprintf("No se encontró al director '%s'.", d.Subject)
	case biz.ReasonDirectorMoviesMissing:
		return fmt.Sprintf("No se encontraron películas para el director '%s'.", d.Subject)
	default:
		return d.Error()
	}
}

// outcomeLabel classifies an error for metrics.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, biz.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, biz.ErrNotFound):
		return "not_found"
	case errors.Is(err, biz.ErrThresholdNotMet):
		return "threshold_not_met"
	default:
		return "error"
	}
}
