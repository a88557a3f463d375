package domain

import (
	"fmt"
	"time"
)

var spanishWeekdays = [7]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatFullDate renders a date the way es-CO long form does,
// e.g. "lunes, 4 de marzo de 2024". Used as the transaction group label.
func FormatFullDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// FormatShortDate renders a date as "4 de marzo".
func FormatShortDate(t time.Time) string {
	return fmt.Sprintf("%d de %s", t.Day(), spanishMonths[t.Month()-1])
}
