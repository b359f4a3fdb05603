package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
)

var datePatterns = []*regexp.Regexp{
	// 12/03/2024, 12-03-24, 12.03.2024, 12 03 2024
	regexp.MustCompile(`\b(\d{1,2})[\/\-\.\s](\d{1,2})[\/\-\.\s](\d{2,4})\b`),
	// 2024/03/12
	regexp.MustCompile(`\b(\d{4})[\/\-\.\s](\d{1,2})[\/\-\.\s](\d{1,2})\b`),
}

// "12 de marco de 2024" / "12 de marco" — matched on normalized text,
// so months have no diacritics.
var writtenDatePattern = regexp.MustCompile(`\b(\d{1,2}) de ([a-z]+)(?: de (\d{4}))?\b`)

var monthNames = map[string]time.Month{
	"janeiro": time.January, "fevereiro": time.February, "marco": time.March,
	"abril": time.April, "maio": time.May, "junho": time.June,
	"julho": time.July, "agosto": time.August, "setembro": time.September,
	"outubro": time.October, "novembro": time.November, "dezembro": time.December,
}

// ExtractDate finds every plausible date in the text and returns the
// latest one, normalized for the document type. When nothing parses,
// the current date is used so the renamed file still sorts sensibly.
func ExtractDate(text string, docType DocType, now time.Time) time.Time {
	var found []time.Time

	lower := strings.ToLower(text)
	for _, m := range datePatterns[0].FindAllStringSubmatch(lower, -1) {
		if dt, ok := makeDate(m[3], m[2], m[1]); ok {
			found = append(found, dt)
		}
	}
	for _, m := range datePatterns[1].FindAllStringSubmatch(lower, -1) {
		if dt, ok := makeDate(m[1], m[2], m[3]); ok {
			found = append(found, dt)
		}
	}
	for _, m := range writtenDatePattern.FindAllStringSubmatch(resolve.Normalize(text), -1) {
		month, ok := monthNames[m[2]]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if dt, ok := validDate(year, month, day); ok {
			found = append(found, dt)
		}
	}

	if len(found) == 0 {
		return NormalizeDateForType(now, docType, now)
	}

	latest := found[0]
	for _, dt := range found[1:] {
		if dt.After(latest) {
			latest = dt
		}
	}
	return NormalizeDateForType(latest, docType, now)
}

// NormalizeDateForType applies the filing conventions: time-sheets,
// warnings and letters are filed mid-month (day 15); years below 2023
// are OCR misreads and get clamped; future dates are pulled back to
// the current year, then the current month.
func NormalizeDateForType(dt time.Time, docType DocType, now time.Time) time.Time {
	switch docType {
	case TypePonto, TypeAdvertencia, TypeCarta:
		dt = time.Date(dt.Year(), dt.Month(), 15, 0, 0, 0, 0, dt.Location())
	}

	if dt.Year() < 2023 {
		dt = time.Date(2023, dt.Month(), dt.Day(), 0, 0, 0, 0, dt.Location())
	}
	if dt.After(now) {
		dt = time.Date(now.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, dt.Location())
		if dt.After(now) {
			month := dt.Month()
			if now.Month() < month {
				month = now.Month()
			}
			dt = time.Date(now.Year(), month, dt.Day(), 0, 0, 0, 0, dt.Location())
		}
	}
	return dt
}

// FormatDate renders the filename form dd-mm-yyyy.
func FormatDate(dt time.Time) string {
	return dt.Format("02-01-2006")
}

func makeDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	// Two-digit years: 24 -> 2024.
	if year < 100 {
		year += 2000
	}
	return validDate(year, time.Month(month), day)
}

func validDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1990 || year > 2100 {
		return time.Time{}, false
	}
	dt := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	// Reject rollovers like 31/02 -> 02/03.
	if dt.Day() != day || dt.Month() != month {
		return time.Time{}, false
	}
	return dt, true
}
