package local

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"legal-info/providers"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var monthsByLanguage = map[string]map[string]time.Month{
	"ru": {
		"января": time.January, "январь": time.January, "янв": time.January,
		"февраля": time.February, "февраль": time.February, "фев": time.February, "февр": time.February,
		"марта": time.March, "март": time.March, "мар": time.March,
		"апреля": time.April, "апрель": time.April, "апр": time.April,
		"мая": time.May, "май": time.May,
		"июня": time.June, "июнь": time.June, "июн": time.June,
		"июля": time.July, "июль": time.July, "июл": time.July,
		"августа": time.August, "август": time.August, "авг": time.August,
		"сентября": time.September, "сентябрь": time.September, "сен": time.September, "сент": time.September,
		"октября": time.October, "октябрь": time.October, "окт": time.October,
		"ноября": time.November, "ноябрь": time.November, "ноя": time.November, "нояб": time.November,
		"декабря": time.December, "декабрь": time.December, "дек": time.December,
	},
	"en": {
		"january": time.January, "jan": time.January,
		"february": time.February, "feb": time.February,
		"march": time.March, "mar": time.March,
		"april": time.April, "apr": time.April,
		"may":  time.May,
		"june": time.June, "jun": time.June,
		"july": time.July, "jul": time.July,
		"august": time.August, "aug": time.August,
		"september": time.September, "sep": time.September, "sept": time.September,
		"october": time.October, "oct": time.October,
		"november": time.November, "nov": time.November,
		"december": time.December, "dec": time.December,
	},
}

var (
	numericDateRE  = regexp.MustCompile(`(\d{1,2})([./-])(\d{1,2})([./-])(\d{4}|\d{2})`)
	dayMonthYearRE = regexp.MustCompile(`(\d{1,2})[\s./-]+(\p{L}+)\.?[\s./-]+(\d{1,4})`)
	monthDayYearRE = regexp.MustCompile(`(\p{L}+)\.?\s+(\d{1,2}),?\s+(\d{4})`)
)

// Recognizer erkennt Datumsangaben anhand von Monatstabellen und festen Mustern.
type Recognizer struct {
	logger *zap.Logger
}

func NewRecognizer(logger *zap.Logger) *Recognizer {
	return &Recognizer{logger: logger}
}

func (r *Recognizer) Name() string {
	return "local"
}

type found struct {
	start, end int
	date       time.Time
}

// RecognizeDates liefert alle erkannten Datumsangaben in Fundreihenfolge.
// Überlappende Treffer werden verworfen, der früher beginnende gewinnt.
func (r *Recognizer) RecognizeDates(ctx context.Context, text, locale string) ([]providers.RecognizedDate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	months, fold := monthTable(locale)

	var hits []found
	for _, m := range numericDateRE.FindAllStringSubmatchIndex(text, -1) {
		if !bounded(text, m[0], m[1]) || text[m[4]:m[5]] != text[m[8]:m[9]] {
			continue
		}
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month, _ := strconv.Atoi(text[m[6]:m[7]])
		if month < 1 || month > 12 {
			continue
		}
		if d, ok := buildDate(text[m[10]:m[11]], time.Month(month), day); ok {
			hits = append(hits, found{m[0], m[1], d})
		}
	}
	for _, m := range dayMonthYearRE.FindAllStringSubmatchIndex(text, -1) {
		if !bounded(text, m[0], m[1]) {
			continue
		}
		month, ok := lookupMonth(months, fold, text[m[4]:m[5]])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		if d, ok := buildDate(text[m[6]:m[7]], month, day); ok {
			hits = append(hits, found{m[0], m[1], d})
		}
	}
	for _, m := range monthDayYearRE.FindAllStringSubmatchIndex(text, -1) {
		if !bounded(text, m[0], m[1]) {
			continue
		}
		month, ok := lookupMonth(months, fold, text[m[2]:m[3]])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(text[m[4]:m[5]])
		if d, ok := buildDate(text[m[6]:m[7]], month, day); ok {
			hits = append(hits, found{m[0], m[1], d})
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	out := make([]providers.RecognizedDate, 0, len(hits))
	lastEnd := -1
	for _, h := range hits {
		if h.start < lastEnd {
			continue
		}
		out = append(out, providers.RecognizedDate{Span: text[h.start:h.end], Date: h.date})
		lastEnd = h.end
	}
	r.logger.Debug("Dates recognized", zap.Int("count", len(out)), zap.String("locale", locale))
	return out, nil
}

// monthTable wählt die Monatsnamen für locale; unbekannte Sprachen bekommen alle Tabellen.
func monthTable(locale string) (map[string]time.Month, cases.Caser) {
	tag, err := language.Parse(locale)
	if err == nil {
		base, _ := tag.Base()
		if table, ok := monthsByLanguage[base.String()]; ok {
			return table, cases.Lower(tag)
		}
	}
	all := make(map[string]time.Month)
	for _, table := range monthsByLanguage {
		for k, v := range table {
			all[k] = v
		}
	}
	return all, cases.Lower(language.Und)
}

func lookupMonth(months map[string]time.Month, fold cases.Caser, token string) (time.Month, bool) {
	key := norm.NFC.String(fold.String(token))
	m, ok := months[key]
	return m, ok
}

// buildDate prüft das Datum auf Gültigkeit (31.02. wird abgelehnt).
// Jahre haben zwei oder vier Stellen; zweistellige werden ins 20./21. Jahrhundert gelegt.
func buildDate(yearText string, month time.Month, day int) (time.Time, bool) {
	if len(yearText) != 2 && len(yearText) != 4 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearText)
	if err != nil || year < 1 {
		return time.Time{}, false
	}
	if len(yearText) == 2 {
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// bounded prüft Wortgrenzen links und rechts des Treffers (Unicode-fähig, anders als \b).
func bounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
