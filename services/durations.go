package services

import (
	"fmt"
	"regexp"
	"strconv"

	"legal-info/models"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// UnitStems sind die Wortanfänge der Zeiteinheiten in einer Sprache.
type UnitStems struct {
	Days, Weeks, Months, Years string
}

var stemsByLanguage = map[string]UnitStems{
	"ru": {Days: "дн", Weeks: "неде", Months: "меся", Years: "год"},
	"en": {Days: "day", Weeks: "week", Months: "month", Years: "year"},
}

// StemsForLocale liefert die Stämme zu locale, Russisch als Fallback.
func StemsForLocale(locale string) UnitStems {
	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		if stems, ok := stemsByLanguage[base.String()]; ok {
			return stems
		}
	}
	return stemsByLanguage["ru"]
}

// Anker-Strategie für das Dauer-Token.
type DurationAnchor int

const (
	// AnchorFirstMatch setzt das Token am Tage-Treffer ein, sonst an Wochen, Monaten, Jahren.
	AnchorFirstMatch DurationAnchor = iota
	// AnchorDaysOnly ersetzt ausschließlich den Tage-Treffer; ohne ihn bleibt der Wert unverändert.
	AnchorDaysOnly
)

type unitMatch struct {
	count int
	span  string
}

// DurationStats fasst einen Dauer-Durchlauf zusammen.
type DurationStats struct {
	Matched   int
	Rewritten int
}

// DurationNormalizer ersetzt Dauerangaben durch "jahre_monate_wochen_tage".
type DurationNormalizer struct {
	days, weeks, months, years *regexp.Regexp
	anchor                     DurationAnchor
	logger                     *zap.Logger
}

func NewDurationNormalizer(stems UnitStems, anchor DurationAnchor, logger *zap.Logger) *DurationNormalizer {
	return &DurationNormalizer{
		days:   unitPattern(stems.Days),
		weeks:  unitPattern(stems.Weeks),
		months: unitPattern(stems.Months),
		years:  unitPattern(stems.Years),
		anchor: anchor,
		logger: logger,
	}
}

// unitPattern: 1–4-stellige Zahl ohne führende Null an einer Wortgrenze, ein Leerzeichen,
// dann ein Wort, das mit stem beginnt. Groß-/Kleinschreibung zählt.
// Vor der Zahl darf kein '.', '/', ',' oder '-' stehen: "15.03.2023 года" ist das Jahr
// eines Datums, keine Dauer.
func unitPattern(stem string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_./,-])([1-9][0-9]{0,3}) ` + regexp.QuoteMeta(stem) + `\p{L}*`)
}

func findUnit(re *regexp.Regexp, text string) unitMatch {
	m := re.FindStringSubmatchIndex(text)
	if m == nil {
		return unitMatch{}
	}
	n, err := strconv.Atoi(text[m[2]:m[3]])
	if err != nil {
		return unitMatch{}
	}
	return unitMatch{count: n, span: text[m[2]:m[1]]}
}

// DurationToken baut das kanonische Token in der festen Reihenfolge Jahre, Monate, Wochen, Tage.
func DurationToken(years, months, weeks, days int) string {
	return fmt.Sprintf("%d_%d_%d_%d", years, months, weeks, days)
}

// Normalize durchläuft root einmal und schreibt jedes Blatt höchstens einmal um.
func (dn *DurationNormalizer) Normalize(root *models.Mapping) DurationStats {
	var stats DurationStats
	Walk(root, func(leaf *Leaf) {
		text, _ := leaf.Text()
		days := findUnit(dn.days, text)
		weeks := findUnit(dn.weeks, text)
		months := findUnit(dn.months, text)
		years := findUnit(dn.years, text)
		if days.count == 0 && weeks.count == 0 && months.count == 0 && years.count == 0 {
			return
		}
		stats.Matched++

		token := DurationToken(years.count, months.count, weeks.count, days.count)
		anchor := days.span
		if anchor == "" && dn.anchor == AnchorFirstMatch {
			for _, u := range []unitMatch{weeks, months, years} {
				if u.span != "" {
					anchor = u.span
					break
				}
			}
		}
		if anchor == "" {
			dn.logger.Debug("Duration matched without days anchor, value left untouched",
				zap.String("key", leaf.Key), zap.String("token", token))
			return
		}
		if leaf.Replace(anchor, token) {
			stats.Rewritten++
		}
	})
	dn.logger.Debug("Duration pass finished",
		zap.Int("matched", stats.Matched),
		zap.Int("rewritten", stats.Rewritten))
	return stats
}
