// Package prompt builds the context block prepended to the user's question
// before generation: system facts (date, time, season, location), live
// enrichment (weather or search findings), and an explicit note when
// enrichment came up empty so the model does not fill the gap by guessing.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/lowentech/assistant-api/internal/search"
	"github.com/lowentech/assistant-api/internal/weather"
)

type Season int

const (
	SeasonWinter Season = iota
	SeasonSpring
	SeasonSummer
	SeasonAutumn
)

func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "İlkbahar"
	case SeasonSummer:
		return "Yaz"
	case SeasonAutumn:
		return "Sonbahar"
	default:
		return "Kış"
	}
}

func SeasonForMonth(month time.Month) Season {
	switch month {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

var turkishDays = [...]string{
	"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi",
}

// FormatDate renders the localized long form, e.g. "31 Ağustos 2026 Pazar".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d %s", t.Day(), turkishMonths[t.Month()-1], t.Year(), turkishDays[t.Weekday()])
}

const noInfoNote = "Güncel bilgi bulunamadı; emin olmadığın ayrıntıları uydurma."

const searchInstruction = "Yukarıdaki araştırma sonuçlarına dayan, tahmin yürütme."

// Context holds everything the block renders. Built per request, immutable
// once assembled, discarded with the response.
type Context struct {
	GeneratedAt     time.Time
	LocationLabel   string
	Weather         *weather.Snapshot
	SearchResults   []search.Result
	EnrichmentTried bool
	Notes           []string
}

func (c Context) Season() Season {
	return SeasonForMonth(c.GeneratedAt.Month())
}

// Build renders the labeled context block.
func (c Context) Build() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tarih: %s\n", FormatDate(c.GeneratedAt))
	fmt.Fprintf(&b, "Saat: %s\n", c.GeneratedAt.Format("15:04"))
	fmt.Fprintf(&b, "Mevsim: %s\n", c.Season())
	fmt.Fprintf(&b, "Konum: %s\n", c.LocationLabel)

	switch {
	case c.Weather != nil:
		b.WriteString("\nHAVA DURUMU:\n")
		fmt.Fprintf(&b, "Şehir: %s\n", c.Weather.City)
		if c.Weather.Country != "" {
			fmt.Fprintf(&b, "Ülke: %s\n", c.Weather.Country)
		}
		fmt.Fprintf(&b, "Sıcaklık: %d°C\n", c.Weather.TemperatureC)
		fmt.Fprintf(&b, "Hissedilen: %d°C\n", c.Weather.FeelsLikeC)
		fmt.Fprintf(&b, "Nem: %%%d\n", c.Weather.HumidityPct)
		fmt.Fprintf(&b, "Durum: %s\n", c.Weather.Description)
		fmt.Fprintf(&b, "Rüzgar: %d km/h\n", c.Weather.WindKph)
		fmt.Fprintf(&b, "Basınç: %d hPa\n", c.Weather.PressureHpa)
		fmt.Fprintf(&b, "Kaynak: %s\n", c.Weather.Source)
	case len(c.SearchResults) > 0:
		b.WriteString("\nARAŞTIRMA SONUÇLARI:\n")
		for _, result := range c.SearchResults {
			fmt.Fprintf(&b, "- %s: %s\n", result.Title, result.Snippet)
		}
		b.WriteString(searchInstruction + "\n")
	case c.EnrichmentTried:
		b.WriteString("\n" + noInfoNote + "\n")
	}

	for _, note := range c.Notes {
		fmt.Fprintf(&b, "Not: %s\n", note)
	}
	return b.String()
}

const persona = `Sen çok akıllı bir asistansın. Löwentech şirketinin profesyonel temsilcisisin.

KURALLAR:
- ASLA "bilmiyorum" deme
- Araştırma sonuçları varsa onları kullan
- Kısa ama bilgilendirici yanıt ver
- Müşteri odaklı düşün`

// Compose frames the context block and the literal user question into the
// final generation prompt.
func Compose(c Context, userPrompt string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(c.Build())
	fmt.Fprintf(&b, "\nSORU: %q\n\nPROFESYONEL YANIT:", userPrompt)
	return b.String()
}
