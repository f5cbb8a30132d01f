package pricing

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders estimates for a fixed locale and currency. All methods
// are pure and side-effect free.
type Formatter struct {
	locale  language.Tag
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a Formatter for the given BCP 47 locale tag and ISO 4217
// currency code. Unparseable inputs fall back to Russian and USD, the defaults
// of the site this service backs.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Russian
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.USD
	}

	return &Formatter{
		locale:  tag,
		unit:    unit,
		printer: message.NewPrinter(tag),
	}
}

// FormatPrice renders a single amount with the currency symbol and
// locale-aware digit grouping.
func (f *Formatter) FormatPrice(amount int) string {
	return f.printer.Sprintf("%v%v", currency.Symbol(f.unit), number.Decimal(amount))
}

// FormatPriceRange renders both bounds joined with " - ".
func (f *Formatter) FormatPriceRange(r PriceRange) string {
	return f.FormatPrice(r.Min) + " - " + f.FormatPrice(r.Max)
}

// FormatWeeks renders the time estimate with a pluralized unit word. A
// degenerate range (min == max) renders as a single number; otherwise the
// unit is pluralized by the max value.
func (f *Formatter) FormatWeeks(t TimeEstimate) string {
	if t.Min == t.Max {
		return fmt.Sprintf("%d %s", t.Min, f.weeksWord(t.Min))
	}
	return fmt.Sprintf("%d-%d %s", t.Min, t.Max, f.weeksWord(t.Max))
}

func (f *Formatter) weeksWord(n int) string {
	base, _ := f.locale.Base()
	if base.String() == "ru" {
		return russianWeeks(n)
	}
	if n == 1 {
		return "week"
	}
	return "weeks"
}

// russianWeeks applies the Slavic three-form plural rule keyed off the count
// modulo 10 and modulo 100: one form for 1, one for 2-4, and one for 0, 5-20
// and any count ending in 11-14.
func russianWeeks(n int) string {
	if n < 0 {
		n = -n
	}

	mod100 := n % 100
	if mod100 >= 11 && mod100 <= 14 {
		return "недель"
	}

	switch n % 10 {
	case 1:
		return "неделя"
	case 2, 3, 4:
		return "недели"
	default:
		return "недель"
	}
}
