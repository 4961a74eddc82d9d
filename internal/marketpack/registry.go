package marketpack

import (
	"regexp"
	"strings"
	"time"

	"github.com/ocx/compliance/internal/core"
)

var nonLetter = regexp.MustCompile(`[^a-z]+`)

// normalize lowercases the input and collapses runs of non-letters to a
// single underscore.
func normalize(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	collapsed := nonLetter.ReplaceAllString(lower, "_")
	return strings.Trim(collapsed, "_")
}

// cityMap is the static mapping from normalized market strings to pack ids.
// Unknown input is not listed here; it falls back to USStandard in
// MarketPackIDFromMarket.
var cityMap = map[string]ID{
	// New York boroughs
	"new_york":      NYCStrict,
	"new_york_city": NYCStrict,
	"new_york_ny":   NYCStrict,
	"nyc":           NYCStrict,
	"manhattan":     NYCStrict,
	"brooklyn":      NYCStrict,
	"brooklyn_ny":   NYCStrict,
	"queens":        NYCStrict,
	"bronx":         NYCStrict,
	"staten_island": NYCStrict,

	// California cities
	"los_angeles":   CAStandard,
	"san_francisco": CAStandard,
	"san_diego":     CAStandard,
	"oakland":       CAStandard,
	"sacramento":    CAStandard,
	"california":    CAStandard,

	// Texas cities
	"austin":      TXStandard,
	"houston":     TXStandard,
	"dallas":      TXStandard,
	"san_antonio": TXStandard,
	"texas":       TXStandard,

	// UK regions
	"london":           UKGDPR,
	"manchester":       UKGDPR,
	"birmingham":       UKGDPR,
	"united_kingdom":   UKGDPR,
	"uk":               UKGDPR,
	"england":          UKGDPR,
	"scotland":         UKGDPR,
	"wales":            UKGDPR,
	"northern_ireland": UKGDPR,

	// EU countries
	"germany":     EUGDPR,
	"france":      EUGDPR,
	"spain":       EUGDPR,
	"italy":       EUGDPR,
	"netherlands": EUGDPR,
	"belgium":     EUGDPR,
	"ireland":     EUGDPR,
	"portugal":    EUGDPR,
	"sweden":      EUGDPR,

	// LATAM
	"mexico":      LATAMStandard,
	"mexico_city": LATAMStandard,
	"brazil":      LATAMStandard,
	"argentina":   LATAMStandard,
	"colombia":    LATAMStandard,
	"chile":       LATAMStandard,
	"peru":        LATAMStandard,
}

// MarketPackIDFromMarket normalizes marketID and resolves it to a pack id.
// Any string not matched by the static map falls back to USStandard.
func MarketPackIDFromMarket(marketID string) ID {
	id, _ := MarketPackIDFromMarketWithFallback(marketID)
	return id
}

// MarketPackIDFromMarketWithFallback additionally reports whether the
// result came from the US_STANDARD fallback rather than an explicit match,
// so callers can surface unexpected jurisdictions in telemetry.
func MarketPackIDFromMarketWithFallback(marketID string) (ID, bool) {
	norm := normalize(marketID)
	if id, ok := cityMap[norm]; ok {
		return id, false
	}
	return USStandard, true
}

// registry is the immutable, process-wide table of default packs, built
// once at package init and never mutated thereafter.
var registry = map[ID]MarketPack{
	NYCStrict:     buildNYCStrict(),
	CAStandard:    buildCAStandard(),
	TXStandard:    buildTXStandard(),
	UKGDPR:        buildUKGDPR(),
	EUGDPR:        buildEUGDPR(),
	LATAMStandard: buildLATAMStandard(),
	USStandard:    buildUSStandard(),
}

// GetMarketPack returns the registered default pack for id, or
// core.ErrUnknownMarketPack if none is registered.
func GetMarketPack(id ID) (MarketPack, error) {
	pack, ok := registry[id]
	if !ok {
		return MarketPack{}, core.ErrUnknownMarketPack
	}
	return pack, nil
}

// GetMarketPackVersion returns a pack's semver version string.
func GetMarketPackVersion(pack MarketPack) string {
	return pack.Version
}

var effectiveDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
