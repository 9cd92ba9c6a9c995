package osm2cs2

const (
	FARE_SOURCE_DEFAULT = "default"
	FARE_SOURCE_OSM     = "osm"

	defaultFareRouteType = "bus"
)

// RawFare is fare as known upstream. Nil or empty fields are not set.
type RawFare struct {
	BaseFare *float64 `json:"base_fare,omitempty" yaml:"base_fare"`
	DayPass  *float64 `json:"day_pass,omitempty" yaml:"day_pass"`
	Currency string   `json:"currency,omitempty" yaml:"currency"`
	Source   string   `json:"source,omitempty" yaml:"-"`
}

func (fare *RawFare) isEmpty() bool {
	return fare == nil || (fare.BaseFare == nil && fare.DayPass == nil && fare.Currency == "" && fare.Source == "")
}

// Fare is resolved route fare
type Fare struct {
	BaseFare float64  `json:"base_fare"`
	DayPass  *float64 `json:"day_pass,omitempty"`
	Currency string   `json:"currency"`
	Source   string   `json:"source"`
}

// FareTable holds default fares per OSM route type
type FareTable map[string]Fare

// DefaultFares returns fresh copy of built-in fares (EUR)
func DefaultFares() FareTable {
	return FareTable{
		"bus":        {BaseFare: 1.50, DayPass: floatPtr(5.00), Currency: "EUR"},
		"tram":       {BaseFare: 1.50, DayPass: floatPtr(5.00), Currency: "EUR"},
		"train":      {BaseFare: 3.50, DayPass: floatPtr(18.00), Currency: "EUR"},
		"subway":     {BaseFare: 1.80, DayPass: floatPtr(7.00), Currency: "EUR"},
		"light_rail": {BaseFare: 1.80, DayPass: floatPtr(7.00), Currency: "EUR"},
		"ferry":      {BaseFare: 2.50, DayPass: floatPtr(10.00), Currency: "EUR"},
	}
}

// WithOverrides returns new table where given fares are merged on top of the current ones.
// Route types missing in the table are added as is.
func (table FareTable) WithOverrides(overrides map[string]RawFare) FareTable {
	result := make(FareTable, len(table)+len(overrides))
	for routeType, fare := range table {
		result[routeType] = fare
	}
	for routeType, override := range overrides {
		override := override
		result[routeType] = mergeFare(result[routeType], &override)
	}
	return result
}

// Resolve returns fare for a route. Explicit fare wins over the defaults of the
// route type; unknown route types fall back to bus defaults.
// Without explicit fare the defaults are tagged with "default" source.
func (table FareTable) Resolve(routeType string, explicit *RawFare) Fare {
	defaults, ok := table[routeType]
	if !ok {
		defaults = table[defaultFareRouteType]
	}
	if explicit.isEmpty() {
		defaults.Source = FARE_SOURCE_DEFAULT
		return defaults
	}
	fare := mergeFare(defaults, explicit)
	if fare.Source == "" {
		fare.Source = FARE_SOURCE_OSM
	}
	return fare
}

func mergeFare(base Fare, over *RawFare) Fare {
	if over.BaseFare != nil {
		base.BaseFare = *over.BaseFare
	}
	if over.DayPass != nil {
		base.DayPass = floatPtr(*over.DayPass)
	}
	if over.Currency != "" {
		base.Currency = over.Currency
	}
	if over.Source != "" {
		base.Source = over.Source
	}
	return base
}

func floatPtr(v float64) *float64 {
	return &v
}
