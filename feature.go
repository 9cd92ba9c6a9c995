package osm2cs2

// Road is converted road segment
type Road struct {
	ID         string           `json:"id"`
	Type       RoadType         `json:"type"`
	Name       string           `json:"name"`
	Points     []ProjectedPoint `json:"points"`
	Lanes      int              `json:"lanes"`
	OneWay     bool             `json:"oneWay"`
	SpeedLimit int              `json:"speedLimit"`
	Priority   int              `json:"priority"`
}

// Railway is converted railway segment
type Railway struct {
	ID          string           `json:"id"`
	Type        RailwayType      `json:"type"`
	Name        string           `json:"name"`
	Points      []ProjectedPoint `json:"points"`
	Electrified bool             `json:"electrified"`
}

// Waterway is converted waterway segment or water area ring
type Waterway struct {
	ID     string           `json:"id"`
	Type   WaterwayType     `json:"type"`
	Name   string           `json:"name"`
	IsArea bool             `json:"isArea"`
	Points []ProjectedPoint `json:"points"`
	Width  *float64         `json:"width"`
}

// Stop is converted transit stop
type Stop struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Position      ProjectedPoint `json:"position"`
	IsExternal    bool           `json:"is_external"`
	IsUnderground bool           `json:"is_underground"`
	HasShelter    bool           `json:"has_shelter"`
	HasBench      bool           `json:"has_bench"`
	Wheelchair    string         `json:"wheelchair"`
}

// Route is converted transit route. It has no geometry of its own.
type Route struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Number      string          `json:"number"`
	Type        TransitLineType `json:"type"`
	Operator    string          `json:"operator"`
	Colour      string          `json:"colour"`
	Network     string          `json:"network"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	IsIntercity bool            `json:"is_intercity"`
	Stops       []string        `json:"stops"`
	Fare        Fare            `json:"fare"`
}

// Transit groups stops and routes
type Transit struct {
	Stops  []Stop  `json:"stops"`
	Routes []Route `json:"routes"`
}

// Meta describes conversion run
type Meta struct {
	City             string            `json:"city"`
	BoundingBox      BoundingBox       `json:"bbox"`
	CoordinateSystem ProjectionSummary `json:"coordinate_system"`
	ElevationPoints  int               `json:"elevation_points"`
}

// Dataset is full converted city
type Dataset struct {
	Roads     []Road     `json:"roads"`
	Railways  []Railway  `json:"railways"`
	Waterways []Waterway `json:"waterways"`
	Transit   Transit    `json:"transit"`
	Meta      Meta       `json:"_meta"`
}
