package osm2cs2

// RawRoad is road way after tag parsing
type RawRoad struct {
	ID          int64
	Highway     string
	Name        string
	Coordinates []GeoPoint
	Lanes       int
	OneWay      bool
	MaxSpeed    string
	Priority    int
}

// RawRailway is railway way after tag parsing
type RawRailway struct {
	ID            int64
	Railway       string
	Name          string
	Coordinates   []GeoPoint
	Electrified   string
	IsUnderground bool
}

// RawWaterway is linear waterway or water area after tag parsing
type RawWaterway struct {
	ID          int64
	Kind        string
	Name        string
	Coordinates []GeoPoint
	IsArea      bool
	Width       *float64
}

// RawStop is transit stop node after tag parsing
type RawStop struct {
	ID            int64
	Name          string
	Kind          string
	Coordinate    GeoPoint
	IsExternal    bool
	IsUnderground bool
	HasShelter    bool
	HasBench      bool
	Wheelchair    string
}

// RawRoute is transit route relation after tag parsing
type RawRoute struct {
	ID          int64
	Name        string
	Ref         string
	RouteType   string
	Operator    string
	Network     string
	Colour      string
	From        string
	To          string
	StopIDs     []int64
	IsIntercity bool
	Fare        *RawFare
}

// Input is everything the converter needs for one run
type Input struct {
	Roads     []RawRoad
	Railways  []RawRailway
	Waterways []RawWaterway
	Stops     []RawStop
	Routes    []RawRoute
}
