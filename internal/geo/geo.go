package geo

import "github.com/nshankar/auweather/internal/views"

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// coordinates maps dataset location names to coordinates. The table is
// static for the process lifetime and matched case-sensitively; it is never
// derived from the dataset itself. Names follow the weatherAUS spelling
// (no spaces).
var coordinates = map[string]Coordinate{
	"Sydney":           {-33.8688, 151.2093},
	"SydneyAirport":    {-33.9461, 151.1772},
	"Melbourne":        {-37.8136, 144.9631},
	"MelbourneAirport": {-37.6653, 144.8320},
	"Brisbane":         {-27.4698, 153.0251},
	"Perth":            {-31.9505, 115.8605},
	"Adelaide":         {-34.9285, 138.6007},
	"Darwin":           {-12.4634, 130.8456},
	"Cairns":           {-16.9203, 145.7700},
	"Hobart":           {-42.8821, 147.3272},
	"Canberra":         {-35.2809, 149.1300},
	"GoldCoast":        {-28.0167, 153.4000},
	"Wollongong":       {-34.4278, 150.8931},
	"CoffsHarbour":     {-30.2963, 153.1157},
	"Townsville":       {-19.2589, 146.8169},
	"Albury":           {-36.0806, 146.9156},
	"Ballarat":         {-37.5622, 143.8503},
	"Bendigo":          {-36.7570, 144.2794},
	"Newcastle":        {-32.9283, 151.7817},
	"NorahHead":        {-33.2810, 151.5790},
	"Richmond":         {-33.6000, 150.7500},
	"WaggaWagga":       {-35.1080, 147.3700},
	"Williamtown":      {-32.7950, 151.8400},
	"Sale":             {-38.1092, 147.0687},
	"Mildura":          {-34.2050, 142.1240},
	"Portland":         {-38.3420, 141.6060},
	"Watsonia":         {-37.7167, 145.0833},
	"Moree":            {-29.4653, 149.8417},
	"Penrith":          {-33.7510, 150.6900},
	"Tuggeranong":      {-35.4240, 149.0880},
	"MountGinini":      {-35.5290, 148.7720},
	"PearceRAAF":       {-31.6670, 116.0160},
	"PerthAirport":     {-31.9403, 115.9672},
	"Albany":           {-35.0228, 117.8814},
	"Witchcliffe":      {-34.0126, 115.1013},
	"SalmonGums":       {-32.9833, 121.6333},
	"Walpole":          {-34.9766, 116.7334},
	"Launceston":       {-41.4332, 147.1441},
	"AliceSprings":     {-23.6980, 133.8807},
	"Katherine":        {-14.4650, 132.2630},
	"Uluru":            {-25.3444, 131.0369},
	"Cobar":            {-31.4988, 145.8440},
	"BadgerysCreek":    {-33.8850, 150.6900},
	"Nhil":             {-36.3333, 141.6500},
	"Dartmoor":         {-37.9170, 141.2720},
	"Nuriootpa":        {-34.4690, 138.9960},
	"Woomera":          {-31.1980, 136.8250},
}

// Lookup returns the coordinate for a location name, exact match only.
func Lookup(name string) (Coordinate, bool) {
	c, ok := coordinates[name]
	return c, ok
}

// MapPoint is one plottable location with its metric value.
type MapPoint struct {
	Location string  `json:"location"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Value    float64 `json:"value"`
}

// MapPoints projects a top-N group result onto the map. Locations missing
// from the coordinate table are dropped entirely; they are never plotted at
// a placeholder coordinate.
func MapPoints(stats []views.GroupStat) []MapPoint {
	out := make([]MapPoint, 0, len(stats))
	for _, s := range stats {
		c, ok := Lookup(s.Key)
		if !ok {
			continue
		}
		out = append(out, MapPoint{Location: s.Key, Lat: c.Lat, Lon: c.Lon, Value: s.Mean})
	}
	return out
}
