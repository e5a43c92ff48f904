package views

import "github.com/nshankar/auweather/internal/dataset"

// Bin is one named range of a bucketed continuous field. Ranges are
// left-exclusive/right-inclusive; the final bin of a table is open-ended
// above its predecessor.
type Bin struct {
	Label string
	Upper float64 // inclusive upper edge; +Inf semantics for the last bin
}

// Bins is an ordered edge table. A value lands in the first bin whose upper
// edge it does not exceed, or in the last bin.
type Bins []Bin

// HumidityBins and WindBins are the fixed default bucketings. The edges
// (50/80 and 15/30) are configuration, not derived from the data.
var (
	HumidityBins = Bins{{Label: "Low", Upper: 50}, {Label: "Medium", Upper: 80}, {Label: "High"}}
	WindBins     = Bins{{Label: "Calm", Upper: 15}, {Label: "Moderate", Upper: 30}, {Label: "Strong"}}
)

// bucket returns the label for a value.
func (b Bins) bucket(v float64) string {
	for i, bin := range b {
		if i == len(b)-1 || v <= bin.Upper {
			return bin.Label
		}
	}
	return ""
}

// BucketProb is the percentage of Yes outcomes within one bucket.
type BucketProb struct {
	Bucket      string  `json:"bucket"`
	Probability float64 `json:"probability"` // 0..100
	Count       int     `json:"count"`
}

// CategoryProbability buckets bucketField per the edge table and computes,
// per bucket, 100 × (rows where outcomeField == "Yes") / rows. Rows with a
// null in either field are excluded before bucketing, and a bucket left with
// no rows is omitted rather than reported as 0%. Results follow the bin
// order of the edge table.
func CategoryProbability(obs []dataset.Observation, bucketField NumericField, bins Bins, outcomeField FlagField) []BucketProb {
	yes := make(map[string]int, len(bins))
	total := make(map[string]int, len(bins))
	for _, o := range obs {
		v := bucketField(o)
		outcome := outcomeField(o)
		if !v.Valid || !outcome.Valid {
			continue
		}
		label := bins.bucket(v.Float64)
		total[label]++
		if outcome.String == "Yes" {
			yes[label]++
		}
	}
	out := make([]BucketProb, 0, len(bins))
	for _, bin := range bins {
		n := total[bin.Label]
		if n == 0 {
			continue
		}
		out = append(out, BucketProb{
			Bucket:      bin.Label,
			Probability: 100 * float64(yes[bin.Label]) / float64(n),
			Count:       n,
		})
	}
	return out
}
