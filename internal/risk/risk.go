// Package risk implements the disaster risk scoring models for the three
// supported scenarios: earthquake (gempa), flood (banjir), and fire
// (kebakaran). It is intentionally dependency-free: it imports nothing from
// internal/ and can be tested without a database or an HTTP server.
//
// The formulas are deliberately simple deterministic weighted sums over
// linearly normalized inputs — not physically validated models. Each scenario
// is a data value fed to one shared combiner, so weights and thresholds stay
// independently tunable without duplicating the scoring path.
package risk

import (
	"math"
	"strings"
)

// ─── CONSTANTS ────────────────────────────────────────────────────────────────

// Category thresholds, identical across all three scenarios.
const (
	mediumThreshold = 40 // score >= 40 → Sedang
	highThreshold   = 70 // score >= 70 → Tinggi
)

// Nominal input domains. Inputs are not validated against these — values
// outside the domain are normalized anyway and may push a factor beyond its
// weight share; the final score cap at 100 is the only clamp.
const (
	magnitudeMin = 1.0
	magnitudeMax = 10.0
	depthMax     = 700.0 // km — deeper quakes are safer
	distanceMax  = 1000.0
	rainfallMax  = 500.0
	altitudeMax  = 3000.0 // m — higher ground is safer
	areaMax      = 10000.0
	windMax      = 100.0
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Category is the three-bucket risk classification. String values are the
// Indonesian labels rendered directly by the mobile client.
type Category string

const (
	CategoryLow    Category = "Rendah"
	CategoryMedium Category = "Sedang"
	CategoryHigh   Category = "Tinggi"
)

// Result is the fully computed output for one simulation. JSON tags carry the
// Indonesian wire names the client expects; they are also what the store
// persists, so the API response and history rows always agree.
type Result struct {
	Score       float64  `json:"skor_risiko"`      // 0–100, rounded to 2 decimals
	Category    Category `json:"kategori_risiko"`  // Rendah / Sedang / Tinggi
	Explanation string   `json:"penjelasan"`       // one composed sentence
}

// EarthquakeInput holds the raw gempa parameters.
type EarthquakeInput struct {
	Magnitude float64 // Richter, nominal [1, 10]
	Depth     float64 // km, nominal [0, 700]
	Distance  float64 // km from epicenter, nominal [0, 1000]
}

// FloodInput holds the raw banjir parameters.
type FloodInput struct {
	Rainfall          float64 // mm/h, nominal [0, 500]
	Altitude          float64 // m, nominal [0, 3000]
	DrainageCondition string  // baik / sedang / buruk (free text, case-insensitive)
}

// FireInput holds the raw kebakaran parameters.
type FireInput struct {
	Area         float64 // m², nominal [0, 10000]
	MaterialType string  // sulit / sedang / mudah (free text, case-insensitive)
	WindSpeed    float64 // km/h, nominal [0, 100]
}

// ─── NORMALIZATION ────────────────────────────────────────────────────────────

// Normalize linearly rescales value into [0,1] over [min, max]. A degenerate
// domain (max == min) carries no information and maps to the 0.5 midpoint.
// The result is NOT clamped: out-of-domain values normalize to <0 or >1.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (value - min) / (max - min)
}

// ─── CATEGORICAL SCORERS ──────────────────────────────────────────────────────

// defaultSeverity is returned for any label outside the known set. An
// unrecognized label is not an error — the caller's raw text is still echoed
// in the explanation.
const defaultSeverity = 0.5

var drainageScores = map[string]float64{
	"baik":   0.2,
	"sedang": 0.5,
	"buruk":  0.8,
}

var materialScores = map[string]float64{
	"sulit":  0.2, // hard to ignite
	"sedang": 0.5,
	"mudah":  0.8, // highly flammable
}

// DrainageScore maps a drainage-condition label to its severity in [0,1].
// Lookup is case-insensitive; unknown labels score defaultSeverity.
func DrainageScore(label string) float64 {
	return severityFor(drainageScores, label)
}

// MaterialScore maps a material-flammability label to its severity in [0,1].
// Lookup is case-insensitive; unknown labels score defaultSeverity.
func MaterialScore(label string) float64 {
	return severityFor(materialScores, label)
}

func severityFor(scores map[string]float64, label string) float64 {
	if s, ok := scores[strings.ToLower(label)]; ok {
		return s
	}
	return defaultSeverity
}

// ─── WEIGHTED MODEL ───────────────────────────────────────────────────────────

// weightedFactor is one input to a scenario model: a normalized (or
// categorical) value, its weight, and its direction. Inverse factors
// contribute 1−value, so e.g. deeper quakes and higher ground score lower.
type weightedFactor struct {
	value   float64
	weight  float64
	inverse bool
}

// combine collapses the weighted factors into a percentage capped at 100,
// rounds to two decimals, and buckets it. Each scenario's weights sum to 1.0,
// so only out-of-domain inputs can actually hit the cap.
func combine(factors []weightedFactor) (float64, Category) {
	sum := 0.0
	for _, f := range factors {
		v := f.value
		if f.inverse {
			v = 1 - v
		}
		sum += f.weight * v
	}

	pct := sum * 100
	if pct > 100 {
		pct = 100
	}
	pct = round2(pct)

	return pct, categoryFor(pct)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func categoryFor(score float64) Category {
	switch {
	case score < mediumThreshold:
		return CategoryLow
	case score < highThreshold:
		return CategoryMedium
	default:
		return CategoryHigh
	}
}

// ─── SCENARIO MODELS ──────────────────────────────────────────────────────────

// ScoreEarthquake computes gempa risk.
//
//	Risk = 0.5·M + 0.3·(1−D) + 0.2·(1−dist)
//
// where M, D, dist are the normalized magnitude, depth, and distance.
// Magnitude drives risk up; depth and distance drive it down.
func ScoreEarthquake(in EarthquakeInput) Result {
	normMagnitude := Normalize(in.Magnitude, magnitudeMin, magnitudeMax)
	normDepth := Normalize(in.Depth, 0, depthMax)
	normDistance := Normalize(in.Distance, 0, distanceMax)

	score, category := combine([]weightedFactor{
		{value: normMagnitude, weight: 0.5},
		{value: normDepth, weight: 0.3, inverse: true},
		{value: normDistance, weight: 0.2, inverse: true},
	})

	return Result{
		Score:       score,
		Category:    category,
		Explanation: explainEarthquake(in, normMagnitude, normDepth, normDistance),
	}
}

// ScoreFlood computes banjir risk.
//
//	Risk = 0.4·R + 0.3·(1−A) + 0.3·Dr
//
// where R and A are the normalized rainfall and altitude and Dr is the
// drainage-condition severity.
func ScoreFlood(in FloodInput) Result {
	normRainfall := Normalize(in.Rainfall, 0, rainfallMax)
	normAltitude := Normalize(in.Altitude, 0, altitudeMax)
	drainage := DrainageScore(in.DrainageCondition)

	score, category := combine([]weightedFactor{
		{value: normRainfall, weight: 0.4},
		{value: normAltitude, weight: 0.3, inverse: true},
		{value: drainage, weight: 0.3},
	})

	return Result{
		Score:       score,
		Category:    category,
		Explanation: explainFlood(in, normRainfall, normAltitude),
	}
}

// ScoreFire computes kebakaran risk.
//
//	Risk = 0.4·Ar + 0.3·M + 0.3·W
//
// where Ar and W are the normalized area and wind speed and M is the
// material-flammability severity. All three factors are direct.
func ScoreFire(in FireInput) Result {
	normArea := Normalize(in.Area, 0, areaMax)
	material := MaterialScore(in.MaterialType)
	normWind := Normalize(in.WindSpeed, 0, windMax)

	score, category := combine([]weightedFactor{
		{value: normArea, weight: 0.4},
		{value: material, weight: 0.3},
		{value: normWind, weight: 0.3},
	})

	return Result{
		Score:       score,
		Category:    category,
		Explanation: explainFire(in, normArea, normWind),
	}
}
