package risk

import (
	"fmt"
	"strconv"
	"strings"
)

// Explanation tier cuts. Direct factors (magnitude, rainfall, area, wind)
// read high above 0.7 and moderate above 0.4; the earthquake inverse factors
// (depth, distance) read the raw normalized value with 0.3/0.7 cuts instead,
// so "dangkal" (shallow) and "dekat" (close) name the dangerous end.
const (
	tierHigh = 0.7
	tierMid  = 0.4

	inverseTierLow  = 0.3
	inverseTierHigh = 0.7
)

// explanationPrefix opens every composed sentence.
const explanationPrefix = "Berdasarkan parameter: "

// explainEarthquake renders the gempa factor phrases in model order:
// magnitude, depth, distance.
func explainEarthquake(in EarthquakeInput, normMagnitude, normDepth, normDistance float64) string {
	parts := make([]string, 0, 3)

	switch {
	case normMagnitude > tierHigh:
		parts = append(parts, fmt.Sprintf("Magnitudo %s SR tergolong tinggi", num(in.Magnitude)))
	case normMagnitude > tierMid:
		parts = append(parts, fmt.Sprintf("Magnitudo %s SR sedang", num(in.Magnitude)))
	default:
		parts = append(parts, fmt.Sprintf("Magnitudo %s SR rendah", num(in.Magnitude)))
	}

	switch {
	case normDepth < inverseTierLow:
		parts = append(parts, "kedalaman gempa dangkal")
	case normDepth < inverseTierHigh:
		parts = append(parts, "kedalaman gempa sedang")
	default:
		parts = append(parts, "kedalaman gempa dalam")
	}

	switch {
	case normDistance < inverseTierLow:
		parts = append(parts, "jarak dari pusat gempa dekat")
	case normDistance < inverseTierHigh:
		parts = append(parts, "jarak dari pusat gempa sedang")
	default:
		parts = append(parts, "jarak dari pusat gempa jauh")
	}

	return sentence(parts)
}

// explainFlood renders the banjir factor phrases in model order: rainfall,
// altitude, drainage. The drainage phrase echoes the caller's raw label, not
// its mapped severity.
func explainFlood(in FloodInput, normRainfall, normAltitude float64) string {
	parts := make([]string, 0, 3)

	switch {
	case normRainfall > tierHigh:
		parts = append(parts, fmt.Sprintf("curah hujan %s mm/jam sangat tinggi", num(in.Rainfall)))
	case normRainfall > tierMid:
		parts = append(parts, fmt.Sprintf("curah hujan %s mm/jam tinggi", num(in.Rainfall)))
	default:
		parts = append(parts, fmt.Sprintf("curah hujan %s mm/jam normal", num(in.Rainfall)))
	}

	switch {
	case normAltitude > tierHigh:
		parts = append(parts, "ketinggian wilayah cukup tinggi")
	case normAltitude > tierMid:
		parts = append(parts, "ketinggian wilayah sedang")
	default:
		parts = append(parts, "ketinggian wilayah rendah")
	}

	parts = append(parts, fmt.Sprintf("kondisi drainase %s", in.DrainageCondition))

	return sentence(parts)
}

// explainFire renders the kebakaran factor phrases in model order: area,
// material, wind speed. The material phrase echoes the caller's raw label.
func explainFire(in FireInput, normArea, normWind float64) string {
	parts := make([]string, 0, 3)

	switch {
	case normArea > tierHigh:
		parts = append(parts, fmt.Sprintf("luas area %s m² sangat luas", num(in.Area)))
	case normArea > tierMid:
		parts = append(parts, fmt.Sprintf("luas area %s m² cukup luas", num(in.Area)))
	default:
		parts = append(parts, fmt.Sprintf("luas area %s m² terbatas", num(in.Area)))
	}

	parts = append(parts, fmt.Sprintf("material %s terbakar", in.MaterialType))

	switch {
	case normWind > tierHigh:
		parts = append(parts, fmt.Sprintf("kecepatan angin %s km/jam tinggi", num(in.WindSpeed)))
	case normWind > tierMid:
		parts = append(parts, fmt.Sprintf("kecepatan angin %s km/jam sedang", num(in.WindSpeed)))
	default:
		parts = append(parts, fmt.Sprintf("kecepatan angin %s km/jam rendah", num(in.WindSpeed)))
	}

	return sentence(parts)
}

func sentence(parts []string) string {
	return explanationPrefix + strings.Join(parts, ", ") + "."
}

// num formats a raw value the way it was supplied: 7.5 → "7.5", 50 → "50".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
