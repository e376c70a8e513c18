package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// VolumeParser turns user input such as "250", "250ml", "1.5 l" or
// "2 litres" into millilitres.
type VolumeParser struct {
	// DefaultUnit is applied to bare numbers.
	DefaultUnit string
}

func NewVolumeParser() *VolumeParser {
	return &VolumeParser{DefaultUnit: "ml"}
}

var volumeRe = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)\s*([a-z]*)$`)

var unitMl = map[string]float64{
	"ml":          1,
	"millilitre":  1,
	"millilitres": 1,
	"milliliter":  1,
	"milliliters": 1,
	"cl":          10,
	"dl":          100,
	"l":           1000,
	"litre":       1000,
	"litres":      1000,
	"liter":       1000,
	"liters":      1000,
	"oz":          29.5735,
	"cup":         250,
	"cups":        250,
	"glass":       250,
	"glasses":     250,
}

// Parse returns the volume in whole millilitres, rounded to nearest.
func (p *VolumeParser) Parse(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("empty input")
	}

	matches := volumeRe.FindStringSubmatch(input)
	if matches == nil {
		return 0, fmt.Errorf("not a volume: %q", input)
	}

	amount, err := strconv.ParseFloat(strings.Replace(matches[1], ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", matches[1], err)
	}

	unit := matches[2]
	if unit == "" {
		unit = p.DefaultUnit
	}
	factor, ok := unitMl[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", unit)
	}

	ml := math.Round(amount * factor)
	if ml > math.MaxInt32 {
		return 0, fmt.Errorf("volume too large: %q", input)
	}
	return int(ml), nil
}
