// Package yield provides the fixed five-channel resource vector that every
// economic calculation in the engine is expressed in.
package yield

import "math"

// Yield is a per-turn resource vector. All subsystems (settlements, buildings,
// trade, production) produce and consume these five channels.
type Yield struct {
	Gold       int `json:"gold"`       // Treasury income
	Research   int `json:"research"`   // Tech progress
	Culture    int `json:"culture"`    // Border growth and policies
	Production int `json:"production"` // Build queue progress
	Growth     int `json:"growth"`     // Population progress
}

// Add returns the component-wise sum of two yields.
func Add(a, b Yield) Yield {
	return Yield{
		Gold:       a.Gold + b.Gold,
		Research:   a.Research + b.Research,
		Culture:    a.Culture + b.Culture,
		Production: a.Production + b.Production,
		Growth:     a.Growth + b.Growth,
	}
}

// Scale multiplies every channel by factor and floors the result.
// Floor, not truncation toward zero; negative factors are outside the
// supported domain.
func Scale(y Yield, factor float64) Yield {
	return Yield{
		Gold:       scaleChannel(y.Gold, factor),
		Research:   scaleChannel(y.Research, factor),
		Culture:    scaleChannel(y.Culture, factor),
		Production: scaleChannel(y.Production, factor),
		Growth:     scaleChannel(y.Growth, factor),
	}
}

func scaleChannel(v int, factor float64) int {
	return int(math.Floor(float64(v) * factor))
}
