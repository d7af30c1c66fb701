package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette/brewer"
)

// riskRamp is ColorBrewer's 11-class RdYlGn reversed: index 0 is dark green,
// the last index dark red.
var riskRamp = mustRiskRamp()

func mustRiskRamp() []color.NRGBA {
	pal, err := brewer.GetPalette(brewer.TypeDiverging, "RdYlGn", 11)
	if err != nil {
		panic(err)
	}
	cs := pal.Colors()
	ramp := make([]color.NRGBA, len(cs))
	for i, c := range cs {
		ramp[len(cs)-1-i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return ramp
}

// RiskColor maps value, normalized against ceiling, onto the reversed
// red-yellow-green ramp: 0 is the green end, ceiling the red end. Values
// outside [0, ceiling] are clamped.
func RiskColor(value, ceiling float64) color.NRGBA {
	t := 0.0
	if ceiling > 0 {
		t = value / ceiling
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(riskRamp)-1)
	i := int(math.Floor(pos))
	if i >= len(riskRamp)-1 {
		return riskRamp[len(riskRamp)-1]
	}
	frac := pos - float64(i)
	a, b := riskRamp[i], riskRamp[i+1]
	return color.NRGBA{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 0xff,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
