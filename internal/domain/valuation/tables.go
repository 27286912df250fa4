package valuation

import "github.com/okian/portalrank/internal/domain/model"

// fallbackMultiplier applies to positions and classes missing from the tables.
const fallbackMultiplier = 1.0

var positionMultipliers = map[model.Position]float64{
	model.QB:   1.50,
	model.EDGE: 1.25,
	model.DE:   1.25,
	model.OT:   1.20,
	model.CB:   1.15,
	model.WR:   1.10,
	model.DT:   1.05,
	model.LB:   1.00,
	model.S:    0.95,
	model.TE:   0.90,
	model.RB:   0.85,
	model.OG:   0.85,
	model.C:    0.80,
	model.K:    0.50,
	model.P:    0.50,
	model.LS:   0.45,
}

var classWeights = map[model.Class]float64{
	model.Graduate:          1.15,
	model.RedshirtSenior:    1.10,
	model.Senior:            1.05,
	model.RedshirtJunior:    1.00,
	model.Junior:            0.95,
	model.RedshirtSophomore: 0.90,
	model.Sophomore:         0.85,
	model.RedshirtFreshman:  0.75,
	model.Freshman:          0.70,
}

// PositionMultiplier returns the market multiplier for pos, 1.0 if unknown.
func PositionMultiplier(pos model.Position) float64 {
	if m, ok := positionMultipliers[pos]; ok {
		return m
	}
	return fallbackMultiplier
}

// ClassWeight returns the experience multiplier for class, 1.0 if unknown.
func ClassWeight(class model.Class) float64 {
	if w, ok := classWeights[class]; ok {
		return w
	}
	return fallbackMultiplier
}

// PositionMultipliers returns a copy of the position table.
func PositionMultipliers() map[model.Position]float64 {
	out := make(map[model.Position]float64, len(positionMultipliers))
	for k, v := range positionMultipliers {
		out[k] = v
	}
	return out
}

// ClassWeights returns a copy of the class table.
func ClassWeights() map[model.Class]float64 {
	out := make(map[model.Class]float64, len(classWeights))
	for k, v := range classWeights {
		out[k] = v
	}
	return out
}
