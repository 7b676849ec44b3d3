// Package market evolves instrument prices one month at a time.
//
// Every instrument follows one of four stochastic models selected by its
// catalog entry. The package holds no state of its own: the only inputs are
// the instrument record and an injected random source, so a fixed sequence
// reproduces a price path exactly.
package market

import (
	"math"

	"github.com/rustyeddy/decade/game"
)

// Source yields uniform randoms in [0, 1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

const (
	// FloorPrice is the global minimum any instrument can quote.
	FloorPrice = 0.01

	// PumpDumpFloor is the minimum price of pump-and-dump instruments.
	PumpDumpFloor = 1.0

	// PumpProbability is the per-month chance of a discontinuous jump.
	PumpProbability = 0.12

	// ReversionPull is the fraction of the gap toward the anchor closed
	// each month by mean-reverting instruments.
	ReversionPull = 0.15
)

// Step advances one instrument by one month, committing the new price and
// appending it to the instrument's history.
func Step(instr *game.Instrument, rnd Source) float64 {
	var next float64

	switch instr.Model {
	case game.ModelMeanRevert:
		pull := (instr.MeanTarget - instr.Price) * ReversionPull
		noise := (rnd.Float64() - 0.5) * instr.Volatility * instr.Price
		next = instr.Price + pull + noise

	case game.ModelPumpDump:
		if rnd.Float64() < PumpProbability {
			// Coin-flip first, then sample the jump magnitude.
			if rnd.Float64() > 0.5 {
				next = instr.Price * (rnd.Float64()*2 + 1.2)
			} else {
				next = instr.Price * (rnd.Float64()*0.5 + 0.1)
			}
		} else {
			next = instr.Price * (1 + (rnd.Float64()-0.5)*instr.Volatility)
		}
		next = math.Max(PumpDumpFloor, next)

	case game.ModelClassic:
		change := (rnd.Float64() - 0.5 + instr.Trend) * instr.Volatility
		next = instr.Price * (1 + change)

	default: // game.ModelTrending
		// Volatility itself varies month to month in [0.5x, 1.5x).
		effVol := instr.Volatility * (0.5 + rnd.Float64())
		change := (rnd.Float64() - 0.5 + instr.Trend) * effVol
		next = instr.Price * (1 + change)
	}

	next = commit(next)
	instr.Price = next
	instr.History = append(instr.History, next)
	return next
}

// StepAll advances every instrument in slice order.
func StepAll(instruments []game.Instrument, rnd Source) {
	for i := range instruments {
		Step(&instruments[i], rnd)
	}
}

// Rally applies a bull-news shock: every ordinary stock gains up to 15%.
// Crypto instruments are unaffected by news shocks.
func Rally(instruments []game.Instrument, rnd Source) {
	for i := range instruments {
		if instruments[i].Kind == game.KindStock {
			instruments[i].Price *= 1 + rnd.Float64()*0.15
		}
	}
}

// Slump applies a bear-news shock: every ordinary stock loses up to 10%.
func Slump(instruments []game.Instrument, rnd Source) {
	for i := range instruments {
		if instruments[i].Kind == game.KindStock {
			instruments[i].Price *= 1 - rnd.Float64()*0.10
		}
	}
}

// commit clamps to the global floor and rounds to cents, the precision at
// which prices are quoted and recorded.
func commit(price float64) float64 {
	rounded := math.Round(price*100) / 100
	return math.Max(FloorPrice, rounded)
}
