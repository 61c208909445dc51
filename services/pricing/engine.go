package pricing

import (
	"math"
	"time"
)

// PhaseFees holds the commission percentages for one pricing phase.
type PhaseFees struct {
	ClientFeePct float64
	CarerFeePct  float64
}

// Config is the pricing configuration snapshot the engine operates on. The
// host resolves it once at startup and injects it here; the engine never
// reads ambient global state.
type Config struct {
	MinimumRate       float64
	DefaultRate       float64
	PromoWindowMonths int
	Phases            map[string]PhaseFees
}

// Engine resolves base rates and computes fee breakdowns. It is pure and
// safe for unbounded concurrent use.
type Engine struct {
	Cfg Config
	Now func() time.Time // injectable clock for the promo window boundary
}

func NewEngine(cfg Config) *Engine {
	return &Engine{Cfg: cfg, Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
