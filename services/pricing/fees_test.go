package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		MinimumRate:       15.00,
		DefaultRate:       25.00,
		PromoWindowMonths: 6,
		Phases: map[string]PhaseFees{
			"1": {ClientFeePct: 0.15, CarerFeePct: 0.10},
			"2": {ClientFeePct: 0.20, CarerFeePct: 0.10},
		},
	}
}

func testEngine(now time.Time) *Engine {
	e := NewEngine(testConfig())
	e.Now = func() time.Time { return now }
	return e
}

func TestCalculateFees_Breakdown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := testEngine(now)

	calc, err := e.CalculateFees(20, 3, "1", nil)
	require.NoError(t, err)
	require.InDelta(t, 60.00, calc.Subtotal, 1e-9)
	require.InDelta(t, 9.00, calc.ClientFee, 1e-9)
	require.InDelta(t, 69.00, calc.ClientTotal, 1e-9)
	require.InDelta(t, 6.00, calc.CarerFee, 1e-9)
	require.InDelta(t, 54.00, calc.CarerEarnings, 1e-9)
	require.False(t, calc.PromoApplied)
}

func TestCalculateFees_Identities(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := testEngine(now)

	// Awkward quantities that produce sub-cent intermediate products.
	cases := []struct {
		rate     float64
		quantity float64
	}{
		{15.99, 1.5},
		{23.45, 7},
		{15.00, 0.25},
		{101.33, 2.5},
	}
	for _, tc := range cases {
		calc, err := e.CalculateFees(tc.rate, tc.quantity, "2", nil)
		require.NoError(t, err)
		require.InDelta(t, calc.ClientFee, calc.ClientTotal-calc.Subtotal, 1e-9,
			"clientTotal - subtotal must equal clientFee for rate=%v qty=%v", tc.rate, tc.quantity)
		require.InDelta(t, calc.CarerFee, calc.Subtotal-calc.CarerEarnings, 1e-9,
			"subtotal - carerEarnings must equal carerFee for rate=%v qty=%v", tc.rate, tc.quantity)
	}
}

func TestCalculateFees_MinimumRate(t *testing.T) {
	e := testEngine(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	t.Run("just below minimum fails", func(t *testing.T) {
		_, err := e.CalculateFees(14.99, 1, "1", nil)
		require.Error(t, err)
		require.True(t, HasCode(err, CodeInvalidRate))
	})

	t.Run("exactly at minimum succeeds", func(t *testing.T) {
		calc, err := e.CalculateFees(15.00, 1, "1", nil)
		require.NoError(t, err)
		require.InDelta(t, 15.00, calc.Subtotal, 1e-9)
	})
}

func TestCalculateFees_UnknownPhase(t *testing.T) {
	e := testEngine(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	_, err := e.CalculateFees(20, 1, "99", nil)
	require.Error(t, err)
	require.True(t, HasCode(err, CodeUnknownPricingPhase))
}

func TestCalculateFees_InvalidQuantity(t *testing.T) {
	e := testEngine(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	_, err := e.CalculateFees(20, 0, "1", nil)
	require.Error(t, err)
	require.True(t, HasCode(err, CodeInvalidQuantity))
}

func TestCalculateFees_PromoWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := testEngine(now)

	t.Run("inside window waives carer fee", func(t *testing.T) {
		onboarded := now.AddDate(0, -3, 0)
		calc, err := e.CalculateFees(20, 3, "2", &onboarded)
		require.NoError(t, err)
		require.True(t, calc.PromoApplied)
		require.Zero(t, calc.CarerFee)
		require.InDelta(t, calc.Subtotal, calc.CarerEarnings, 1e-9)
		// Client side is unaffected.
		require.InDelta(t, 12.00, calc.ClientFee, 1e-9)
	})

	t.Run("outside window charges carer fee", func(t *testing.T) {
		onboarded := now.AddDate(0, -7, 0)
		calc, err := e.CalculateFees(20, 3, "2", &onboarded)
		require.NoError(t, err)
		require.False(t, calc.PromoApplied)
		require.InDelta(t, 6.00, calc.CarerFee, 1e-9)
	})

	t.Run("window boundary is exclusive", func(t *testing.T) {
		onboarded := now.AddDate(0, -6, 0)
		calc, err := e.CalculateFees(20, 3, "2", &onboarded)
		require.NoError(t, err)
		require.False(t, calc.PromoApplied)
	})
}
