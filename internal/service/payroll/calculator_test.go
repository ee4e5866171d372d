package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestProgressiveTax(t *testing.T) {
	cases := []struct {
		name string
		pkp  int64
		want int64
	}{
		{"zero", 0, 0},
		{"inside first bracket", 10_000_000, 500_000},
		{"exactly first bracket boundary", 60_000_000, 3_000_000},
		{"just over first boundary", 60_000_100, 3_000_015},
		{"second bracket", 100_000_000, 3_000_000 + 6_000_000},
		{"exactly second bracket boundary", 250_000_000, 3_000_000 + 28_500_000},
		{"top bracket", 300_000_000, 3_000_000 + 28_500_000 + 12_500_000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := progressiveTax(d(c.pkp))
			assert.True(t, d(c.want).Equal(got), "progressiveTax(%d) = %s, want %d", c.pkp, got, c.want)
		})
	}
}

func TestCalculateOvertimePay(t *testing.T) {
	// base 5,000,000 / 173 * 10h = 289,017.34... -> 289,017
	figures := Calculate(CalculatorInput{
		BaseSalary:    d(5_000_000),
		OvertimeHours: d(10),
	}, payroll.DefaultSettings())

	assert.True(t, d(289_017).Equal(figures.OvertimePay), "overtime pay = %s", figures.OvertimePay)
	assert.True(t, d(5_289_017).Equal(figures.Gross), "gross = %s", figures.Gross)
}

func TestCalculateStatutoryDeductionsUseBaseSalary(t *testing.T) {
	// Deductions must come off base, not gross: a large bonus inflates gross
	// but leaves the contributions untouched.
	settings := payroll.DefaultSettings()
	in := CalculatorInput{BaseSalary: d(10_000_000)}

	plain := Calculate(in, settings)
	in.Bonus = d(50_000_000)
	withBonus := Calculate(in, settings)

	assert.True(t, plain.BPJSJHT.Equal(withBonus.BPJSJHT))
	assert.True(t, plain.BPJSJP.Equal(withBonus.BPJSJP))
	assert.True(t, plain.BPJSHealth.Equal(withBonus.BPJSHealth))
	assert.True(t, d(200_000).Equal(plain.BPJSJHT), "2%% of 10M")
	assert.True(t, d(100_000).Equal(plain.BPJSJP))
	assert.True(t, d(100_000).Equal(plain.BPJSHealth))
}

func TestCalculateBelowPTKPPaysNoTax(t *testing.T) {
	// 4M monthly annualizes below the 54M threshold after deductions.
	figures := Calculate(CalculatorInput{BaseSalary: d(4_000_000)}, payroll.DefaultSettings())
	assert.True(t, figures.IncomeTax.IsZero(), "income tax = %s", figures.IncomeTax)
}

func TestCalculateOccupationalExpenseCap(t *testing.T) {
	// 5% of a 30M gross is 1.5M, above the 500,000 cap; the capped value
	// must be used. With the cap in place, monthly net-of-expense rises and
	// so does the tax compared to an uncapped run.
	settings := payroll.DefaultSettings()
	capped := Calculate(CalculatorInput{BaseSalary: d(30_000_000)}, settings)

	settings.OfficeExpenseCap = d(10_000_000)
	uncapped := Calculate(CalculatorInput{BaseSalary: d(30_000_000)}, settings)

	assert.True(t, capped.IncomeTax.GreaterThan(uncapped.IncomeTax),
		"capped tax %s must exceed uncapped %s", capped.IncomeTax, uncapped.IncomeTax)
}

func TestCalculateNetPayIdentity(t *testing.T) {
	// NetPay == Gross - (JHT + JP + Health + IncomeTax + ManualDeduction)
	// must hold for every input combination.
	inputs := []CalculatorInput{
		{},
		{BaseSalary: d(5_000_000)},
		{BaseSalary: d(5_000_000), OvertimeHours: d(10), Bonus: d(1_000_000)},
		{BaseSalary: d(12_345_678), FixedAllowance: d(500_000), TransportAllowance: d(300_000), ManualDeduction: d(250_000)},
		{BaseSalary: d(100_000_000), Bonus: d(10_000_000), OvertimeHours: decimal.NewFromFloat(7.5)},
	}
	settings := payroll.DefaultSettings()
	for _, in := range inputs {
		figures := Calculate(in, settings)
		deductions := figures.BPJSJHT.Add(figures.BPJSJP).Add(figures.BPJSHealth).
			Add(figures.IncomeTax).Add(in.ManualDeduction)
		assert.True(t, figures.Gross.Sub(deductions).Equal(figures.NetPay),
			"net pay identity violated for base %s: gross %s deductions %s net %s",
			in.BaseSalary, figures.Gross, deductions, figures.NetPay)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	in := CalculatorInput{
		BaseSalary:      d(8_765_432),
		FixedAllowance:  d(1_000_000),
		OvertimeHours:   decimal.NewFromFloat(12.5),
		Bonus:           d(2_000_000),
		ManualDeduction: d(150_000),
	}
	settings := payroll.DefaultSettings()

	first := Calculate(in, settings)
	for i := 0; i < 10; i++ {
		again := Calculate(in, settings)
		assert.Equal(t, first, again)
	}
}

func TestCalculateWholeRupiahOutputs(t *testing.T) {
	// Every monetary figure is rounded as produced; fractional rupiah must
	// never leak into the output.
	figures := Calculate(CalculatorInput{
		BaseSalary:    d(5_000_001),
		OvertimeHours: decimal.NewFromFloat(3.7),
	}, payroll.DefaultSettings())

	for name, v := range map[string]decimal.Decimal{
		"overtime_pay": figures.OvertimePay,
		"gross":        figures.Gross,
		"jht":          figures.BPJSJHT,
		"jp":           figures.BPJSJP,
		"health":       figures.BPJSHealth,
		"income_tax":   figures.IncomeTax,
		"net_pay":      figures.NetPay,
	} {
		assert.True(t, v.Equal(v.Round(0)), "%s = %s is not a whole amount", name, v)
	}
}
