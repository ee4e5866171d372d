package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
)

// CalculatorInput carries everything the calculation reads: the employee's
// salary figures and the period's manual inputs. All values are non-negative
// whole-rupiah amounts except OvertimeHours, which may carry a fraction.
type CalculatorInput struct {
	BaseSalary         decimal.Decimal
	FixedAllowance     decimal.Decimal
	TransportAllowance decimal.Decimal

	OvertimeHours   decimal.Decimal
	Bonus           decimal.Decimal
	ManualDeduction decimal.Decimal
}

// Figures is the full derived output. NetPay always equals Gross minus
// (BPJSJHT + BPJSJP + BPJSHealth + IncomeTax + ManualDeduction); a record
// violating that identity indicates a calculation bug, since every input to
// the formula is stored next to the output.
type Figures struct {
	OvertimePay decimal.Decimal
	Gross       decimal.Decimal
	BPJSJHT     decimal.Decimal
	BPJSJP      decimal.Decimal
	BPJSHealth  decimal.Decimal
	IncomeTax   decimal.Decimal
	NetPay      decimal.Decimal
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	expenseRate = decimal.NewFromFloat(0.05)

	bracket1Ceiling = decimal.NewFromInt(60_000_000)
	bracket2Ceiling = decimal.NewFromInt(250_000_000)
	bracket1Rate    = decimal.NewFromFloat(0.05)
	bracket2Rate    = decimal.NewFromFloat(0.15)
	bracket3Rate    = decimal.NewFromFloat(0.25)
)

// Calculate derives a full set of payroll figures. Deterministic, no I/O.
// Every monetary intermediate is rounded to the whole rupiah as it is
// produced, not only at the end; expected fixtures are sensitive to
// one-rupiah differences when rounding is deferred.
func Calculate(in CalculatorInput, settings payroll.Settings) Figures {
	overtimePay := roundRupiah(in.BaseSalary.Div(settings.OTIndex).Mul(in.OvertimeHours))

	gross := in.BaseSalary.
		Add(in.FixedAllowance).
		Add(in.TransportAllowance).
		Add(overtimePay).
		Add(in.Bonus)

	// Statutory contributions come off base salary, not gross.
	jht := roundRupiah(in.BaseSalary.Mul(settings.BPJSJHTRate).Div(hundred))
	jp := roundRupiah(in.BaseSalary.Mul(settings.BPJSJPRate).Div(hundred))
	health := roundRupiah(in.BaseSalary.Mul(settings.BPJSHealthRate).Div(hundred))
	statutory := jht.Add(jp).Add(health)

	expense := roundRupiah(gross.Mul(expenseRate))
	if expense.GreaterThan(settings.OfficeExpenseCap) {
		expense = settings.OfficeExpenseCap
	}

	monthlyNet := gross.Sub(expense).Sub(statutory)

	// PKP: annualized taxable income net of the exempt threshold.
	pkp := monthlyNet.Mul(twelve).Sub(settings.PTKPAnnual)
	if pkp.IsNegative() {
		pkp = decimal.Zero
	}

	annualTax := progressiveTax(pkp)
	monthlyTax := roundRupiah(annualTax.Div(twelve))

	netPay := gross.Sub(statutory).Sub(monthlyTax).Sub(in.ManualDeduction)

	return Figures{
		OvertimePay: overtimePay,
		Gross:       gross,
		BPJSJHT:     jht,
		BPJSJP:      jp,
		BPJSHealth:  health,
		IncomeTax:   monthlyTax,
		NetPay:      netPay,
	}
}

// progressiveTax accumulates bracket by bracket: 5% on the first 60M, 15%
// on the next 190M, 25% above 250M. A flat rate on the whole PKP is wrong
// for any PKP past the first boundary.
func progressiveTax(pkp decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero

	first := decimal.Min(pkp, bracket1Ceiling)
	tax = tax.Add(roundRupiah(first.Mul(bracket1Rate)))

	if pkp.GreaterThan(bracket1Ceiling) {
		second := decimal.Min(pkp, bracket2Ceiling).Sub(bracket1Ceiling)
		tax = tax.Add(roundRupiah(second.Mul(bracket2Rate)))
	}

	if pkp.GreaterThan(bracket2Ceiling) {
		third := pkp.Sub(bracket2Ceiling)
		tax = tax.Add(roundRupiah(third.Mul(bracket3Rate)))
	}

	return tax
}

// roundRupiah rounds to the nearest whole rupiah, half away from zero.
func roundRupiah(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
