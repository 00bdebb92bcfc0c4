package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// Project simulates the portfolio one age year at a time from CurrentAge through
// LifeExpectancy inclusive and summarizes the outcome.
//
// Each year applies, in order: the contribution (working years) or the
// inflation-adjusted withdrawal net of Social Security and pension (retired
// years), the first one-time cashflow scheduled for that age, and investment
// growth on the resulting balance. A balance at or below zero is reported as
// zero and carried forward as exactly zero. Recorded amounts are rounded to
// cents.
func (pe *ProjectionEngine) Project(inputs domain.Inputs) domain.Results {
	log := pe.logger()

	yearCount := inputs.LifeExpectancy - inputs.CurrentAge + 1
	if yearCount < 0 {
		yearCount = 0
	}
	projections := make([]domain.YearlyProjection, 0, yearCount)

	balance := inputs.CurrentSavings
	totalContributions := inputs.CurrentSavings
	totalWithdrawals := decimalZero
	var ageMoneyRunsOut *int

	returnRate := inputs.RateOfReturn.Div(decimalHundred)
	inflationStep := growthFactor(inputs.InflationRate)
	retirementIncome := inputs.SocialSecurity().Add(inputs.Pension())

	// (1 + inflation)^(age - CurrentAge), advanced once per year
	inflationFactor := decimalOne

	for age := inputs.CurrentAge; age <= inputs.LifeExpectancy; age++ {
		isWorking := age < inputs.RetirementAge

		contribution := decimalZero
		withdrawal := decimalZero

		if isWorking {
			contribution = inputs.AnnualContribution
			balance = balance.Add(contribution)
			totalContributions = totalContributions.Add(contribution)
		} else {
			spending := inputs.AnnualSpending.Mul(inflationFactor)
			withdrawal = maxDecimal(decimalZero, spending.Sub(retirementIncome))
			balance = balance.Sub(withdrawal)
			totalWithdrawals = totalWithdrawals.Add(withdrawal)
		}

		if cf, ok := inputs.CashflowAt(age); ok {
			balance = balance.Add(cf.Amount)
			if cf.Amount.GreaterThan(decimalZero) {
				totalContributions = totalContributions.Add(cf.Amount)
			} else {
				totalWithdrawals = totalWithdrawals.Add(cf.Amount.Abs())
			}
		}

		interest := balance.Mul(returnRate)
		balance = balance.Add(interest).Round(carryPlaces)

		if !balance.IsPositive() && ageMoneyRunsOut == nil {
			depletedAt := age
			ageMoneyRunsOut = &depletedAt
			log.Debugf("projection: balance depleted at age %d", age)
		}

		adjusted := decimalZero
		if !inflationFactor.IsZero() {
			adjusted = maxDecimal(decimalZero, balance.Div(inflationFactor))
		}

		projections = append(projections, domain.YearlyProjection{
			Age:                      age,
			Balance:                  maxDecimal(decimalZero, balance).Round(moneyPlaces),
			Contribution:             contribution.Round(moneyPlaces),
			Withdrawal:               withdrawal.Round(moneyPlaces),
			Interest:                 interest.Round(moneyPlaces),
			InflationAdjustedBalance: adjusted.Round(moneyPlaces),
		})

		if pe != nil && pe.Debug {
			log.Debugf("projection: age=%d balance=%s contribution=%s withdrawal=%s interest=%s",
				age, balance.StringFixed(2), contribution.StringFixed(2), withdrawal.StringFixed(2), interest.StringFixed(2))
		}

		if !balance.IsPositive() {
			balance = decimalZero
		}
		inflationFactor = inflationFactor.Mul(inflationStep).Round(carryPlaces)
	}

	summary := summarize(inputs, projections, ageMoneyRunsOut, totalContributions, totalWithdrawals)
	log.Debugf("projection: ages %d-%d, final balance %s, goal reached %t",
		inputs.CurrentAge, inputs.LifeExpectancy, summary.FinalBalance.StringFixed(2), summary.RetirementGoalReached)

	return domain.Results{
		Projections: projections,
		Summary:     summary,
	}
}

func summarize(inputs domain.Inputs, projections []domain.YearlyProjection, ageMoneyRunsOut *int, totalContributions, totalWithdrawals decimal.Decimal) domain.Summary {
	finalBalance := decimalZero
	if len(projections) > 0 {
		finalBalance = projections[len(projections)-1].Balance
	}

	balanceAtRetirement := BalanceAtRetirement(inputs, projections)

	safeWithdrawalRate := decimalZero
	if balanceAtRetirement.IsPositive() {
		safeWithdrawalRate = inputs.AnnualSpending.Div(balanceAtRetirement).Mul(decimalHundred).Round(ratePlaces)
	}

	goalReached := ageMoneyRunsOut == nil || *ageMoneyRunsOut >= inputs.LifeExpectancy

	return domain.Summary{
		RetirementGoalReached: goalReached,
		AgeMoneyRunsOut:       ageMoneyRunsOut,
		FinalBalance:          finalBalance,
		TotalContributions:    totalContributions.Round(moneyPlaces),
		TotalWithdrawals:      totalWithdrawals.Round(moneyPlaces),
		SafeWithdrawalRate:    safeWithdrawalRate,
		SuccessProbability:    successProbability(inputs, ageMoneyRunsOut, goalReached),
	}
}

// BalanceAtRetirement estimates the balance on the first day of retirement: the
// prior year's ending balance grown by one year of returns. Without a prior
// year it falls back to the first projected balance.
func BalanceAtRetirement(inputs domain.Inputs, projections []domain.YearlyProjection) decimal.Decimal {
	retirementIndex := -1
	for i, p := range projections {
		if p.Age == inputs.RetirementAge {
			retirementIndex = i
			break
		}
	}

	if retirementIndex > 0 {
		return projections[retirementIndex-1].Balance.Mul(growthFactor(inputs.RateOfReturn))
	}
	if len(projections) > 0 {
		return projections[0].Balance
	}
	return decimalZero
}

// successProbability is the share of retirement years funded, capped at 100.
// It is not clamped below zero: money running out before retirement yields a
// negative value. A retirement age past life expectancy still uses the ratio,
// so only a zero-year retirement needs the goal flag.
func successProbability(inputs domain.Inputs, ageMoneyRunsOut *int, goalReached bool) decimal.Decimal {
	yearsInRetirement := inputs.LifeExpectancy - inputs.RetirementAge
	if yearsInRetirement == 0 {
		if goalReached {
			return decimalHundred
		}
		return decimalZero
	}

	yearsWithMoney := yearsInRetirement
	if ageMoneyRunsOut != nil {
		yearsWithMoney = *ageMoneyRunsOut - inputs.RetirementAge
	}

	pct := decimal.NewFromInt(int64(yearsWithMoney)).
		Div(decimal.NewFromInt(int64(yearsInRetirement))).
		Mul(decimalHundred)
	return minDecimal(decimalHundred, pct).Round(ratePlaces)
}
