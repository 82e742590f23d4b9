package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// Engine orchestrates the deterministic calculations for a scenario. It
// holds no mutable state beyond its logger, so a single Engine may be shared
// across goroutines and scenarios.
type Engine struct {
	logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{logger: nopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = nopLogger{}
		return
	}
	e.logger = l
}

// RunScenario produces the full deterministic report: dual-bucket TSP
// projection, pension path comparison, eligibility, earliest immediate
// retirement age and the FIRE gap at the projected balance.
func (e *Engine) RunScenario(scenario *domain.Scenario) *domain.Report {
	if scenario == nil {
		return nil
	}

	e.logger.Debugf("running scenario %q: ages %d->%d, balance %s",
		scenario.Name, scenario.TSP.CurrentAge, scenario.TSP.RetirementAge,
		scenario.TSP.CurrentBalance.StringFixed(0))

	projection := ProjectDualBucket(scenario.TSP)
	pension := ComparePensionPaths(scenario.FERS)
	eligibility := RegularEligibility(
		scenario.FERS.RetirementAge,
		projectedServiceYears(scenario.FERS),
		scenario.FERS.MinimumRetirementAge,
	)
	earliest := EarliestImmediateRetirementAge(
		scenario.FERS.CurrentAge,
		scenario.FERS.TotalServiceYears(),
		scenario.FERS.MinimumRetirementAge,
		scenario.FERS.PensionEndAge,
	)

	fireGap := AnalyzeFireGap(
		projection.ProjectedBalance,
		pension.StayFederal.MonthlyPension,
		scenario.FIRE,
		scenario.FIRE.SafeWithdrawalRate,
	)

	e.logger.Debugf("scenario %q: projected balance %s, gap %s",
		scenario.Name, projection.ProjectedBalance.StringFixed(0),
		fireGap.MonthlyGap.StringFixed(0))

	return &domain.Report{
		Scenario:             scenario,
		TSP:                  projection,
		Pension:              pension,
		Eligibility:          eligibility,
		EarliestImmediateAge: earliest,
		FireGap:              fireGap,
	}
}

// Simulate runs the Monte Carlo simulator for the scenario.
func (e *Engine) Simulate(scenario *domain.Scenario, config SimulationConfig) domain.SimulationResult {
	result := RunSimulation(scenario, config)
	e.logger.Infof("simulation: %d paths, seed %d, success %s, goal met %s",
		result.NumSimulations, result.Seed,
		result.SuccessRate.StringFixed(3), result.GoalMetRate.StringFixed(3))
	return result
}

// Optimize runs the grid search for the scenario.
func (e *Engine) Optimize(scenario *domain.Scenario) []domain.OptimizationCandidate {
	candidates := OptimizeScenario(scenario)
	e.logger.Infof("optimizer: %d improving candidates", len(candidates))
	return candidates
}

// projectedServiceYears is the service the employee will have at the planned
// retirement age, honoring the future-service toggle.
func projectedServiceYears(p domain.FERSParams) decimal.Decimal {
	service := p.TotalServiceYears()
	if p.IncludeFutureService && p.RetirementAge > p.CurrentAge {
		service = service.Add(decimal.NewFromInt(int64(p.RetirementAge - p.CurrentAge)))
	}
	return service
}
