package checks

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"carelens/domain/dataset"
	"carelens/domain/quality"
	"carelens/internal"
	"carelens/internal/thresholds"
)

// Runner executes an ordered set of checks against a dataset and aggregates
// their results into a report. Checks are pure and independent, so they run
// concurrently; results keep the caller-provided order.
type Runner struct {
	checks []Check
	logger *internal.Logger
}

// NewRunner creates a runner over the given checks
func NewRunner(checks ...Check) *Runner {
	return &Runner{
		checks: checks,
		logger: internal.DefaultLogger.WithComponent("Runner"),
	}
}

// Run executes every check and merges the results. A panicking check is
// converted into a failed result with a diagnostic issue; it never aborts
// the other checks. The report itself is always a successful return value.
func (r *Runner) Run(ds *dataset.Dataset, cfg *thresholds.Config) quality.Report {
	results := make([]quality.CheckResult, len(r.checks))

	var g errgroup.Group
	for i, check := range r.checks {
		i, check := i, check
		g.Go(func() error {
			results[i] = r.runOne(check, ds, cfg)
			return nil
		})
	}
	g.Wait() // goroutines never return errors; panics are handled in runOne

	for _, res := range results {
		if res.Status != quality.StatusPassed {
			r.logger.Warn("%s on %s: %s (%d issues)", res.CheckName, ds.Name, res.Status, len(res.Issues))
		}
	}

	return quality.NewReport(ds.Name, results)
}

// runOne isolates a single check invocation, recovering panics into a
// failed result so one broken check cannot take down the run.
func (r *Runner) runOne(check Check, ds *dataset.Dataset, cfg *thresholds.Config) (result quality.CheckResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("check %s panicked: %v", check.Name(), rec)
			result = quality.NewCheckResult(check.Name(), ds.Name)
			result.AddIssue(quality.Issue{
				Type:    quality.IssueCheckError,
				Details: fmt.Sprintf("check %s failed internally: %v", check.Name(), rec),
			}, quality.StatusFailed)
		}
	}()

	return check.Run(ds, cfg)
}
