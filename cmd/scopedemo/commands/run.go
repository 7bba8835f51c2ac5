package commands

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/systmms/scope/internal/config"
	dserrors "github.com/systmms/scope/internal/errors"
	"github.com/systmms/scope/internal/metrics"
	"github.com/systmms/scope/pkg/scope"
)

// errCoinFlip is the failure injected by a losing coin flip.
var errCoinFlip = errors.New("coin flip failed")

// Report is the outcome of one scenario.
type Report struct {
	Scenario string
	Failed   bool
	Finished bool
}

func NewRunCommand(cfg *config.Config) *cobra.Command {
	var (
		seed        int64
		rounds      int
		mode        string
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Flip coins and show which scope guards ran",
		Long: `Run the guard scenarios against a step that fails half of the time.

Each round runs four scenarios, each with its own coin flip:
  manual         success flag set by hand after the step
  scope_exit     flag set by an exit guard (always runs)
  scope_fail     flag set by a failure guard (runs only if the step failed)
  scope_success  flag set by a success guard (runs only if the step succeeded)

A failing step either panics or returns an error, depending on --mode.

Examples:
  scopedemo run                       # One round, seed from config
  scopedemo run --seed 7 --rounds 3   # Reproducible multi-round run
  scopedemo run --mode error --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			def := definition(cfg)
			if !cmd.Flags().Changed("seed") {
				seed = def.Seed
			}
			if !cmd.Flags().Changed("rounds") {
				rounds = def.Rounds
			}
			if !cmd.Flags().Changed("mode") {
				mode = def.Mode
			}
			withMetrics = withMetrics || def.Metrics

			if mode != config.ModePanic && mode != config.ModeError {
				return dserrors.ConfigError{
					Field:      "mode",
					Value:      mode,
					Message:    "unknown failure mode",
					Suggestion: "Use one of: panic, error",
				}
			}
			if rounds < 1 {
				return dserrors.UserError{
					Message:    "Invalid number of rounds",
					Suggestion: "Rounds must be at least 1",
				}
			}

			return runDemo(cmd.OutOrStdout(), cfg, seed, rounds, mode, withMetrics)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "Seed for the coin flips")
	cmd.Flags().IntVarP(&rounds, "rounds", "n", 1, "Number of rounds")
	cmd.Flags().StringVar(&mode, "mode", config.ModePanic, "How a failing step fails: panic or error")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Print guard counters after the run")

	return cmd
}

func runDemo(out io.Writer, cfg *config.Config, seed int64, rounds int, mode string, withMetrics bool) error {
	log := logger(cfg)
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	var observer scope.Observer
	var reg *prometheus.Registry
	if withMetrics {
		reg = prometheus.NewRegistry()
		observer = guardObservers(cfg, metrics.NewGuardMetrics(reg))
	} else {
		observer = guardObservers(cfg)
	}

	log.Debug("Running %d round(s) with seed %d in %s mode", rounds, seed, mode)

	for round := 1; round <= rounds; round++ {
		if rounds > 1 {
			fmt.Fprintf(out, "Round %d\n\n", round)
		}
		for _, report := range RunScenarios(rng, mode, observer) {
			printReport(out, report)
		}
	}

	if reg == nil {
		return nil
	}

	samples, err := metrics.Snapshot(reg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Guard counters:")
	for _, s := range samples {
		fmt.Fprintf(out, "  %s%s %g\n", s.Name, s.Labels, s.Value)
	}
	return nil
}

// RunScenarios runs the manual, exit, fail and success scenarios once each,
// drawing a fresh coin flip for every scenario.
func RunScenarios(rng *rand.Rand, mode string, observer scope.Observer) []Report {
	step := func() error {
		return maybeFail(rng, mode)
	}

	reports := make([]Report, 0, 4)

	manual := Report{Scenario: "manual"}
	manual.Failed = attempt(func() error {
		if err := step(); err != nil {
			return err
		}
		manual.Finished = true
		return nil
	})
	reports = append(reports, manual)

	guards := []struct {
		name  string
		build func(func(), ...scope.Option) *scope.Guard
	}{
		{"scope_exit", scope.Exit},
		{"scope_fail", scope.Fail},
		{"scope_success", scope.Success},
	}

	for _, g := range guards {
		report := Report{Scenario: g.name}
		report.Failed = attempt(func() (err error) {
			defer g.build(func() { report.Finished = true },
				scope.WithName(g.name),
				scope.WithObserver(observer),
			).CloseErr(&err)
			return step()
		})
		reports = append(reports, report)
	}

	return reports
}

// maybeFail fails half of the time, by panic or by error depending on mode.
func maybeFail(rng *rand.Rand, mode string) error {
	if rng.IntN(2) == 0 {
		return nil
	}
	if mode == config.ModePanic {
		panic(errCoinFlip)
	}
	return errCoinFlip
}

// attempt runs fn and reports whether it failed by error or by panic.
func attempt(fn func() error) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			failed = true
		}
	}()
	return fn() != nil
}

func printReport(out io.Writer, r Report) {
	failed := "no"
	if r.Failed {
		failed = "yes"
	}
	status := "pending"
	if r.Finished {
		status = "finished"
	}
	fmt.Fprintf(out, "%s:\n", r.Scenario)
	fmt.Fprintf(out, "  Failed             %s\n", failed)
	fmt.Fprintf(out, "  Exit status        %s\n\n", status)
}
