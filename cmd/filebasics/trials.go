package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironiridis/memfile"
)

func newTrialsCmd() *cobra.Command {
	var (
		trials  int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Measure how often open and close fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rates, err := ratesFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			res, err := runTrials(cmd.Context(), rates, trials, workers)
			if err != nil {
				return err
			}
			res.print(cmd.OutOrStdout(), rates)
			return nil
		},
	}
	cmd.Flags().IntVarP(&trials, "trials", "n", 1_000_000, "number of open/close attempts of each kind")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of goroutines sharing the trials")
	return cmd
}

type trialResult struct {
	trials     int
	openFails  int64
	closeFails int64
}

// runTrials attempts Open and Close trials times each, spread over workers
// goroutines that each own their File.
func runTrials(ctx context.Context, rates memfile.Rates, trials, workers int) (trialResult, error) {
	if trials <= 0 {
		return trialResult{}, fmt.Errorf("trials must be positive, got %d", trials)
	}
	if workers <= 0 {
		return trialResult{}, fmt.Errorf("workers must be positive, got %d", workers)
	}
	workers = min(workers, trials)
	if ctx == nil {
		ctx = context.Background()
	}

	var openFails, closeFails atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		share := trials / workers
		if w < trials%workers {
			share++
		}
		g.Go(func() error {
			f, err := memfile.New(fmt.Sprintf("trial-%d", w), memfile.WithPolicy(rates))
			if err != nil {
				return err
			}
			for i := range share {
				if i%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if f, err = memfile.Open(f); err != nil {
					openFails.Add(1)
				}
				if f, err = memfile.Close(f); err != nil {
					closeFails.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return trialResult{}, err
	}

	res := trialResult{trials: trials, openFails: openFails.Load(), closeFails: closeFails.Load()}
	logrus.WithFields(logrus.Fields{
		"trials":     trials,
		"workers":    workers,
		"openFails":  res.openFails,
		"closeFails": res.closeFails,
	}).Debug("trials done")
	return res, nil
}

func (r trialResult) openRate() float64  { return float64(r.openFails) / float64(r.trials) }
func (r trialResult) closeRate() float64 { return float64(r.closeFails) / float64(r.trials) }

func (r trialResult) print(out io.Writer, rates memfile.Rates) {
	fmt.Fprintf(out, "open:  %d/%d failed (observed %.6g, configured %.6g)\n", r.openFails, r.trials, r.openRate(), rates.Open)
	fmt.Fprintf(out, "close: %d/%d failed (observed %.6g, configured %.6g)\n", r.closeFails, r.trials, r.closeRate(), rates.Close)
}
