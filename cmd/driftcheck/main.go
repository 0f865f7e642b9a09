// Command driftcheck compares a current feature dataset against the model's
// training reference and reports population stability index (PSI) drift.
//
// Exit codes: 0 no drift, 1 drift detected or failure.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/claritypay/clarity/internal/domain/drift"
	"github.com/claritypay/clarity/internal/domain/model"
	"github.com/claritypay/clarity/pkg/logger"
)

// Drift detection defaults.
const (
	defaultPSIThreshold = 0.2
	defaultMinShare     = 0.0
	defaultBinCount     = 10
	defaultSummaryPath  = "drift_summary.json"

	summaryFileMode = 0o644
)

// errDriftDetected distinguishes a drift finding from an operational failure.
var errDriftDetected = errors.New("drift detected")

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	cmd := &cli.Command{
		Name:  "driftcheck",
		Usage: "detect feature distribution drift between two datasets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "reference",
				Usage:    "CSV file with the reference (training) feature distribution",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "current",
				Usage:    "CSV file with the current (production) feature distribution",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "path for the JSON drift summary",
				Value: defaultSummaryPath,
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "optional path for the full per-feature JSON report",
			},
			&cli.FloatFlag{
				Name:  "threshold",
				Usage: "PSI value above which a feature counts as drifted",
				Value: defaultPSIThreshold,
			},
			&cli.FloatFlag{
				Name:  "min-share",
				Usage: "minimum share of drifted features required to flag the run",
				Value: defaultMinShare,
			},
			&cli.IntFlag{
				Name:  "bins",
				Usage: "number of equal-width histogram bins",
				Value: defaultBinCount,
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errDriftDetected) {
			logger.Get().Error(context.Background(), "driftcheck failed", logger.Error(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := logger.Get()

	var reference, current drift.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reference, err = readDataset(gctx, cmd.String("reference"))
		return err
	})
	g.Go(func() error {
		var err error
		current, err = readDataset(gctx, cmd.String("current"))
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	detector := drift.NewDetector(
		drift.WithBinCount(int(cmd.Int("bins"))),
		drift.WithPSIThreshold(cmd.Float("threshold")),
		drift.WithMinDriftShare(cmd.Float("min-share")),
	)
	summary, err := detector.Detect(ctx, reference, current)
	if err != nil {
		return fmt.Errorf("drift detection: %w", err)
	}

	if reportPath := cmd.String("report"); reportPath != "" {
		if err := writeJSONFile(reportPath, summary); err != nil {
			return err
		}
		log.Info(ctx, "full drift report written", logger.String("path", reportPath))
	}

	// The summary file carries the verdict without the per-feature detail.
	compact := summary
	compact.Features = nil
	if err := writeJSONFile(cmd.String("out"), compact); err != nil {
		return err
	}

	for _, f := range summary.Features {
		if f.Drifted {
			log.Warn(ctx, "feature drifted",
				logger.String("feature", f.Name),
				logger.Float64("psi", f.PSI),
			)
		}
	}
	log.Info(ctx, "drift check complete",
		logger.Bool("drift_detected", summary.DriftDetected),
		logger.Int("drifted_features", summary.DriftedFeatures),
		logger.Int("reference_rows", summary.ReferenceSize),
		logger.Int("current_rows", summary.CurrentSize),
		logger.String("summary_path", cmd.String("out")),
	)

	if summary.DriftDetected {
		return errDriftDetected
	}
	return nil
}

func readDataset(ctx context.Context, path string) (drift.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return drift.Dataset{}, err
	}
	ds, err := drift.ReadCSV(path, model.FeatureNames)
	if err != nil {
		return drift.Dataset{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ds, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), summaryFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
