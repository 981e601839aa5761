package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bayex/bayex"
	"github.com/bayex/bayex/internal/cliconfig"
)

const helpDescription = `
Compare plain Expected Improvement against its noise-rescaled variant
on the noisy six-hump camelback function.

Highlights:
  - Two isolated 50-iteration Bayesian-optimization runs over the same
    Latin hypercube seed design.
  - Matern 5/2 Gaussian Process surrogates with a fixed observation-noise
    variance.
  - Renders both posterior surfaces side by side with the sampled points
    overlaid.
`

var exampleUsage = strings.TrimSpace(`
  camelback --seed 42 --out camelback.png
  camelback --config $HOME/.camelback/config.toml --noise-variance 0.5
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "camelback",
		Short:   "Compare plain and noise-rescaled Expected Improvement on the six-hump camelback",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: getVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first, then apply flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				log.Info().Msg("received signal, stopping...")
				cancel()
			}()

			expCfg := bayex.ExperimentConfig{
				Seed:             cfg.Seed,
				InitialSamples:   cfg.InitialSamples,
				Iterations:       cfg.Iterations,
				NoiseVariance:    cfg.NoiseVariance,
				Xi:               cfg.Xi,
				GridPerDim:       cfg.GridPerDim,
				GlobalCandidates: cfg.GlobalCandidates,
				Starts:           cfg.Starts,
			}

			var wg sync.WaitGroup

			if !cfg.Quiet {
				progress := make(chan bayex.ProgressUpdate, 2*(cfg.Iterations+1))
				expCfg.Progress = progress

				wg.Add(1)
				go func() {
					defer wg.Done()
					for update := range progress {
						log.Info().
							Str("run", update.Run).
							Int("iteration", update.Iteration).
							Int("total", update.Total).
							Floats64("x", update.X).
							Float64("y", update.Y).
							Float64("best", update.Best).
							Msg("iteration")
					}
				}()

				defer func() {
					close(progress)
					wg.Wait()
				}()
			}

			result, err := bayex.RunExperiment(ctx, expCfg)
			if err != nil {
				return fmt.Errorf("run experiment: %w", err)
			}

			log.Info().
				Floats64("x", result.EI.BestX).
				Float64("y", result.EI.BestY).
				Int("observations", result.EI.Model.Len()).
				Msg("expected improvement run finished")

			log.Info().
				Floats64("x", result.Augmented.BestX).
				Float64("y", result.Augmented.BestY).
				Int("observations", result.Augmented.Model.Len()).
				Msg("noise-rescaled run finished")

			if err := bayex.RenderComparison(result, cfg.OutputPath); err != nil {
				return fmt.Errorf("render comparison: %w", err)
			}

			log.Info().Str("path", cfg.OutputPath).Msg("wrote comparison plot")

			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.camelback/config.toml)")
	root.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "root random seed for the design, noise, and candidate search")
	root.Flags().IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "optimization iterations per run")
	root.Flags().IntVar(&cfg.InitialSamples, "initial-samples", cfg.InitialSamples, "Latin hypercube points in the initial design")

	root.Flags().Float64Var(&cfg.NoiseVariance, "noise-variance", cfg.NoiseVariance, "fixed observation-noise variance of both surrogates")
	root.Flags().Float64Var(&cfg.Xi, "xi", cfg.Xi, "expected-improvement exploration margin")

	root.Flags().IntVar(&cfg.GridPerDim, "grid", cfg.GridPerDim, "levels per dimension of the posterior evaluation grid")
	root.Flags().IntVar(&cfg.GlobalCandidates, "global-candidates", cfg.GlobalCandidates, "random candidates scored per iteration before local refinement")
	root.Flags().IntVar(&cfg.Starts, "starts", cfg.Starts, "local refinement starting points per iteration")

	root.Flags().StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "output path for the comparison plot")
	root.Flags().BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress per-iteration progress logging")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("camelback")
		os.Exit(1)
	}
}
