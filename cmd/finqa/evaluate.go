package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"finqa/internal/config"
	"finqa/internal/corpus"
	"finqa/internal/qa"
	"finqa/internal/report"
	"finqa/internal/runner"
	"finqa/internal/scoring"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <dataset.json>",
	Short: "Evaluate the model over a dataset and write a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluate,
}

func init() {
	flags := evaluateCmd.Flags()
	flags.String("model", "", "model to evaluate")
	flags.Int("sample", 0, "number of questions to evaluate (0 = config default)")
	flags.Int("workers", 0, "concurrent evaluation workers")
	flags.Int("top-k", 0, "documents to retrieve per question")
	flags.Int64("seed", 0, "shuffle seed (0 = corpus order)")
	flags.String("output", "", "output directory for report and results")
}

// bindFlags overlays set command-line flags on the loaded config.
func bindFlags(cmd *cobra.Command, cfg *config.Config) error {
	v := viper.New()
	for flag, key := range map[string]string{
		"model":   "model",
		"sample":  "sample_size",
		"workers": "workers",
		"top-k":   "top_k",
		"seed":    "shuffle_seed",
		"output":  "output_dir",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return v.Unmarshal(cfg)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := bindFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	docs, err := corpus.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s %d documents loaded from %s\n", cyan("•"), len(docs), args[0])

	generator, err := qa.NewOpenAIGenerator(cfg)
	if err != nil {
		return err
	}
	r, err := runner.New(cfg, docs, generator)
	if err != nil {
		return err
	}

	fmt.Printf("%s evaluating with %s (%d workers)\n", cyan("•"), bold(cfg.Model), cfg.Workers)
	result, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(result)

	mdPath, jsonPath, err := report.Save(result, cfg.OutputDir)
	if err != nil {
		return err
	}
	fmt.Printf("%s report written to %s\n", green("✓"), mdPath)
	fmt.Printf("%s results written to %s\n", green("✓"), jsonPath)
	return nil
}

func printSummary(result *runner.RunResult) {
	rep := result.Report
	fmt.Println()
	fmt.Println(bold("Evaluation Summary"))
	fmt.Printf("  questions:   %d\n", result.Evaluated)
	if acc, ok := rep.Accuracy(); ok {
		fmt.Printf("  accuracy:    %s\n", colorRate(acc))
	}
	if exact, ok := rep.ExactMatchRate(); ok {
		fmt.Printf("  exact match: %s\n", colorRate(exact))
	}
	fmt.Printf("  exact/close/incorrect: %d/%d/%d\n",
		rep.CategoryCount(scoring.CategoryExactMatch),
		rep.CategoryCount(scoring.CategoryCloseMatch),
		rep.CategoryCount(scoring.CategoryIncorrect))
	if mape, excluded, ok := rep.MAPE(); ok {
		fmt.Printf("  mape:        %.1f%% (%d excluded)\n", mape, excluded)
	}
	fmt.Printf("  tokens:      %d (est. $%.4f)\n", result.Usage.TotalTokens, result.Cost.TotalCost)
	fmt.Printf("  duration:    %s\n", gray(result.Duration.Round(time.Millisecond).String()))
	fmt.Println()
}

func colorRate(rate float64) string {
	formatted := fmt.Sprintf("%.1f%%", rate)
	switch {
	case rate >= 80:
		return green(formatted)
	case rate >= 50:
		return yellow(formatted)
	default:
		return red(formatted)
	}
}
