package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/config/file"
)

type cleanOptions struct {
	config          string
	input           string
	output          string
	hashes          string
	language        string
	minLength       int
	langIDModel     string
	lmDir           string
	cutoffCSV       string
	normalizeScores bool
	onMissingCutoff string
}

var cleanFlags cleanOptions

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the two-pass cleaning pipeline",
	Long: `Reads the input corpus twice: the first pass fingerprints every
document into the hashes file, the second pass removes short and
duplicate documents, filters by language, scores perplexity, assigns
quality buckets, and writes the surviving documents to the output.`,
	RunE: runClean,
}

func init() {
	registerConfigFlags(cleanCmd)
	cleanCmd.Flags().StringVar(&cleanFlags.output, "output", "", "output corpus path (.gz for compression)")
	cleanCmd.Flags().StringVar(&cleanFlags.language, "language", "", "target language code to keep")
	cleanCmd.Flags().IntVar(&cleanFlags.minLength, "min-length", 0, "minimum raw_content length in runes")
	cleanCmd.Flags().StringVar(&cleanFlags.langIDModel, "lang-id-model", "", "language identification model path")
	cleanCmd.Flags().StringVar(&cleanFlags.lmDir, "lm-dir", "", "directory of per-language vocab and ARPA models")
	cleanCmd.Flags().StringVar(&cleanFlags.cutoffCSV, "cutoff-csv", "", "perplexity cutoff table path")
	cleanCmd.Flags().BoolVar(&cleanFlags.normalizeScores, "normalize-scores", false, "divide perplexity by token count")
	cleanCmd.Flags().StringVar(&cleanFlags.onMissingCutoff, "on-missing-cutoff", "", "policy for languages without cutoffs: drop or fail")
	rootCmd.AddCommand(cleanCmd)
}

// registerConfigFlags adds the flags shared by clean, hashes, and watch.
func registerConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cleanFlags.config, "config", "c", "", "TOML config file path")
	cmd.Flags().StringVar(&cleanFlags.input, "input", "", "input corpus path (.gz for compression)")
	cmd.Flags().StringVar(&cleanFlags.hashes, "hashes", "", "fingerprint store path")
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := newCleanPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := pipeline.Run(context.Background())
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	renderReport(cmd, report)
	return nil
}

// loadConfig merges defaults, the config file, and flag overrides, in
// that order.
func loadConfig(cmd *cobra.Command) (*file.Config, error) {
	cfg := file.Default()
	if cleanFlags.config != "" {
		loaded, err := file.Load(cleanFlags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"input":             func() { cfg.Input = cleanFlags.input },
		"output":            func() { cfg.Output = cleanFlags.output },
		"hashes":            func() { cfg.Hashes = cleanFlags.hashes },
		"language":          func() { cfg.Language = cleanFlags.language },
		"min-length":        func() { cfg.MinLength = cleanFlags.minLength },
		"lang-id-model":     func() { cfg.LangIDModel = cleanFlags.langIDModel },
		"lm-dir":            func() { cfg.LMDir = cleanFlags.lmDir },
		"cutoff-csv":        func() { cfg.CutoffCSV = cleanFlags.cutoffCSV },
		"normalize-scores":  func() { cfg.NormalizeScores = cleanFlags.normalizeScores },
		"on-missing-cutoff": func() { cfg.OnMissingCutoff = cleanFlags.onMissingCutoff },
	}
	for name, apply := range overrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			apply()
		}
	}
	return cfg, nil
}
