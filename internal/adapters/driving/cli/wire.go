package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/catalog/sqlite"
	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/config/file"
	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/corpus"
	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/cutoffs"
	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/hashes"
	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/models/langid"
	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/models/ngramlm"
	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/models/subword"
	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driving"
	"github.com/veldt-labs/winnow-cli/internal/core/services"
	"github.com/veldt-labs/winnow-cli/internal/logger"
	"github.com/veldt-labs/winnow-cli/internal/stages"
)

// Factories the commands build pipelines with. Tests swap these for mocks.
var (
	newCleanPipeline = buildCleanPipeline
	newHashPipeline  = buildHashPipeline
)

// buildCleanPipeline assembles the full two-pass pipeline from the
// merged configuration. The returned cleanup releases the run catalog.
func buildCleanPipeline(cfg *file.Config) (driving.Pipeline, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	store := hashes.NewStore(hashesPath(cfg))
	reader := corpus.NewReader(cfg.Input)
	writer, err := corpus.NewWriter(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output: %w", err)
	}

	policy := stages.DropOnMissingCutoff
	if cfg.OnMissingCutoff == file.PolicyFail {
		policy = stages.FailOnMissingCutoff
	}

	fields := cfg.Fields
	if len(fields) == 0 {
		fields = stages.DefaultMinifyFields
	}

	chain := []driven.Stage{
		stages.NewRemoveSmall(domain.FieldRawContent, cfg.MinLength),
		stages.NewRemoveDuplicates(domain.FieldRawContent, store),
		stages.NewClassifyLanguage(domain.FieldRawContent, domain.FieldLanguage, langid.New(cfg.LangIDModel)),
		stages.NewKeepLanguage(cfg.Language),
		stages.NewTokenize(domain.FieldRawContent, domain.FieldTokenized, cfg.NormalizeTokens, subword.New(cfg.VocabPath())),
		stages.NewScore(domain.FieldTokenized, domain.FieldPerplexity, cfg.NormalizeScores, ngramlm.New(cfg.ModelPath())),
		stages.NewBucketByPerplexity(cutoffs.New(cfg.CutoffCSV), policy),
		stages.NewMinify(fields),
	}
	collector := stages.NewCollectFingerprints(domain.FieldRawContent, store)

	// Run history is best effort; a broken catalog must not block cleaning.
	reports, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("run catalog unavailable: %v", err)
		reports = nil
	}

	runner := services.NewRunner(reader, writer, store, collector, chain,
		reportStoreOrNil(reports), uuid.NewString(), cfg.Input, cfg.Output)

	cleanup := func() {
		if reports != nil {
			reports.Close()
		}
	}
	return runner, cleanup, nil
}

// buildHashPipeline assembles a pass-1-only pipeline. Output, language,
// and model settings are not required.
func buildHashPipeline(cfg *file.Config) (driving.Pipeline, func(), error) {
	if cfg.Input == "" {
		return nil, nil, fmt.Errorf("config: input path is required")
	}

	store := hashes.NewStore(hashesPath(cfg))
	reader := corpus.NewReader(cfg.Input)
	collector := stages.NewCollectFingerprints(domain.FieldRawContent, store)

	runner := services.NewRunner(reader, nil, store, collector, nil, nil,
		uuid.NewString(), cfg.Input, "")
	return runner, func() {}, nil
}

func hashesPath(cfg *file.Config) string {
	if cfg.Hashes != "" {
		return cfg.Hashes
	}
	return hashes.DefaultPath(cfg.Input)
}

// reportStoreOrNil avoids handing the runner a typed nil.
func reportStoreOrNil(s *sqlite.Store) driven.ReportStore {
	if s == nil {
		return nil
	}
	return s
}
