package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var hashesCmd = &cobra.Command{
	Use:   "hashes",
	Short: "Build the fingerprint store only",
	Long: `Runs the fingerprint pass on its own: every document's normalised
content hash is appended to the hashes file, and nothing else happens.
Useful for precomputing duplicate state before a later clean run.`,
	RunE: runHashes,
}

func init() {
	registerConfigFlags(hashesCmd)
	rootCmd.AddCommand(hashesCmd)
}

func runHashes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := newHashPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := pipeline.CollectFingerprints(context.Background())
	if err != nil {
		return fmt.Errorf("fingerprint pass failed: %w", err)
	}

	cmd.Printf("Fingerprinted %d documents.\n", count)
	return nil
}
