package stages

import (
	"fmt"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
)

// loader is implemented by model adapters that defer reading their
// model file until first use.
type loader interface {
	Load() error
}

// setupModel loads a model if it supports deferred loading.
// Load failures are setup failures and abort the run.
func setupModel(name string, model any) error {
	l, ok := model.(loader)
	if !ok {
		return nil
	}
	if err := l.Load(); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSetup, name, err)
	}
	return nil
}
