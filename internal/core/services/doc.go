// Package services implements the driving port interfaces.
// The Runner contains the core orchestration logic: it sequences the
// two passes and drives documents through the stage chain, calling
// out to driven ports (adapters) for I/O and models.
//
// Services are pure Go with no external dependencies.
package services
