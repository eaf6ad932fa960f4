// Package stages provides the implementations of the Stage interface
// that make up the cleaning pipeline. Each stage is a thin adapter
// around a model capability plus the keep/drop decision.
//
// The runner applies stages in a fixed order; any stage may drop a
// document, which short-circuits the rest of the chain for it.
package stages
