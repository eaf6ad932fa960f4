// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Stage: One step of the document pipeline
//   - CorpusReader: Streams documents from an input corpus
//   - CorpusWriter: Streams surviving documents to the output
//   - FingerprintStore: Persists pass-1 fingerprints
//   - LanguageIdentifier, Tokenizer, Scorer, CutoffTable: External model
//     capabilities consumed by individual stages
//
// # Optional Interfaces
//
//   - ReportStore: Run-report history. When nil, reports are only printed.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or stage package
package driven
