// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser / NormaliserRegistry: Decode résumé documents into text
//   - FieldExtractor: Structured record from text
//   - EmbeddingService: Text to unit-length vector
//   - VectorIndex: Vector storage, search and persistence
//   - RecordStore: Catalogue of ingested records
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Match explanations and job analysis. Without it, a templated explanation is used.
//   - PromptStore: Editable prompt templates. Without it, built-in prompts are used.
//   - SearchEngine: Keyword index written on ingest. Without it, keyword search is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
