// Package ingestion provides pipeline orchestration for feedback intake.
//
// The Pipeline type manages the ingestion workflow for feedback records:
//   - Classifying free text and embedding it concurrently
//   - Normalizing the classification into a complete record
//   - Persisting the record to the feedback repository
//   - Indexing the embedding asynchronously via a worker pool
//
// Classification failures degrade to default field values; embedding or
// storage failures fail the ingestion. Errors during async indexing are
// logged but do not fail the operation.
package ingestion
