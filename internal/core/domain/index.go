package domain

// IndexEntry is one stored vector with its record and positional slot.
type IndexEntry struct {
	// Slot is the dense zero-based position assigned by append order.
	Slot int

	// Vector is the unit-length embedding.
	Vector []float32

	// Record is the structured résumé the vector was derived from.
	Record StructuredRecord
}

// IndexItem is one (vector, record) pair submitted for append.
type IndexItem struct {
	Vector []float32
	Record StructuredRecord
}

// IndexHit is a single nearest-neighbour result.
type IndexHit struct {
	// Slot is the position of the matched entry.
	Slot int

	// Score is the cosine similarity between the query and the entry.
	Score float64

	// Record is the matched résumé.
	Record StructuredRecord
}

// IndexStats summarises the vector index.
type IndexStats struct {
	// TotalVectors is the number of stored vectors.
	TotalVectors int `json:"total_vectors"`

	// Dimension is the configured vector length.
	Dimension int `json:"dimension"`

	// MetadataCount is the number of stored records.
	MetadataCount int `json:"metadata_count"`

	// IndexFileExists reports whether the vector blob is on disk.
	IndexFileExists bool `json:"index_file_exists"`

	// MetadataFileExists reports whether the metadata sidecar is on disk.
	MetadataFileExists bool `json:"metadata_file_exists"`
}

// RebuildReport describes the outcome of an index rebuild.
type RebuildReport struct {
	// Discarded is the number of entries dropped by the rebuild.
	Discarded int `json:"discarded"`

	// Lossy is true when entries were dropped without being re-embedded.
	Lossy bool `json:"lossy"`
}
