package flat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/viant/vec/search"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
	"github.com/custodia-labs/recruitr/internal/logger"
	"github.com/custodia-labs/recruitr/internal/vectors"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// ManifestFile names the committed generation inside the index directory.
const ManifestFile = "index.manifest.json"

// errDimensionChanged marks a readable index built by a different embedding
// model. Older generations share the dimension, so there is nothing to fall
// back to.
var errDimensionChanged = fmt.Errorf("%w: dimension changed", domain.ErrInconsistentState)

// Index is a flat, exact vector index.
type Index struct {
	mu  sync.RWMutex
	dir string
	dim int

	vecs       [][]float32
	mags       []float32
	records    []domain.StructuredRecord
	byID       map[string]int
	generation uint64

	// writeFile is swapped in tests to simulate disk failures.
	writeFile func(dir, name string, data []byte) error
}

// Open opens the index stored in dir, creating an empty one when dir holds
// no index files. The stored dimension must equal dim.
func Open(dir string, dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: index dimension must be positive, got %d", domain.ErrInvalidInput, dim)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	idx := &Index{
		dir:       dir,
		dim:       dim,
		byID:      make(map[string]int),
		writeFile: writeFileAtomic,
	}

	gens, err := listGenerations(dir)
	if err != nil {
		return nil, fmt.Errorf("read index directory: %w", err)
	}

	if !fileExists(idx.manifestPath()) && len(gens) == 0 {
		if err := idx.Persist(context.Background()); err != nil {
			return nil, err
		}
		return idx, nil
	}

	if err := idx.Load(context.Background()); err != nil {
		return nil, err
	}
	return idx, nil
}

// Append validates, normalises and stores one vector, then persists.
func (i *Index) Append(ctx context.Context, vector []float32, record domain.StructuredRecord) (int, error) {
	slots, err := i.AppendBatch(ctx, []domain.IndexItem{{Vector: vector, Record: record}})
	if err != nil {
		return -1, err
	}
	return slots[0], nil
}

// AppendBatch stores many items with one persistence write. Nothing is
// stored when any item is invalid or the write fails.
func (i *Index) AppendBatch(ctx context.Context, items []domain.IndexItem) ([]int, error) {
	for n, item := range items {
		if len(item.Vector) != i.dim {
			return nil, fmt.Errorf("item %d: %w: got %d, index holds %d",
				n, domain.ErrDimensionMismatch, len(item.Vector), i.dim)
		}
	}
	if len(items) == 0 {
		return []int{}, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	before := len(i.vecs)
	slots := make([]int, len(items))
	for n, item := range items {
		v := vectors.Normalize(item.Vector)
		slots[n] = len(i.vecs)
		i.vecs = append(i.vecs, v)
		i.mags = append(i.mags, search.Float32s(v).Magnitude())
		i.records = append(i.records, item.Record)
		if item.Record.ID != "" {
			i.byID[item.Record.ID] = slots[n]
		}
	}

	if err := i.persistLocked(); err != nil {
		i.truncateLocked(before)
		return nil, err
	}
	return slots, nil
}

// truncateLocked drops every entry from slot n onwards.
func (i *Index) truncateLocked(n int) {
	i.vecs = i.vecs[:n]
	i.mags = i.mags[:n]
	i.records = i.records[:n]
	i.byID = make(map[string]int, n)
	for slot, r := range i.records {
		if r.ID != "" {
			i.byID[r.ID] = slot
		}
	}
}

// Search returns up to topK entries scoring at least threshold.
func (i *Index) Search(_ context.Context, query []float32, topK int, threshold float64) ([]domain.IndexHit, error) {
	if len(query) != i.dim {
		return nil, fmt.Errorf("search: %w: got %d, index holds %d", domain.ErrDimensionMismatch, len(query), i.dim)
	}
	if topK <= 0 {
		return []domain.IndexHit{}, nil
	}

	q := search.Float32s(vectors.Normalize(query))
	qm := q.Magnitude()

	i.mu.RLock()
	defer i.mu.RUnlock()

	hits := make([]domain.IndexHit, 0)
	for slot, v := range i.vecs {
		score := 0.0
		if qm > 0 && i.mags[slot] > 0 {
			score = vectors.Clamp01(1 - float64(q.CosineDistance(v)))
		}
		if score < threshold {
			continue
		}
		hits = append(hits, domain.IndexHit{Slot: slot, Score: score, Record: i.records[slot]})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Slot < hits[b].Slot
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// GetBySlot returns the entry at slot.
func (i *Index) GetBySlot(slot int) (*domain.IndexEntry, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if slot < 0 || slot >= len(i.vecs) {
		return nil, false
	}
	return i.entryLocked(slot), true
}

// GetByRecordID returns the entry holding the record with id.
func (i *Index) GetByRecordID(id string) (*domain.IndexEntry, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	slot, ok := i.byID[id]
	if !ok {
		return nil, false
	}
	return i.entryLocked(slot), true
}

func (i *Index) entryLocked(slot int) *domain.IndexEntry {
	return &domain.IndexEntry{
		Slot:   slot,
		Vector: vectors.Clone(i.vecs[slot]),
		Record: i.records[slot],
	}
}

// Delete is not supported by a flat positional index.
func (i *Index) Delete(_ context.Context, recordID string) error {
	return fmt.Errorf("delete %s: %w: rebuild the index instead", recordID, domain.ErrNotSupported)
}

// Rebuild discards every entry and persists an empty index.
// The report is lossy whenever entries were dropped.
func (i *Index) Rebuild(context.Context) (domain.RebuildReport, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	report := domain.RebuildReport{Discarded: len(i.vecs)}
	report.Lossy = report.Discarded > 0

	oldVecs, oldMags, oldRecords, oldByID := i.vecs, i.mags, i.records, i.byID
	i.vecs, i.mags, i.records = nil, nil, nil
	i.byID = make(map[string]int)

	if err := i.persistLocked(); err != nil {
		i.vecs, i.mags, i.records, i.byID = oldVecs, oldMags, oldRecords, oldByID
		return domain.RebuildReport{}, err
	}
	return report, nil
}

// Persist writes the current entries as a new generation and commits it.
func (i *Index) Persist(context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.persistLocked()
}

// persistLocked writes the generation pair, then commits it by replacing the
// manifest. A failure before the manifest rename leaves the committed
// generation untouched on disk.
func (i *Index) persistLocked() error {
	gen := i.generation + 1

	blob := encodeBlob(i.dim, gen, i.vecs)
	meta, err := encodeMeta(i.dim, gen, i.records)
	if err != nil {
		return err
	}
	man, err := encodeManifest(gen)
	if err != nil {
		return err
	}

	if err := i.writeFile(i.dir, blobName(gen), blob); err != nil {
		return fmt.Errorf("persist index: %w", err)
	}
	if err := i.writeFile(i.dir, metaName(gen), meta); err != nil {
		i.removeGeneration(gen)
		return fmt.Errorf("persist index metadata: %w", err)
	}
	if err := syncDir(i.dir); err != nil {
		i.removeGeneration(gen)
		return fmt.Errorf("persist index: %w", err)
	}
	if err := i.writeFile(i.dir, ManifestFile, man); err != nil {
		i.removeGeneration(gen)
		return fmt.Errorf("commit index generation %d: %w", gen, err)
	}

	// The manifest rename has happened; from here on gen is the index.
	i.generation = gen
	if err := syncDir(i.dir); err != nil {
		logger.Warn("sync index directory: %v", err)
	}
	i.removeStale()
	return nil
}

// removeGeneration deletes both files of an uncommitted generation.
func (i *Index) removeGeneration(gen uint64) {
	for _, name := range []string{blobName(gen), metaName(gen)} {
		if err := os.Remove(filepath.Join(i.dir, name)); err != nil && !os.IsNotExist(err) {
			logger.Debug("remove %s: %v", name, err)
		}
	}
}

// removeStale deletes every generation other than the committed one and
// temp files left by interrupted writes.
func (i *Index) removeStale() {
	gens, err := listGenerations(i.dir)
	if err != nil {
		logger.Debug("list index generations: %v", err)
		return
	}
	for _, gen := range gens {
		if gen != i.generation {
			i.removeGeneration(gen)
		}
	}

	tmps, _ := filepath.Glob(filepath.Join(i.dir, "index.*.tmp-*"))
	for _, tmp := range tmps {
		_ = os.Remove(tmp)
	}
}

// Load replaces the in-memory state with the committed generation, or with
// the newest consistent older generation when the committed pair is unusable.
func (i *Index) Load(context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	gens, err := listGenerations(i.dir)
	if err != nil {
		return fmt.Errorf("read index directory: %w", err)
	}

	var committed uint64
	data, err := os.ReadFile(i.manifestPath())
	switch {
	case err == nil:
		if committed, err = decodeManifest(data); err != nil {
			return err
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("read index manifest: %w", err)
	}

	candidates := make([]uint64, 0, len(gens)+1)
	if committed > 0 {
		candidates = append(candidates, committed)
	}
	for _, gen := range gens {
		// Generations newer than the manifest were never committed.
		if committed == 0 || gen < committed {
			candidates = append(candidates, gen)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no index generation in %s", domain.ErrInconsistentState, i.dir)
	}

	var firstErr error
	for _, gen := range candidates {
		err := i.loadGenerationLocked(gen)
		if err == nil {
			switch {
			case committed == 0:
				logger.Warn("index manifest missing; recovered generation %d", gen)
			case gen != committed:
				logger.Warn("index generation %d is unusable (%v); recovered generation %d", committed, firstErr, gen)
			}
			return nil
		}
		if errors.Is(err, errDimensionChanged) {
			return err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (i *Index) loadGenerationLocked(gen uint64) error {
	blobData, err := os.ReadFile(filepath.Join(i.dir, blobName(gen)))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s missing", domain.ErrInconsistentState, blobName(gen))
		}
		return fmt.Errorf("read index: %w", err)
	}
	metaData, err := os.ReadFile(filepath.Join(i.dir, metaName(gen)))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s missing", domain.ErrInconsistentState, metaName(gen))
		}
		return fmt.Errorf("read index metadata: %w", err)
	}

	hdr, vecs, err := decodeBlob(blobName(gen), blobData)
	if err != nil {
		return err
	}
	meta, err := decodeMeta(metaName(gen), metaData)
	if err != nil {
		return err
	}

	switch {
	case meta.Dimension != hdr.dim:
		return fmt.Errorf("%w: blob dimension %d, metadata dimension %d",
			domain.ErrInconsistentState, hdr.dim, meta.Dimension)
	case meta.Count != hdr.count || len(meta.Records) != hdr.count:
		return fmt.Errorf("%w: blob holds %d vectors, metadata holds %d records",
			domain.ErrInconsistentState, hdr.count, len(meta.Records))
	case meta.Generation != hdr.generation || hdr.generation != gen:
		return fmt.Errorf("%w: blob generation %d, metadata generation %d, file generation %d",
			domain.ErrInconsistentState, hdr.generation, meta.Generation, gen)
	case hdr.dim != i.dim:
		return fmt.Errorf("%w: index holds %d-dimensional vectors, embedding model produces %d",
			errDimensionChanged, hdr.dim, i.dim)
	}

	i.vecs = vecs
	i.mags = make([]float32, len(vecs))
	i.byID = make(map[string]int, len(vecs))
	for slot, v := range vecs {
		i.mags[slot] = search.Float32s(v).Magnitude()
		if id := meta.Records[slot].ID; id != "" {
			i.byID[id] = slot
		}
	}
	i.records = meta.Records
	i.generation = gen
	return nil
}

// Stats summarises the index.
func (i *Index) Stats() domain.IndexStats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return domain.IndexStats{
		TotalVectors:       len(i.vecs),
		Dimension:          i.dim,
		MetadataCount:      len(i.records),
		IndexFileExists:    fileExists(i.blobPath()),
		MetadataFileExists: fileExists(i.metaPath()),
	}
}

// Dimension returns the configured vector length.
func (i *Index) Dimension() int {
	return i.dim
}

// Close releases resources. The index holds no open handles.
func (i *Index) Close() error {
	return nil
}

// blobPath returns the committed generation's blob.
func (i *Index) blobPath() string {
	return filepath.Join(i.dir, blobName(i.generation))
}

func (i *Index) metaPath() string {
	return filepath.Join(i.dir, metaName(i.generation))
}

func (i *Index) manifestPath() string {
	return filepath.Join(i.dir, ManifestFile)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
