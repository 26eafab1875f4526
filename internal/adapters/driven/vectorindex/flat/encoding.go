package flat

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/vectors"
)

const (
	blobMagic     = "RVEC"
	formatVersion = 1

	// headerSize is magic(4) + version(4) + dimension(4) + count(4) + generation(8).
	headerSize = 24
)

type blobHeader struct {
	version    uint32
	dim        int
	count      int
	generation uint64
}

type metadata struct {
	Version    int                       `json:"version"`
	Dimension  int                       `json:"dimension"`
	Count      int                       `json:"count"`
	Generation uint64                    `json:"generation"`
	Records    []domain.StructuredRecord `json:"records"`
}

func encodeBlob(dim int, generation uint64, vecs [][]float32) []byte {
	out := make([]byte, headerSize, headerSize+len(vecs)*dim*4)
	copy(out[0:4], blobMagic)
	binary.LittleEndian.PutUint32(out[4:8], formatVersion)
	binary.LittleEndian.PutUint32(out[8:12], uint32(dim))
	binary.LittleEndian.PutUint32(out[12:16], uint32(len(vecs)))
	binary.LittleEndian.PutUint64(out[16:24], generation)
	for _, v := range vecs {
		out = vectors.Encode(out, v)
	}
	return out
}

func decodeBlob(name string, data []byte) (blobHeader, [][]float32, error) {
	var hdr blobHeader
	if len(data) < headerSize || string(data[0:4]) != blobMagic {
		return hdr, nil, fmt.Errorf("%w: %s is not a vector blob", domain.ErrInconsistentState, name)
	}

	hdr.version = binary.LittleEndian.Uint32(data[4:8])
	hdr.dim = int(binary.LittleEndian.Uint32(data[8:12]))
	hdr.count = int(binary.LittleEndian.Uint32(data[12:16]))
	hdr.generation = binary.LittleEndian.Uint64(data[16:24])

	if hdr.version != formatVersion {
		return hdr, nil, fmt.Errorf("%w: unsupported blob version %d", domain.ErrInconsistentState, hdr.version)
	}

	body := data[headerSize:]
	if want := hdr.count * hdr.dim * 4; len(body) != want {
		return hdr, nil, fmt.Errorf("%w: blob body is %d bytes, header implies %d",
			domain.ErrInconsistentState, len(body), want)
	}

	vecs := make([][]float32, hdr.count)
	stride := hdr.dim * 4
	for n := range vecs {
		v, err := vectors.Decode(body[n*stride:(n+1)*stride], hdr.dim)
		if err != nil {
			return hdr, nil, fmt.Errorf("%w: %w", domain.ErrInconsistentState, err)
		}
		vecs[n] = v
	}
	return hdr, vecs, nil
}

func encodeMeta(dim int, generation uint64, records []domain.StructuredRecord) ([]byte, error) {
	if records == nil {
		records = []domain.StructuredRecord{}
	}
	data, err := json.Marshal(metadata{
		Version:    formatVersion,
		Dimension:  dim,
		Count:      len(records),
		Generation: generation,
		Records:    records,
	})
	if err != nil {
		return nil, fmt.Errorf("encode index metadata: %w", err)
	}
	return data, nil
}

func decodeMeta(name string, data []byte) (*metadata, error) {
	var m metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInconsistentState, name, err)
	}
	return &m, nil
}

// manifest names the committed generation.
type manifest struct {
	Version    int    `json:"version"`
	Generation uint64 `json:"generation"`
}

func encodeManifest(generation uint64) ([]byte, error) {
	data, err := json.Marshal(manifest{Version: formatVersion, Generation: generation})
	if err != nil {
		return nil, fmt.Errorf("encode index manifest: %w", err)
	}
	return data, nil
}

func decodeManifest(data []byte) (uint64, error) {
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrInconsistentState, ManifestFile, err)
	}
	if m.Version != formatVersion || m.Generation == 0 {
		return 0, fmt.Errorf("%w: %s: unsupported version %d or generation %d",
			domain.ErrInconsistentState, ManifestFile, m.Version, m.Generation)
	}
	return m.Generation, nil
}

// generationFile matches the blob and sidecar names of one generation.
var generationFile = regexp.MustCompile(`^index\.(\d+)\.(?:vec|meta\.json)$`)

func blobName(gen uint64) string {
	return fmt.Sprintf("index.%06d.vec", gen)
}

func metaName(gen uint64) string {
	return fmt.Sprintf("index.%06d.meta.json", gen)
}

// listGenerations returns the generations with at least one file in dir,
// newest first.
func listGenerations(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]bool)
	for _, e := range entries {
		m := generationFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		gen, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}
		seen[gen] = true
	}

	gens := make([]uint64, 0, len(seen))
	for gen := range seen {
		gens = append(gens, gen)
	}
	sort.Slice(gens, func(a, b int) bool { return gens[a] > gens[b] })
	return gens, nil
}

// writeFileAtomic replaces dir/name via a synced temp file and rename.
func writeFileAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// syncDir flushes directory entries so completed renames survive a crash.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
