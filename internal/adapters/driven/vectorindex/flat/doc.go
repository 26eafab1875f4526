// Package flat provides a brute-force vector index persisted as a binary
// vector blob plus a JSON metadata sidecar.
//
// Every stored vector is unit length, so cosine similarity against a
// normalised query reduces to a dot product. Scoring uses github.com/viant/vec.
// Search is exact: every entry is scored on every query.
//
// # Files
//
//   - index.<gen>.vec: magic "RVEC", version, dimension, count, generation,
//     then count*dimension little-endian float32 values
//   - index.<gen>.meta.json: dimension, count, generation and the records in
//     slot order
//   - index.manifest.json: the committed generation
//
// A persist writes a new generation pair (temp file, fsync, rename) and then
// commits it by replacing the manifest, which is the only rename that changes
// what Open loads. Older generations are removed after the commit.
//
// Open loads the committed generation. When that pair is missing or
// disagrees on generation, dimension or count, Open falls back to the newest
// older generation that is consistent, and fails with
// domain.ErrInconsistentState when none is.
package flat
