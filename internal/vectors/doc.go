// Package vectors provides the float32 vector arithmetic shared by the
// embedding generator and the vector index: L2 normalisation, inner
// product, clamped cosine similarity and a little-endian blob codec.
package vectors
