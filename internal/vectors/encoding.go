package vectors

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode appends v to dst as little-endian IEEE 754 float32 values.
func Encode(dst []byte, v []float32) []byte {
	var b [4]byte
	for _, x := range v {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(x))
		dst = append(dst, b[:]...)
	}
	return dst
}

// Decode reads n float32 values from b.
func Decode(b []byte, n int) ([]float32, error) {
	if len(b) < n*4 {
		return nil, fmt.Errorf("vectors: blob holds %d bytes, need %d", len(b), n*4)
	}
	v := make([]float32, n)
	for i := 0; i < n; i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
