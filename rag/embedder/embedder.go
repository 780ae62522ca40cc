// Package embedder holds helpers shared by the embedding clients.
package embedder

import (
	"math"
)

// Normalize scales v to unit length in place. A zero vector is left unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// Batches 将 texts 按 size 切分，size 小于等于 0 时不切分
func Batches(texts []string, size int) [][]string {
	if size <= 0 || size >= len(texts) {
		if len(texts) == 0 {
			return nil
		}
		return [][]string{texts}
	}
	batches := make([][]string, 0, (len(texts)+size-1)/size)
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}
	return batches
}
