package db

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	DistanceL2     = "l2"
	DistanceCosine = "cosine"
)

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("embedding blob has %d bytes, not a multiple of 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}

// l2 返回平方欧氏距离，排序结果与欧氏距离一致
func l2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// cosineDistance 为 1 - 余弦相似度，零向量距离记为 1
func cosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

func distanceFunc(name string) (func(a, b []float32) float64, error) {
	switch name {
	case "", DistanceL2:
		return l2, nil
	case DistanceCosine:
		return cosineDistance, nil
	default:
		return nil, fmt.Errorf("unknown distance %q, want %q or %q", name, DistanceL2, DistanceCosine)
	}
}
