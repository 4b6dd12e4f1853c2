package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// ComputeGridHash hashes a header plus rows of string cells. Cells are
// length-prefixed so that ("ab","c") and ("a","bc") hash differently.
func ComputeGridHash(header []string, rows [][]string) Hash {
	h := sha256.New()
	writeRow := func(cells []string) {
		var lenBuf [8]byte
		for _, cell := range cells {
			n := uint64(len(cell))
			for i := 0; i < 8; i++ {
				lenBuf[i] = byte(n >> (8 * i))
			}
			h.Write(lenBuf[:])
			h.Write([]byte(cell))
		}
		h.Write([]byte{'\n'})
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return Hash(hex.EncodeToString(h.Sum(nil)))
}
