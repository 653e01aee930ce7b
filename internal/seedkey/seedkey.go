// Package seedkey derives deterministic int64 seeds from caller-supplied
// strings, for the /puzzle/generate endpoint's optional seedKey parameter.
// Grounded on internal/daily.WordIndex's HMAC(salt, key) scheme, generalized
// from a fixed date-keyed word index into an arbitrary-key seed derivation
// so the generator package never needs to know where a seed came from.
package seedkey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
)

// Derive returns a deterministic int64 seed from key under salt. The same
// (salt, key) pair always yields the same seed, which is the whole point:
// a client that supplies the same seedKey twice gets byte-identical
// puzzles back, per spec.md §8 S6, without the server persisting anything.
func Derive(salt, key string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
