// Package runid generates identifiers for simulation runs. Identifiers
// are UUIDv7 values rendered as 26 characters of Crockford base32, so
// they sort lexically by creation time.
package runid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns a fresh run identifier.
func New() string {
	return newAt(time.Now(), rand.Reader)
}

// newAt builds an identifier from an explicit timestamp and entropy
// source. The layout is UUIDv7: 48 bits of millisecond timestamp, then
// version and variant bits set over random data.
func newAt(now time.Time, entropy io.Reader) string {
	var id [16]byte
	ms := uint64(now.UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}
	if _, err := io.ReadFull(entropy, id[6:]); err != nil {
		panic("runid: reading entropy: " + err.Error())
	}
	id[6] = id[6]&0x0f | 0x70
	id[8] = id[8]&0x3f | 0x80
	return encode(id)
}

// encode renders 128 bits as 26 base32 characters. Two zero bits pad the
// front, which keeps the first character in the 0-7 range.
func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[0:8])
	lo := binary.BigEndian.Uint64(id[8:16])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Validate reports whether id has the shape New produces.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("run ID must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("run ID has invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
