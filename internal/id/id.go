// Package id mints ULIDs for narration messages. ULIDs are time-ordered,
// so messages pushed in the same millisecond still sort in the order the
// player saw them.
package id

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader = newEntropy()
)

func newEntropy() io.Reader {
	// ulid.Monotonic keeps same-millisecond IDs strictly increasing. Its
	// PRNG is seeded from crypto/rand so IDs stay unpredictable.
	var seed int64
	if err := binary.Read(cryptorand.Reader, binary.LittleEndian, &seed); err != nil || seed == 0 {
		seed = time.Now().UnixNano()
	}
	return ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New mints one ULID string. The message id doubles as the idempotency
// key when a journal replays a month, so uniqueness matters more here
// than generation speed.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entropy)
	if err != nil {
		// Only possible if the clock jumps backwards past the ULID epoch
		// or the entropy reader fails.
		panic(err)
	}
	return id.String()
}
