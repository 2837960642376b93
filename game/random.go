package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"sync"
	"time"
)

// Source is a uniform generator over [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSeededSource returns a deterministic source, for tests and replays
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// CryptoSource draws from the system's secure random number generator.
// If that fails it falls back to a time seeded math/rand source.
type CryptoSource struct {
	once     sync.Once
	mu       sync.Mutex
	fallback *rand.Rand
}

// Intn returns a uniform value in [0, n)
func (c *CryptoSource) Intn(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err == nil {
		return int(v.Int64())
	}
	c.once.Do(func() {
		c.fallback = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fallback.Intn(n)
}

// Locked serializes access to src so it can be shared between goroutines
func Locked(src Source) Source {
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

func randomMove(src Source) Move {
	return Move(src.Intn(numMoves))
}

func randomObjective(src Source) Objective {
	return Objective(src.Intn(2) == 1)
}

// GenerateRandomString returns a random string of length N
func GenerateRandomString(n int) (string, error) {
	letters := "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	data, err := GenerateRandomBytes(n)
	if err != nil {
		return "NONRANDOM", err
	}
	for i, b := range data {
		data[i] = letters[b%byte(len(letters))]
	}
	return string(data), nil
}

// GenerateRandomBytes returns securely generated random bytes.
// It will return an error if the system's secure random
// number generator fails to function correctly, in which
// case the caller should not continue.
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := crand.Read(b)
	// Note that err == nil only if we read len(b) bytes.
	if err != nil {
		return nil, err
	}

	return b, nil
}
