package clock

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }

// Sequence issues "<prefix>1", "<prefix>2", ... and is meant for tests.
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%d", s.Prefix, s.n.Add(1))
}
