package announce

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so ordering is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs as 32 hex characters.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }
