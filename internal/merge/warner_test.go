package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictWarner_OncePerCause(t *testing.T) {
	logger, logs := observedLogger()
	warner := NewConflictWarner(logger)

	for i := 0; i < 100; i++ {
		warner.Warn("INFO.DP", fmt.Sprintf("conflict %d", i))
	}

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "conflict 0", logs.All()[0].Message)
}

func TestConflictWarner_DistinctCauses(t *testing.T) {
	logger, logs := observedLogger()
	warner := NewConflictWarner(logger)

	warner.Warn("INFO.DP", "depth conflict")
	warner.Warn("INFO.AF", "frequency conflict")
	warner.Warn("INFO.DP", "depth conflict again")

	assert.Equal(t, 2, logs.Len())
}

func TestConflictWarner_NilLoggerIsNoop(t *testing.T) {
	warner := NewConflictWarner(nil)

	// Must not panic, and must not record anything either.
	warner.Warn("INFO.DP", "conflict")
	assert.Empty(t, warner.issued)
}
