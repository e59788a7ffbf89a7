package logging

import (
	"testing"

	"authflow/internal/core/domain/logging"

	"github.com/stretchr/testify/require"
)

func TestPrepareArgs(t *testing.T) {
	args := prepareArgs(logging.Entry("userID", 1), logging.Entry("email", "a@x.com"))
	require.Equal(t, []interface{}{"userID", 1, "email", "a@x.com"}, args)
}

func TestPrepareArgsEmpty(t *testing.T) {
	require.Empty(t, prepareArgs())
}

func TestNewZapLoggerAcceptsUnknownLevel(t *testing.T) {
	require.NotPanics(t, func() {
		NewZapLogger("not-a-level")
		NewZapLogger("debug")
		NewZapLogger("")
	})
}
