package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/depsync/pkg/logging"
)

func TestFromContext(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is tolerated
	assert.Same(t, logging.Default(), logging.FromContext(nil))

	ctx := logging.WithLogger(context.Background(), nil)
	assert.Same(t, logging.Default(), logging.FromContext(ctx))

	nop := logging.NewNopLogger()
	assert.Same(t, nop, logging.FromContext(logging.WithLogger(context.Background(), nop)))
}

func TestContextTags(t *testing.T) {
	tl := logging.NewTestLogger(t)
	base := logging.WithLogger(context.Background(), tl.Logger)
	ctx := logging.WithOperation(base, "check")
	ctx = logging.WithFile(ctx, "gradle/libs.versions.toml")
	ctx = logging.WithCoordinate(ctx, "androidx.activity:activity-ktx:1.3.1")

	logging.FromContext(ctx).Info().Msg("updated catalog dependency declaration")
	logging.FromContext(base).Info().Msg("untagged")

	entries := tl.Entries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "check", entries[0]["operation"])
	assert.Equal(t, "gradle/libs.versions.toml", entries[0]["file"])
	assert.Equal(t, "androidx.activity:activity-ktx:1.3.1", entries[0]["coordinate"])
	assert.NotContains(t, entries[1], "file", "tags do not leak into the parent context")
}
