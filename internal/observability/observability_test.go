package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "chirp-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	ctx, span := TraceServiceCall(context.Background(), "PostService", "AddPost")
	assert.NotNil(t, ctx)
	EndSpan(span, errors.New("boom"))
}

func TestDatabaseMetrics_RecordOutcome(t *testing.T) {
	m := NewDatabaseMetrics("likes_test")
	before := testutil.ToFloat64(RepositoryOperations.WithLabelValues("likes_test.AddLike", "CONFLICT"))

	m.RecordOutcome("AddLike", "CONFLICT")
	done := m.TrackQuery("AddLike")
	done()

	after := testutil.ToFloat64(RepositoryOperations.WithLabelValues("likes_test.AddLike", "CONFLICT"))
	assert.Equal(t, before+1, after)
}
