package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-source", OutcomeError))

	ObserveUpstream("test-source", errors.New("boom"))
	ObserveUpstream("test-source", nil)

	require.Equal(t, before+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-source", OutcomeError)))
	require.GreaterOrEqual(t, testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-source", OutcomeSuccess)), 1.0)
}

func TestObservePhotoUpload(t *testing.T) {
	ObservePhotoUpload(time.Now().Add(-time.Second), nil)

	require.GreaterOrEqual(t, testutil.CollectAndCount(PhotoUploadDuration), 1)
}
