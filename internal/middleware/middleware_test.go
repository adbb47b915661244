package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/questx-lab/nftgallery/internal/common"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestPrometheus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/getProfile", nil)
	ctx := xcontext.WithHTTPRequest(context.Background(), req)

	ctx, err := WithStartTime()(ctx)
	require.NoError(t, err)
	require.False(t, xcontext.StartTime(ctx).IsZero())

	counter := common.PromCounters[common.HTTPRequestTotal].WithLabelValues("/getProfile", "400001")
	before := testutil.ToFloat64(counter)

	ctx = xcontext.WithError(ctx, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data"))
	Prometheus()(ctx)
	Logger()(ctx)

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
