package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver("test", reg)
	require.NoError(t, err)

	o.RecordDelivery(time.Millisecond, nil)
	o.RecordDelivery(time.Millisecond, errors.New("gone"))
	o.RecordDelivery(time.Millisecond, nil)
	o.RecordMembership("main", true)
	o.RecordMembership("backup", false)
	o.RecordSearch(0)
	o.RecordPost(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.deliveries.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.deliveries.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.membership.WithLabelValues("backup", "missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.searches.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.posts.WithLabelValues("ok")))
}

func TestObserver_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewObserver("test", reg)
	require.NoError(t, err)
	second, err := NewObserver("test", reg)
	require.NoError(t, err)

	second.RecordSearch(2)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.searches.WithLabelValues("hit")))
}

func TestObserver_Nil(t *testing.T) {
	var o *Observer
	assert.NotPanics(t, func() {
		o.RecordDelivery(time.Second, nil)
		o.RecordMembership("main", true)
		o.RecordSearch(3)
		o.RecordPost(errors.New("x"))
	})
}
