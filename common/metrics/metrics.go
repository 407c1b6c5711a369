// Package metrics exports bot activity counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "asterix"

// Observer records deliveries, membership checks, searches and channel posts.
// A nil *Observer is valid and records nothing.
type Observer struct {
	deliveries       *prometheus.CounterVec
	deliveryDuration prometheus.Histogram
	membership       *prometheus.CounterVec
	searches         *prometheus.CounterVec
	posts            *prometheus.CounterVec
}

func NewObserver(namespace string, reg prometheus.Registerer) (*Observer, error) {
	if namespace == "" {
		namespace = Namespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &Observer{
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "File deliveries by result.",
		}, []string{"result"}),
		deliveryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delivery_duration_seconds",
			Help:      "Latency of relaying a stored file to a user.",
			Buckets:   prometheus.DefBuckets,
		}),
		membership: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "membership_checks_total",
			Help:      "Channel membership checks by channel role and result.",
		}, []string{"channel", "result"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches by whether anything matched.",
		}, []string{"result"}),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_posts_total",
			Help:      "Owner posts to the publish channel by result.",
		}, []string{"result"}),
	}
	var err error
	if o.deliveries, err = register(reg, o.deliveries); err != nil {
		return nil, err
	}
	if o.deliveryDuration, err = register(reg, o.deliveryDuration); err != nil {
		return nil, err
	}
	if o.membership, err = register(reg, o.membership); err != nil {
		return nil, err
	}
	if o.searches, err = register(reg, o.searches); err != nil {
		return nil, err
	}
	if o.posts, err = register(reg, o.posts); err != nil {
		return nil, err
	}
	return o, nil
}

// register returns the already registered collector when an identical one exists,
// so two observers on one registry share their series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

func (o *Observer) RecordDelivery(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.deliveryDuration.Observe(duration.Seconds())
	o.deliveries.WithLabelValues(result(err)).Inc()
}

func (o *Observer) RecordMembership(channel string, member bool) {
	if o == nil {
		return
	}
	res := "member"
	if !member {
		res = "missing"
	}
	o.membership.WithLabelValues(channel, res).Inc()
}

func (o *Observer) RecordSearch(results int) {
	if o == nil {
		return
	}
	res := "hit"
	if results == 0 {
		res = "miss"
	}
	o.searches.WithLabelValues(res).Inc()
}

func (o *Observer) RecordPost(err error) {
	if o == nil {
		return
	}
	o.posts.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Serve exposes gatherer on addr until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.FromContext(ctx).Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
