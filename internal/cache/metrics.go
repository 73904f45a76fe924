// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package cache

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	hitsDesc = prometheus.NewDesc(
		"flint_cache_hits_total", "Lookups that found a live entry.", nil, nil)
	missesDesc = prometheus.NewDesc(
		"flint_cache_misses_total", "Lookups that found nothing.", nil, nil)
	evictionsDesc = prometheus.NewDesc(
		"flint_cache_evictions_total", "Entries evicted to stay under capacity.", nil, nil)
	usageDesc = prometheus.NewDesc(
		"flint_cache_usage_bytes", "Sum of charge over all resident entries.", nil, nil)
	lockWaitDesc = prometheus.NewDesc(
		"flint_cache_lock_wait_seconds", "Shard-lock wait time quantiles observed by Insert/Lookup.",
		[]string{"quantile"}, nil)
)

// Describe implements prometheus.Collector. The embedding process, not
// the cache itself, registers the Cache with a prometheus.Registerer.
func (c *Cache) Describe(ch chan<- *prometheus.Desc) {
	ch <- hitsDesc
	ch <- missesDesc
	ch <- evictionsDesc
	ch <- usageDesc
	ch <- lockWaitDesc
}

// Collect implements prometheus.Collector.
func (c *Cache) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(hitsDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.hits)))
	ch <- prometheus.MustNewConstMetric(missesDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.misses)))
	ch <- prometheus.MustNewConstMetric(evictionsDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.evictions)))
	ch <- prometheus.MustNewConstMetric(usageDesc, prometheus.GaugeValue, float64(c.TotalCharge()))

	c.lockWaitMu.Lock()
	p50 := float64(c.lockWait.ValueAtQuantile(50)) / 1e9
	p99 := float64(c.lockWait.ValueAtQuantile(99)) / 1e9
	c.lockWaitMu.Unlock()
	ch <- prometheus.MustNewConstMetric(lockWaitDesc, prometheus.GaugeValue, p50, "0.5")
	ch <- prometheus.MustNewConstMetric(lockWaitDesc, prometheus.GaugeValue, p99, "0.99")
}
