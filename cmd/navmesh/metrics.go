package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "navmesh_requests_total",
		Help: "HTTP requests by endpoint and result",
	}, []string{"endpoint", "result"})

	routeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "navmesh_route_duration_seconds",
		Help:    "FindPath duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	})

	routeWaypoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "navmesh_route_waypoints",
		Help:    "Waypoints per found route",
		Buckets: []float64{2, 3, 5, 10, 20, 50, 100},
	})

	meshRegions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "navmesh_regions",
		Help: "Regions in the active navigation mesh",
	})

	meshBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "navmesh_build_duration_seconds",
		Help:    "FromPolygons duration",
		Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60},
	})
)
