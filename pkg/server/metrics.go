package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Response classes.
const (
	responseRedirect      = "redirect"
	responseNotFound      = "not_found"
	responseInvalidTarget = "invalid_target"
)

var (
	// responsesTotal tracks redirect responses by class.
	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redirectd_responses_total",
			Help: "Total HTTP responses by class (redirect, not_found, invalid_target)",
		},
		[]string{"class"},
	)
)
