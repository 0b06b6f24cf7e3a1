package edgehttp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the connection engine. Registered unconditionally
// (no build tag to opt out) since they are cheap counters/gauges on a path
// that already does far more work per call, and an operator running many
// reactor threads wants them without a rebuild.
var (
	connectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "edgehttp",
		Subsystem: "engine",
		Name:      "connections_active",
		Help:      "Number of connections currently registered with a reactor thread.",
	})

	requestsServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edgehttp",
		Subsystem: "engine",
		Name:      "requests_served_total",
		Help:      "Total number of requests successfully framed and handed to the application.",
	})

	parseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edgehttp",
		Subsystem: "engine",
		Name:      "parse_errors_total",
		Help:      "Total number of errors (parse, message too big, I/O, socket) that sent a connection down the canonical 500 path, by kind.",
	}, []string{"kind"})

	bytesReadTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edgehttp",
		Subsystem: "engine",
		Name:      "bytes_read_total",
		Help:      "Total bytes drained from client sockets into input buffers.",
	})

	bytesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edgehttp",
		Subsystem: "engine",
		Name:      "bytes_written_total",
		Help:      "Total bytes drained from output buffers to client sockets.",
	})

	inputBufferGrowthsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "edgehttp",
		Subsystem: "engine",
		Name:      "input_buffer_growths_total",
		Help:      "Total number of times an input buffer's capacity was doubled.",
	})
)

// observeParseError increments the labeled error counter for one of the
// taxonomy kinds in errors.go.
func observeParseError(cause error) {
	kind := "unknown"
	switch cause.(type) {
	case *MessageTooBig:
		kind = "message_too_big"
	case *IoError:
		kind = "io"
	case *ParseError:
		kind = "parse"
	}
	if cause == ErrSocket {
		kind = "socket"
	}
	parseErrorsTotal.WithLabelValues(kind).Inc()
}
