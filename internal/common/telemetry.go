package common

import (
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	TripsLoadedTotal *prometheus.CounterVec
	TripsKeptTotal   *prometheus.CounterVec
	ReportSeconds    *prometheus.HistogramVec
	LoadErrorsTotal  *prometheus.CounterVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		TripsLoadedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bikeshare_trips_loaded_total",
				Help: "Trip rows read from the city data source",
			},
			[]string{"city"},
		),
		TripsKeptTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bikeshare_trips_kept_total",
				Help: "Trip rows left after month and day filters",
			},
			[]string{"city"},
		),
		ReportSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bikeshare_report_seconds",
				Help:    "Time spent computing and printing one statistics report",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		LoadErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bikeshare_load_errors_total",
				Help: "Failed attempts to load a city data source",
			},
			[]string{"city"},
		),
	}

	registry.MustRegister(
		metrics.TripsLoadedTotal,
		metrics.TripsKeptTotal,
		metrics.ReportSeconds,
		metrics.LoadErrorsTotal,
	)

	return metrics
}

// ReportObserver returns nil on a nil receiver so callers can pass it straight to NewStopwatch.
func (metrics *Metrics) ReportObserver(report string) prometheus.Observer {
	if metrics == nil {
		return nil
	}
	return metrics.ReportSeconds.WithLabelValues(report)
}

func (metrics *Metrics) ObserveLoad(city string, loaded, kept int) {
	if metrics == nil {
		return
	}
	metrics.TripsLoadedTotal.WithLabelValues(city).Add(float64(loaded))
	metrics.TripsKeptTotal.WithLabelValues(city).Add(float64(kept))
}

func (metrics *Metrics) ObserveLoadError(city string) {
	if metrics == nil {
		return
	}
	metrics.LoadErrorsTotal.WithLabelValues(city).Inc()
}

type TelemetryServer struct {
	addr     string
	mux      *http.ServeMux
	registry *prometheus.Registry

	server   *http.Server
	listener net.Listener
}

func NewTelemetryServer(addr string) *TelemetryServer {
	telemetry := &TelemetryServer{
		addr:     addr,
		registry: prometheus.NewRegistry(),
		mux:      http.NewServeMux(),
	}

	telemetry.mux.Handle(
		"/metrics",
		promhttp.HandlerFor(telemetry.registry, promhttp.HandlerOpts{}),
	)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bikeshare_build_info",
			Help: "Build metadata",
		},
		[]string{"version", "git_commit"},
	)

	telemetry.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo,
	)

	buildInfo.WithLabelValues(Version, GitCommit).Set(1)

	telemetry.mux.HandleFunc("/debug/pprof/", pprof.Index)
	telemetry.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	telemetry.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	telemetry.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	telemetry.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return telemetry
}

func (telemetry *TelemetryServer) GetRegistry() *prometheus.Registry {
	return telemetry.registry
}

// Addr is the bound address once Start has returned, else the configured one.
func (telemetry *TelemetryServer) Addr() string {
	if telemetry.listener != nil {
		return telemetry.listener.Addr().String()
	}
	return telemetry.addr
}

func (telemetry *TelemetryServer) Start() error {
	telemetry.server = &http.Server{
		Addr:              telemetry.addr,
		Handler:           telemetry.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", telemetry.addr)
	if err != nil {
		return err
	}

	telemetry.listener = listener

	go telemetry.server.Serve(telemetry.listener)

	slog.Info("telemetry server started", "addr", telemetry.Addr())
	return nil
}

func (telemetry *TelemetryServer) Stop() error {
	if telemetry.server == nil {
		return nil
	}

	return telemetry.server.Close()
}
