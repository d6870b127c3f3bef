package metrics

import (
	"github.com/contre95/soundsort/src/features/downloading"
	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/contre95/soundsort/src/infra/files"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "soundsort"

var (
	_ files.Observer       = (*Recorder)(nil)
	_ sorting.Observer     = (*Recorder)(nil)
	_ downloading.Observer = (*Recorder)(nil)
)

// Recorder counts what the relocator, the sorting session and the downloader do.
type Recorder struct {
	registry *prometheus.Registry

	relocations        *prometheus.CounterVec
	relocationAttempts prometheus.Histogram
	relocationFailures prometheus.Counter
	orphans            prometheus.Counter
	categorized        *prometheus.CounterVec
	undone             prometheus.Counter
	skipped            prometheus.Counter
	downloads          *prometheus.CounterVec
	downloadBytes      *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry, including the Go runtime collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		relocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relocations_total",
			Help:      "Files relocated, by method (rename or copy).",
		}, []string{"method"}),
		relocationAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "relocation_attempts",
			Help:      "Rename attempts used per successful relocation.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		relocationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relocation_failures_total",
			Help:      "Relocations where the fallback copy failed too.",
		}),
		orphans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphaned_sources_total",
			Help:      "Sources left behind after a fallback copy.",
		}),
		categorized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "categorized_total",
			Help:      "Sounds sorted into a category.",
		}, []string{"category"}),
		undone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_total",
			Help:      "Categorizations undone.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_total",
			Help:      "Sounds skipped without sorting.",
		}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Preview downloads, by provider and result.",
		}, []string{"provider", "result"}),
		downloadBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_bytes_total",
			Help:      "Bytes downloaded, by provider.",
		}, []string{"provider"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		r.relocations,
		r.relocationAttempts,
		r.relocationFailures,
		r.orphans,
		r.categorized,
		r.undone,
		r.skipped,
		r.downloads,
		r.downloadBytes,
	)
	return r
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) Relocated(method files.Method, attempts int) {
	r.relocations.WithLabelValues(string(method)).Inc()
	r.relocationAttempts.Observe(float64(attempts))
}

func (r *Recorder) RelocationFailed() { r.relocationFailures.Inc() }

func (r *Recorder) OrphanLeft() { r.orphans.Inc() }

func (r *Recorder) Categorized(category string) {
	r.categorized.WithLabelValues(category).Inc()
}

func (r *Recorder) Undone() { r.undone.Inc() }

func (r *Recorder) Skipped() { r.skipped.Inc() }

func (r *Recorder) Downloaded(provider string, bytes int64) {
	r.downloads.WithLabelValues(provider, "saved").Inc()
	r.downloadBytes.WithLabelValues(provider).Add(float64(bytes))
}

func (r *Recorder) DownloadFailed(provider string) {
	r.downloads.WithLabelValues(provider, "failed").Inc()
}
