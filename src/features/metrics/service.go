package metrics

import (
	"fmt"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// Metric represents a single metric data point.
type Metric struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

// Service turns the recorder's registry into a small JSON friendly summary.
type Service struct {
	recorder *Recorder
}

// NewService creates a new metrics service.
func NewService(recorder *Recorder) *Service {
	return &Service{recorder: recorder}
}

// Recorder returns the recorder backing the service.
func (s *Service) Recorder() *Recorder { return s.recorder }

// GetAllMetrics returns every soundsort metric, runtime collectors excluded.
// Histograms are reported by their sample count.
func (s *Service) GetAllMetrics() ([]Metric, error) {
	families, err := s.recorder.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var out []Metric
	for _, family := range families {
		name := family.GetName()
		if !strings.HasPrefix(name, namespace+"_") {
			continue
		}
		for _, m := range family.GetMetric() {
			metric := Metric{Name: name}
			if len(m.GetLabel()) > 0 {
				metric.Labels = make(map[string]string, len(m.GetLabel()))
				for _, l := range m.GetLabel() {
					metric.Labels[l.GetName()] = l.GetValue()
				}
			}
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				metric.Value = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				metric.Value = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				metric.Value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			out = append(out, metric)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
