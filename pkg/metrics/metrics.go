package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/formkit/pkg/result"
)

const namespace = "formkit"

// Outcome label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Recorder counts validations and failed checks.
type Recorder struct {
	validations   *prometheus.CounterVec
	checkFailures *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of validated documents by rule and outcome",
			},
			[]string{"rule", "outcome"},
		),
		checkFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "check_failures_total",
				Help:      "Total number of failed checks by check name",
			},
			[]string{"check"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Time spent validating one document, async checks included",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"rule"},
		),
	}

	for _, c := range []prometheus.Collector{r.validations, r.checkFailures, r.duration} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				return nil, errors.Join(ErrAlreadyRegistered, err)
			}
			return nil, err
		}
	}
	return r, nil
}

// MustNewRecorder is like NewRecorder but panics on registration errors.
func MustNewRecorder(reg prometheus.Registerer) *Recorder {
	r, err := NewRecorder(reg)
	if err != nil {
		panic(err)
	}
	return r
}

// ObserveValidation records one finished validation of the named rule.
func (r *Recorder) ObserveValidation(rule string, res *result.Result, elapsed time.Duration) {
	outcome := OutcomeValid
	if res != nil && res.HasErrors {
		outcome = OutcomeInvalid
	}
	r.validations.WithLabelValues(rule, outcome).Inc()
	r.duration.WithLabelValues(rule).Observe(elapsed.Seconds())
}

// ObserveCheckFailure records one failed check.
func (r *Recorder) ObserveCheckFailure(check string) {
	r.checkFailures.WithLabelValues(check).Inc()
}

// ErrAlreadyRegistered is returned when the collectors already exist in the registerer.
var ErrAlreadyRegistered = errors.New("formkit metrics already registered")
