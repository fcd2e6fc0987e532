// Package metrics exports validation activity as Prometheus metrics.
//
// Recorder implements engine.Observer:
//
//	reg := prometheus.NewRegistry()
//	rec, err := metrics.NewRecorder(reg)
//	if err != nil {
//		return err
//	}
//	eng := engine.New(engine.WithObserver(rec))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Exported series, all under the formkit namespace:
//
//	formkit_validations_total{rule,outcome}       outcome is "valid" or "invalid"
//	formkit_check_failures_total{check}           one increment per failed check
//	formkit_validation_duration_seconds{rule}     async checks included
//
// Registering twice on the same registerer returns ErrAlreadyRegistered.
package metrics
