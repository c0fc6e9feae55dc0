// Package telemetry provides teleport.Observer implementations.
//
// Metrics records Prometheus counters and a deploy duration histogram;
// Tracing opens one OpenTelemetry span per deploy pass. Multi fans out to
// several observers:
//
//	obs := telemetry.Multi(
//	    telemetry.NewMetrics(telemetry.WithRegistry(reg)),
//	    telemetry.NewTracing(telemetry.WithTracerName("my-app")),
//	)
//	portals := teleport.Factory(teleport.WithObserver(obs))
package telemetry
