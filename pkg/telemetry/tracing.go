package telemetry

import (
	"context"

	"github.com/vango-dev/teleport/pkg/teleport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "vango/teleport"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "vango/teleport").
	// Ignored when Tracer is set.
	TracerName string

	// Tracer overrides the tracer taken from the global provider.
	Tracer trace.Tracer

	// Attributes are added to every span.
	Attributes []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithAttributes adds attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Span attribute keys.
const (
	AttrTeleportID = attribute.Key("teleport.id")
	AttrTarget     = attribute.Key("teleport.target")
	AttrMode       = attribute.Key("teleport.mode")
	AttrEventType  = attribute.Key("teleport.event.type")
	AttrErrorKind  = attribute.Key("teleport.error.kind")
)

// Tracing is a teleport.Observer emitting OpenTelemetry spans.
type Tracing struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

var _ teleport.Observer = (*Tracing)(nil)

// NewTracing creates the tracing observer.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{tracer: tracer, attrs: config.Attributes}
}

func (t *Tracing) start(name, id string, attrs ...attribute.KeyValue) trace.Span {
	all := make([]attribute.KeyValue, 0, len(t.attrs)+len(attrs)+1)
	all = append(all, t.attrs...)
	all = append(all, AttrTeleportID.String(id))
	all = append(all, attrs...)
	_, span := t.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(all...),
	)
	return span
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(AttrErrorKind.String(teleport.ErrorKind(err)))
}

// DeployStarted implements teleport.Observer. The span covers the deploy
// pass and ends when the returned func is called.
func (t *Tracing) DeployStarted(info teleport.DeployInfo) func(error) {
	span := t.start("teleport.deploy", info.ID,
		AttrTarget.String(info.Locator),
		AttrMode.String(string(info.Mode)),
	)
	return func(err error) {
		if err != nil {
			fail(span, err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// Withdrawn implements teleport.Observer.
func (t *Tracing) Withdrawn(id string) {
	t.start("teleport.withdraw", id).End()
}

// Redirected implements teleport.Observer.
func (t *Tracing) Redirected(id string, eventType string) {
	t.start("teleport.redirect", id, AttrEventType.String(eventType)).End()
}

// Rejected implements teleport.Observer.
func (t *Tracing) Rejected(id string, err error) {
	span := t.start("teleport.reject", id)
	fail(span, err)
	span.End()
}
