// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// logExporter writes finished spans to a logger.
type logExporter struct {
	logger logrus.FieldLogger
}

var _ sdktrace.SpanExporter = (*logExporter)(nil)

func (e *logExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := logrus.Fields{
			"span":     span.Name(),
			"duration": span.EndTime().Sub(span.StartTime()),
		}
		if span.Parent().IsValid() {
			fields["parent"] = span.Parent().SpanID().String()
		}
		for _, attr := range span.Attributes() {
			fields[string(attr.Key)] = attr.Value.Emit()
		}
		e.logger.WithFields(fields).Info("lisp call")
	}
	return nil
}

func (e *logExporter) Shutdown(ctx context.Context) error {
	return nil
}
