// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for operation executions.
const (
	AttrOperation  = attribute.Key("textchef.operation")
	AttrInputBytes = attribute.Key("textchef.input_bytes")
	AttrSuccess    = attribute.Key("textchef.success")
	AttrRequestID  = attribute.Key("textchef.request_id")
)

// ExecutionSpan wraps the span recorded around one execution.
type ExecutionSpan struct {
	span trace.Span
}

// StartExecution starts a span named "execute <operation>".
func StartExecution(ctx context.Context, tracer trace.Tracer, operation string, inputBytes int, requestID string) (context.Context, *ExecutionSpan) {
	attrs := []attribute.KeyValue{
		AttrOperation.String(operation),
		AttrInputBytes.Int(inputBytes),
	}
	if requestID != "" {
		attrs = append(attrs, AttrRequestID.String(requestID))
	}
	ctx, span := tracer.Start(ctx, "execute "+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return ctx, &ExecutionSpan{span: span}
}

// End records the outcome and ends the span. A failure message sets the
// span status to Error.
func (s *ExecutionSpan) End(success bool, failure string) {
	s.span.SetAttributes(AttrSuccess.Bool(success))
	if success {
		s.span.SetStatus(codes.Ok, "")
	} else {
		s.span.SetStatus(codes.Error, failure)
	}
	s.span.End()
}
