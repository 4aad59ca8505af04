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


/*
Package tracing provides OpenTelemetry tracing for textchef.

A Provider is built from Config. With the "none" exporter and no extra
options it hands out a no-op tracer, so callers never check whether
tracing is on:

	provider, err := tracing.NewProvider(tracing.Config{
	    ServiceName: "textchefd",
	    Exporter:    "stdout",
	})
	defer provider.Shutdown(ctx)

HTTPMiddleware extracts W3C trace context from incoming requests, and
StartExecution opens one span per operation execution carrying the
operation name, input size and outcome.
*/
package tracing
