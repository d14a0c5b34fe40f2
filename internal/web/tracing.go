package web

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/desertthunder/festa/internal/web")
