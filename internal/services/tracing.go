package services

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/desertthunder/festa/internal/services")
