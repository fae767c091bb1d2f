// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package provider

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/uber-go/tally"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	_authLogInterval = time.Second
	_authLogBurst    = 5
)

type metrics struct {
	scope     tally.Scope
	resources tally.Gauge
}

func newMetrics(scope tally.Scope, service string) *metrics {
	if scope == nil {
		scope = tally.NoopScope
	}
	scope = scope.Tagged(map[string]string{"service": service})
	return &metrics{
		scope:     scope,
		resources: scope.Gauge("resources"),
	}
}

// call records the outcome of one procedure call.
func (m *metrics) call(procedure string, err error) {
	m.scope.Tagged(map[string]string{
		"procedure": procedure,
		"ret":       yperrors.ErrorCode(err).String(),
	}).Counter("calls").Inc(1)
}

func (m *metrics) tableSize(n int) {
	m.resources.Update(float64(n))
}

// authLogger reports rejected tokens without letting a misbehaving client
// flood the log.
type authLogger struct {
	logger     *zap.Logger
	limiter    *rate.Limiter
	suppressed atomic.Int64
}

func newAuthLogger(logger *zap.Logger) *authLogger {
	return &authLogger{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(_authLogInterval), _authLogBurst),
	}
}

func (l *authLogger) invalidToken(procedure string) {
	if !l.limiter.Allow() {
		l.suppressed.Inc()
		return
	}
	l.logger.Warn("rejected request with invalid token",
		zap.String("procedure", procedure),
		zap.Int64("suppressed", l.suppressed.Swap(0)),
	)
}

// startBackendSpan starts the span wrapping one backend call.
func startBackendSpan(ctx context.Context, tracer opentracing.Tracer, op, backend string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, tracer, "backend."+op)
	span.SetTag("backend", backend)
	return span, ctx
}

func finishBackendSpan(span opentracing.Span, id resource.ID, err error) {
	if !id.IsNil() {
		span.SetTag("resource.id", id.String())
	}
	if err != nil {
		ext.Error.Set(span, true)
		span.SetTag("ret", yperrors.ErrorCode(err).String())
	}
	span.Finish()
}
