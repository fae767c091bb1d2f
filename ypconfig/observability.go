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

package ypconfig

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	promreporter "github.com/uber-go/tally/prometheus"
	"github.com/uber/jaeger-client-go"
	jaegerzap "github.com/uber/jaeger-client-go/log/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const _defaultReportInterval = time.Second

// LoggingConfig configures the server logger.
type LoggingConfig struct {
	// Level is a zap level name. Defaults to info.
	Level string `config:"level"`
	// Development selects zap's development defaults: console output and
	// stack traces on warnings.
	Development bool `config:"development"`
	// Encoding is "json" or "console". Defaults to the preset's choice.
	Encoding string `config:"encoding"`
}

func (c LoggingConfig) level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return lvl, fmt.Errorf("invalid logging level %q: %v", c.Level, err)
	}
	return lvl, nil
}

// Build builds the logger.
func (c LoggingConfig) Build(opts ...zap.Option) (*zap.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if c.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if c.Encoding != "" {
		cfg.Encoding = c.Encoding
	}
	return cfg.Build(opts...)
}

// MetricsConfig configures the metrics scope shared by the dispatcher and
// the providers.
type MetricsConfig struct {
	Prefix string `config:"prefix"`
	// Address, when set, is where Prometheus scrapes the metrics.
	Address string `config:"address"`
	// Interval between reports. Defaults to one second.
	Interval time.Duration `config:"interval"`
}

// Metrics is a built metrics scope.
type Metrics struct {
	Scope  tally.Scope
	Closer io.Closer
	// Handler serves the metrics in the Prometheus format. Nil unless an
	// address was configured.
	Handler http.Handler
}

// Build builds the root scope. Metrics that Prometheus refuses are reported
// to logger and dropped.
func (c MetricsConfig) Build(logger *zap.Logger) Metrics {
	interval := c.Interval
	if interval <= 0 {
		interval = _defaultReportInterval
	}

	if c.Address == "" {
		scope, closer := tally.NewRootScope(tally.ScopeOptions{Prefix: c.Prefix}, interval)
		return Metrics{Scope: scope, Closer: closer}
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := promreporter.NewReporter(promreporter.Options{
		OnRegisterError: func(err error) {
			logger.Warn("could not export metric to Prometheus", zap.Error(err))
		},
	})
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         c.Prefix,
		CachedReporter: reporter,
		Separator:      promreporter.DefaultSeparator,
	}, interval)
	return Metrics{Scope: scope, Closer: closer, Handler: reporter.HTTPHandler()}
}

// TracingConfig configures the Jaeger tracer.
type TracingConfig struct {
	Enabled bool `config:"enabled"`
	// Agent is the host:port of the Jaeger agent. Without it, finished
	// spans are only logged.
	Agent string `config:"agent"`
}

// Build builds the tracer. A disabled tracer is a no-op.
func (c TracingConfig) Build(service string, logger *zap.Logger) (opentracing.Tracer, io.Closer, error) {
	if !c.Enabled {
		return opentracing.NoopTracer{}, nopCloser{}, nil
	}

	var reporter jaeger.Reporter
	if c.Agent == "" {
		reporter = jaeger.NewLoggingReporter(jaegerzap.NewLogger(logger))
	} else {
		transport, err := jaeger.NewUDPTransport(c.Agent, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("could not reach jaeger agent %q: %v", c.Agent, err)
		}
		reporter = jaeger.NewRemoteReporter(transport)
	}

	tracer, closer := jaeger.NewTracer(service, jaeger.NewConstSampler(true), reporter)
	return tracer, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
