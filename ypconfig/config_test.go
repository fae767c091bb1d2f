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
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoadFromYAML(t *testing.T) {
	tests := []struct {
		desc    string
		give    string
		want    Config
		wantErr string
	}{
		{
			desc: "empty",
			give: "",
			want: Config{Name: "yp"},
		},
		{
			desc: "full",
			give: `
name: myyp
logging:
  level: debug
  development: true
metrics:
  prefix: yp
  address: ":9090"
  interval: 5s
tracing:
  enabled: true
  agent: localhost:6831
providers:
  - id: 42
    token: ABCDEFGH
    config:
      resources:
        - type: dummy
          config: {foo: bar}
  - id: 43
    config: '{"resources": []}'
  - id: 44
`,
			want: Config{
				Name:    "myyp",
				Logging: LoggingConfig{Level: "debug", Development: true},
				Metrics: MetricsConfig{Prefix: "yp", Address: ":9090", Interval: 5 * time.Second},
				Tracing: TracingConfig{Enabled: true, Agent: "localhost:6831"},
				Providers: []ProviderConfig{
					{ID: 42, Token: "ABCDEFGH", JSON: `{"resources":[{"config":{"foo":"bar"},"type":"dummy"}]}`},
					{ID: 43, JSON: `{"resources": []}`},
					{ID: 44},
				},
			},
		},
		{
			desc:    "not yaml",
			give:    "{{",
			wantErr: "could not parse YAML",
		},
		{
			desc: "duplicate provider",
			give: `
providers:
  - id: 1
  - id: 1
`,
			wantErr: "provider id 1 is configured more than once",
		},
		{
			desc: "provider id out of range",
			give: `
providers:
  - id: 70000
`,
			wantErr: "invalid provider at index 0: id 70000 is out of range",
		},
		{
			desc:    "bad level",
			give:    "logging: {level: loud}",
			wantErr: `invalid logging level "loud"`,
		},
		{
			desc:    "unknown transport",
			give:    "yarpc: {inbounds: {carrier-pigeon: {}}}",
			wantErr: "invalid yarpc configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg, err := New().LoadFromYAML(strings.NewReader(tt.give))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want.Name, cfg.Name)
			assert.Equal(t, tt.want.Name, cfg.Yarpc.Name)
			assert.Equal(t, tt.want.Logging, cfg.Logging)
			assert.Equal(t, tt.want.Metrics, cfg.Metrics)
			assert.Equal(t, tt.want.Tracing, cfg.Tracing)
			assert.Equal(t, tt.want.Providers, cfg.Providers)
		})
	}
}

func TestLoadInbounds(t *testing.T) {
	cfg, err := New().LoadFromYAML(strings.NewReader(`
yarpc:
  inbounds:
    http: {address: "127.0.0.1:0"}
  outbounds:
    yp:
      http: {url: "http://127.0.0.1:8080"}
`))
	require.NoError(t, err)
	assert.Len(t, cfg.Yarpc.Inbounds, 1)
	assert.Contains(t, cfg.Yarpc.Outbounds, "yp")
}

func TestLoggingBuild(t *testing.T) {
	logger, err := LoggingConfig{Level: "warn", Encoding: "console"}.Build()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = LoggingConfig{Level: "loud"}.Build()
	assert.Error(t, err)
}

func TestMetricsBuild(t *testing.T) {
	t.Run("no address", func(t *testing.T) {
		m := MetricsConfig{Prefix: "yp"}.Build(nil)
		defer m.Closer.Close()
		assert.Nil(t, m.Handler)
		m.Scope.Counter("calls").Inc(1)
	})

	t.Run("prometheus", func(t *testing.T) {
		m := MetricsConfig{Prefix: "yp", Address: ":0", Interval: 10 * time.Millisecond}.Build(zap.NewNop())
		defer m.Closer.Close()
		require.NotNil(t, m.Handler)

		m.Scope.Tagged(map[string]string{"service": "yp-42"}).Counter("calls").Inc(3)
		assert.Eventually(t, func() bool {
			rec := httptest.NewRecorder()
			m.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			return strings.Contains(rec.Body.String(), `yp_calls{service="yp-42"} 3`)
		}, time.Second, 10*time.Millisecond)
	})
}

func TestTracingBuild(t *testing.T) {
	tracer, closer, err := TracingConfig{}.Build("yp", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, opentracing.NoopTracer{}, tracer)
	assert.NoError(t, closer.Close())

	tracer, closer, err = TracingConfig{Enabled: true}.Build("yp", zap.NewNop())
	require.NoError(t, err)
	tracer.StartSpan("op").Finish()
	assert.NoError(t, closer.Close())
}
