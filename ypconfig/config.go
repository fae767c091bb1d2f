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

// Package ypconfig loads the configuration of a phonebook server from YAML.
//
//	name: yp
//	yarpc:
//	  inbounds:
//	    http: {address: ":8080"}
//	logging:
//	  level: info
//	metrics:
//	  prefix: yp
//	  address: ":9090"
//	tracing:
//	  enabled: false
//	providers:
//	  - id: 42
//	    token: ABCDEFGH
//	    config:
//	      resources:
//	        - {type: dummy, config: {foo: bar}}
//
// The "yarpc" section is handed to yarpcconfig, which knows the http,
// tchannel and grpc transports. A provider's "config" may be written in
// YAML or as a string of JSON; providers receive it as JSON.
package ypconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math"

	"github.com/uber-go/mapdecode"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/transport/grpc"
	"go.uber.org/yarpc/transport/http"
	"go.uber.org/yarpc/transport/tchannel"
	"go.uber.org/yarpc/yarpcconfig"
	"gopkg.in/yaml.v2"
)

const (
	_tagName     = "config"
	_defaultName = "yp"
)

// Config is a loaded server configuration.
type Config struct {
	// Name of the dispatcher.
	Name string

	// Yarpc is ready to pass to yarpc.NewDispatcher, once the logger,
	// metrics scope and tracer are filled in.
	Yarpc yarpc.Config

	Logging   LoggingConfig
	Metrics   MetricsConfig
	Tracing   TracingConfig
	Providers []ProviderConfig
}

// ProviderConfig configures one provider.
type ProviderConfig struct {
	ID    uint16
	Token string
	// JSON is the provider configuration. Empty if none was given.
	JSON string
}

type file struct {
	Name      string          `config:"name"`
	Yarpc     interface{}     `config:"yarpc"`
	Logging   LoggingConfig   `config:"logging"`
	Metrics   MetricsConfig   `config:"metrics"`
	Tracing   TracingConfig   `config:"tracing"`
	Providers []providerEntry `config:"providers"`
}

type providerEntry struct {
	ID     int         `config:"id"`
	Token  string      `config:"token"`
	Config interface{} `config:"config"`
}

// Configurator loads configurations.
type Configurator struct {
	yarpc *yarpcconfig.Configurator
}

// New builds a Configurator that knows the http, tchannel and grpc
// transports.
func New() *Configurator {
	cfg := yarpcconfig.New()
	cfg.MustRegisterTransport(http.TransportSpec())
	cfg.MustRegisterTransport(tchannel.TransportSpec())
	cfg.MustRegisterTransport(grpc.TransportSpec())
	return &Configurator{yarpc: cfg}
}

// Yarpc returns the YARPC configurator, to register more transports or
// peer lists.
func (c *Configurator) Yarpc() *yarpcconfig.Configurator {
	return c.yarpc
}

// LoadFromYAML loads a Config from YAML.
func (c *Configurator) LoadFromYAML(r io.Reader) (Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Config{}, fmt.Errorf("could not parse YAML: %v", err)
	}
	return c.Load(data)
}

// Load loads a Config from a map[string]interface{} or
// map[interface{}]interface{}.
func (c *Configurator) Load(data interface{}) (Config, error) {
	var f file
	if err := mapdecode.Decode(&f, data, mapdecode.TagName(_tagName)); err != nil {
		return Config{}, fmt.Errorf("could not decode configuration: %v", err)
	}

	cfg := Config{
		Name:    f.Name,
		Logging: f.Logging,
		Metrics: f.Metrics,
		Tracing: f.Tracing,
	}
	if cfg.Name == "" {
		cfg.Name = _defaultName
	}

	yarpcData := f.Yarpc
	if yarpcData == nil {
		yarpcData = map[string]interface{}{}
	}
	yc, err := c.yarpc.LoadConfig(cfg.Name, yarpcData)
	if err != nil {
		return Config{}, fmt.Errorf("invalid yarpc configuration: %v", err)
	}
	cfg.Yarpc = yc

	if _, err := cfg.Logging.level(); err != nil {
		return Config{}, err
	}

	seen := make(map[uint16]struct{}, len(f.Providers))
	for i, entry := range f.Providers {
		p, err := entry.provider()
		if err != nil {
			return Config{}, fmt.Errorf("invalid provider at index %d: %v", i, err)
		}
		if _, ok := seen[p.ID]; ok {
			return Config{}, fmt.Errorf("provider id %d is configured more than once", p.ID)
		}
		seen[p.ID] = struct{}{}
		cfg.Providers = append(cfg.Providers, p)
	}
	return cfg, nil
}

func (e providerEntry) provider() (ProviderConfig, error) {
	if e.ID < 0 || e.ID > math.MaxUint16 {
		return ProviderConfig{}, fmt.Errorf("id %d is out of range [0, %d]", e.ID, math.MaxUint16)
	}
	p := ProviderConfig{ID: uint16(e.ID), Token: e.Token}

	switch config := e.Config.(type) {
	case nil:
	case string:
		p.JSON = config
	default:
		b, err := json.Marshal(jsonValue(config))
		if err != nil {
			return ProviderConfig{}, fmt.Errorf("config cannot be represented as JSON: %v", err)
		}
		p.JSON = string(b)
	}
	return p, nil
}

// jsonValue converts the maps produced by the YAML parser, which have
// interface{} keys, into maps encoding/json accepts.
func jsonValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = jsonValue(item)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, item := range v {
			m[k] = jsonValue(item)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(v))
		for i, item := range v {
			s[i] = jsonValue(item)
		}
		return s
	default:
		return v
	}
}
