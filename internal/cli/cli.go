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

// Package cli holds the pieces shared by the command line tools.
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ypservice/yp/internal/requestlog"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/api/transport"
	"go.uber.org/yarpc/transport/grpc"
	"go.uber.org/yarpc/transport/http"
	"go.uber.org/yarpc/transport/tchannel"
	"go.uber.org/zap"
)

// Outbound is the address of a server and the transport used to reach it.
type Outbound struct {
	Transport string
	Address   string
}

// RegisterFlags adds -transport and -address to fs.
func (o *Outbound) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Transport, "transport", "http", "transport to use (http/tchannel/grpc)")
	fs.StringVar(&o.Address, "address", "127.0.0.1:8080", "host:port of the server")
}

// NewDispatcher builds a client-only dispatcher named caller with a single
// outbound for service. Only the http transport supports oneway calls.
func NewDispatcher(caller, service string, o Outbound, logger *zap.Logger) (*yarpc.Dispatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var outbounds transport.Outbounds
	switch strings.ToLower(o.Transport) {
	case "http":
		out := http.NewTransport().NewSingleOutbound("http://" + o.Address)
		outbounds = transport.Outbounds{Unary: out, Oneway: out}
	case "tchannel":
		t, err := tchannel.NewTransport(tchannel.ServiceName(caller))
		if err != nil {
			return nil, err
		}
		outbounds = transport.Outbounds{Unary: t.NewSingleOutbound(o.Address)}
	case "grpc":
		outbounds = transport.Outbounds{Unary: grpc.NewTransport().NewSingleOutbound(o.Address)}
	default:
		return nil, fmt.Errorf("invalid transport: %q", o.Transport)
	}

	return yarpc.NewDispatcher(yarpc.Config{
		Name:      caller,
		Outbounds: yarpc.Outbounds{service: outbounds},
		OutboundMiddleware: yarpc.OutboundMiddleware{
			Unary: requestlog.NewOutbound(logger),
		},
		Logging: yarpc.LoggingConfig{Zap: logger},
	}), nil
}
