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

// Package admin is the client of the admin procedures served by providers:
// create, open, close, destroy, list and get_config.
package admin

import (
	"context"

	"github.com/ypservice/yp/protocol"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/yarpc/api/transport"
)

// Client administers the providers reachable through one set of outbounds.
//
// Errors returned by the client are *yperrors.Status values. Failures of the
// call itself, including calls to a provider id that is not registered, have
// CodeFromTransport; failures reported by the provider carry its code.
type Client struct {
	names   protocol.Names
	clients *protocol.Clients
}

// New builds a Client for the resource family with the given names.
func New(cc transport.ClientConfig, names protocol.Names) *Client {
	return &Client{
		names:   names,
		clients: protocol.NewClients(cc, names),
	}
}

// Create asks a provider to create a resource with the named backend and
// returns its id.
func (c *Client) Create(ctx context.Context, providerID uint16, token, backend, config string) (resource.ID, error) {
	return c.createOrOpen(ctx, c.names.Create(), providerID, token, backend, config)
}

// Open asks a provider to open a resource with the named backend and
// returns its id.
func (c *Client) Open(ctx context.Context, providerID uint16, token, backend, config string) (resource.ID, error) {
	return c.createOrOpen(ctx, c.names.Open(), providerID, token, backend, config)
}

// Close asks a provider to close a resource.
func (c *Client) Close(ctx context.Context, providerID uint16, token string, id resource.ID) error {
	return c.release(ctx, c.names.Close(), providerID, token, id)
}

// Destroy asks a provider to destroy a resource.
func (c *Client) Destroy(ctx context.Context, providerID uint16, token string, id resource.ID) error {
	return c.release(ctx, c.names.Destroy(), providerID, token, id)
}

// List returns up to max ids of the resources held by a provider.
func (c *Client) List(ctx context.Context, providerID uint16, token string, max uint64) ([]resource.ID, error) {
	var res protocol.ListResponse
	procedure := c.names.List()
	req := &protocol.ListRequest{Token: token, MaxIDs: max}
	if err := c.clients.Get(providerID).Call(ctx, procedure, req, &res); err != nil {
		return nil, yperrors.FromTransport(err)
	}
	if err := yperrors.FromRet(res.Ret, procedure); err != nil {
		return nil, err
	}
	if uint64(len(res.IDs)) < res.Count {
		return nil, yperrors.FromTransport(yperrors.OtherErrorf("%s returned %d ids, expected %d", procedure, len(res.IDs), res.Count))
	}
	return res.IDs[:res.Count], nil
}

// Config returns the configuration of a provider, with the id of every
// resource it holds.
func (c *Client) Config(ctx context.Context, providerID uint16, token string) (string, error) {
	var res protocol.GetConfigResponse
	req := &protocol.GetConfigRequest{Token: token}
	if err := c.clients.Get(providerID).Call(ctx, protocol.GetConfig, req, &res); err != nil {
		return "", yperrors.FromTransport(err)
	}
	if err := yperrors.FromRet(res.Ret, protocol.GetConfig); err != nil {
		return "", err
	}
	return res.Config, nil
}

func (c *Client) createOrOpen(ctx context.Context, procedure string, providerID uint16, token, backend, config string) (resource.ID, error) {
	var res protocol.CreateResponse
	req := &protocol.CreateRequest{Type: backend, Config: config, Token: token}
	if err := c.clients.Get(providerID).Call(ctx, procedure, req, &res); err != nil {
		return resource.Nil, yperrors.FromTransport(err)
	}
	if err := yperrors.FromRet(res.Ret, procedure); err != nil {
		return resource.Nil, err
	}
	return res.ID, nil
}

func (c *Client) release(ctx context.Context, procedure string, providerID uint16, token string, id resource.ID) error {
	var res protocol.ResourceResponse
	req := &protocol.ResourceRequest{Token: token, ID: id}
	if err := c.clients.Get(providerID).Call(ctx, procedure, req, &res); err != nil {
		return yperrors.FromTransport(err)
	}
	return yperrors.FromRet(res.Ret, procedure)
}
