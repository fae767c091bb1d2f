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

	"github.com/ypservice/yp/protocol"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yperrors"
	"go.uber.org/yarpc/api/transport"
	"go.uber.org/yarpc/encoding/json"
)

// Result splits the error of a provider operation into the "ret" field of
// the response and the error returned to YARPC. Application failures go in
// ret; anything else fails the call itself.
func Result(err error) (int32, error) {
	if err != nil && !yperrors.IsStatus(err) {
		return 0, err
	}
	return int32(yperrors.ErrorCode(err)), nil
}

type handler[R resource.Resource] struct {
	p *Provider[R]
}

func (p *Provider[R]) procedures() []transport.Procedure {
	h := handler[R]{p: p}
	methods := []struct {
		Name      string
		Handler   interface{}
		Signature string
	}{
		{p.names.Create(), h.create, `{"type": "...", "config": "...", "token": "..."} -> {"ret": 0, "id": "..."}`},
		{p.names.Open(), h.open, `{"type": "...", "config": "...", "token": "..."} -> {"ret": 0, "id": "..."}`},
		{p.names.Close(), h.close, `{"token": "...", "id": "..."} -> {"ret": 0}`},
		{p.names.Destroy(), h.destroy, `{"token": "...", "id": "..."} -> {"ret": 0}`},
		{p.names.List(), h.list, `{"token": "...", "max_ids": 0} -> {"ret": 0, "count": 0, "ids": ["..."]}`},
		{protocol.GetConfig, h.getConfig, `{"token": "..."} -> {"ret": 0, "config": "..."}`},
	}
	var r []transport.Procedure
	for _, m := range methods {
		proc := json.Procedure(m.Name, m.Handler)[0]
		proc.Signature = m.Signature
		r = append(r, proc)
	}
	return r
}

func (h handler[R]) create(ctx context.Context, req *protocol.CreateRequest) (*protocol.CreateResponse, error) {
	id, err := h.p.CreateResource(ctx, req.Token, req.Type, req.Config)
	h.p.RecordCall(h.p.names.Create(), err)
	ret, err := Result(err)
	if err != nil {
		return nil, err
	}
	return &protocol.CreateResponse{Ret: ret, ID: id}, nil
}

func (h handler[R]) open(ctx context.Context, req *protocol.CreateRequest) (*protocol.CreateResponse, error) {
	id, err := h.p.OpenResource(ctx, req.Token, req.Type, req.Config)
	h.p.RecordCall(h.p.names.Open(), err)
	ret, err := Result(err)
	if err != nil {
		return nil, err
	}
	return &protocol.CreateResponse{Ret: ret, ID: id}, nil
}

func (h handler[R]) close(ctx context.Context, req *protocol.ResourceRequest) (*protocol.ResourceResponse, error) {
	err := h.p.CloseResource(ctx, req.Token, req.ID)
	h.p.RecordCall(h.p.names.Close(), err)
	ret, err := Result(err)
	if err != nil {
		return nil, err
	}
	return &protocol.ResourceResponse{Ret: ret}, nil
}

func (h handler[R]) destroy(ctx context.Context, req *protocol.ResourceRequest) (*protocol.ResourceResponse, error) {
	err := h.p.DestroyResource(ctx, req.Token, req.ID)
	h.p.RecordCall(h.p.names.Destroy(), err)
	ret, err := Result(err)
	if err != nil {
		return nil, err
	}
	return &protocol.ResourceResponse{Ret: ret}, nil
}

func (h handler[R]) list(ctx context.Context, req *protocol.ListRequest) (*protocol.ListResponse, error) {
	ids, err := h.p.ListResources(ctx, req.Token, req.MaxIDs)
	h.p.RecordCall(h.p.names.List(), err)
	ret, err := Result(err)
	if err != nil {
		return nil, err
	}
	return &protocol.ListResponse{Ret: ret, Count: uint64(len(ids)), IDs: ids}, nil
}

func (h handler[R]) getConfig(ctx context.Context, req *protocol.GetConfigRequest) (*protocol.GetConfigResponse, error) {
	config, err := h.p.GetConfig(ctx, req.Token)
	h.p.RecordCall(protocol.GetConfig, err)
	ret, err := Result(err)
	if err != nil {
		return nil, err
	}
	return &protocol.GetConfigResponse{Ret: ret, Config: config}, nil
}
