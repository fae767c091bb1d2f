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

package protocol

import "github.com/ypservice/yp/resource"

// Every response carries Ret, the int32 value of a yperrors.Code. A non-zero
// Ret is an application failure; the RPC itself succeeded.

// CreateRequest is the body of the create and open procedures.
type CreateRequest struct {
	Type   string `json:"type"`
	Config string `json:"config"`
	Token  string `json:"token"`
}

// CreateResponse is the response of the create and open procedures.
type CreateResponse struct {
	Ret int32       `json:"ret"`
	ID  resource.ID `json:"id"`
}

// ResourceRequest is the body of the close and destroy procedures.
type ResourceRequest struct {
	Token string      `json:"token"`
	ID    resource.ID `json:"id"`
}

// ResourceResponse is the response of the close and destroy procedures.
type ResourceResponse struct {
	Ret int32 `json:"ret"`
}

// ListRequest is the body of the list procedure.
type ListRequest struct {
	Token  string `json:"token"`
	MaxIDs uint64 `json:"max_ids"`
}

// ListResponse is the response of the list procedure.
type ListResponse struct {
	Ret   int32         `json:"ret"`
	Count uint64        `json:"count"`
	IDs   []resource.ID `json:"ids"`
}

// GetConfigRequest is the body of the get_config procedure.
type GetConfigRequest struct {
	Token string `json:"token"`
}

// GetConfigResponse is the response of the get_config procedure.
type GetConfigResponse struct {
	Ret    int32  `json:"ret"`
	Config string `json:"config"`
}
