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

package yp_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ypservice/yp/resource"
	"github.com/ypservice/yp/yp"
	"github.com/ypservice/yp/yperrors"
	"github.com/ypservice/yp/yptest"
	"go.uber.org/yarpc"
	"go.uber.org/yarpc/transport/http"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	_providerID = 42
	_token      = "ABCDEFGH"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// newDummy starts a server and creates a dummy phonebook on it.
func newDummy(t *testing.T) (*yptest.Server, *yp.Client, resource.ID) {
	server := yptest.NewServer(t, yptest.ServerConfig{
		Providers: []yp.ProviderConfig{{ID: _providerID, Token: _token}},
	})
	cc := yptest.NewClientConfig(t, server.Addr)
	id, err := yp.NewAdmin(cc).Create(testContext(t), _providerID, _token, "dummy", `{ "foo" : "bar" }`)
	require.NoError(t, err)
	return server, yp.NewClient(cc), id
}

func TestSum(t *testing.T) {
	_, client, id := newDummy(t)
	ctx := testContext(t)

	pb := client.Handle(_providerID, id)
	assert.Equal(t, id, pb.ID())
	assert.Equal(t, uint16(_providerID), pb.ProviderID())

	result, err := pb.Sum(ctx, 45, 55)
	require.NoError(t, err)
	assert.Equal(t, int32(100), result)

	result, err = pb.Sum(ctx, math.MaxInt32, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), result, "sum wraps around")
}

func TestSumUnknownPhonebook(t *testing.T) {
	_, client, _ := newDummy(t)

	missing, err := resource.NewID()
	require.NoError(t, err)

	_, err = client.Handle(_providerID, missing).Sum(testContext(t), 1, 2)
	assert.Equal(t, yperrors.CodeInvalidResource, yperrors.ErrorCode(err))
}

func TestWrongProvider(t *testing.T) {
	_, client, id := newDummy(t)
	ctx := testContext(t)

	pb := client.Handle(_providerID+1, id)

	_, err := pb.Sum(ctx, 45, 55)
	assert.Equal(t, yperrors.CodeFromTransport, yperrors.ErrorCode(err))

	err = pb.Hello(ctx)
	assert.Equal(t, yperrors.CodeFromTransport, yperrors.ErrorCode(err))
}

func TestDestroyedProvider(t *testing.T) {
	server, client, id := newDummy(t)
	ctx := testContext(t)

	require.NoError(t, server.Provider(_providerID).Destroy(ctx))

	_, err := client.Handle(_providerID, id).Sum(ctx, 45, 55)
	assert.Equal(t, yperrors.CodeFromTransport, yperrors.ErrorCode(err))
}

func TestHello(t *testing.T) {
	mockCtrl := gomock.NewController(t)

	done := make(chan struct{})
	phonebook := yptest.NewMockPhonebook(mockCtrl)
	phonebook.EXPECT().Hello(gomock.Any()).Do(func(context.Context) { close(done) })
	phonebook.EXPECT().Close(gomock.Any()).Return(nil)

	backend := yptest.NewMockBackend(mockCtrl)
	backend.EXPECT().Name().Return("mock").AnyTimes()
	backend.EXPECT().Create(gomock.Any(), gomock.Any()).Return(phonebook, nil)

	server := yptest.NewServer(t, yptest.ServerConfig{
		Providers: []yp.ProviderConfig{{ID: _providerID, Backends: []yp.Backend{backend}}},
	})
	cc := yptest.NewClientConfig(t, server.Addr)
	ctx := testContext(t)

	id, err := yp.NewAdmin(cc).Create(ctx, _providerID, "", "mock", `{}`)
	require.NoError(t, err)

	require.NoError(t, yp.NewClient(cc).Handle(_providerID, id).Hello(ctx))
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("hello never reached the phonebook")
	}
}

func TestHelloUnknownPhonebookIsDropped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	server := yptest.NewServer(t, yptest.ServerConfig{Logger: zap.New(core)})
	cc := yptest.NewClientConfig(t, server.Addr)

	missing, err := resource.NewID()
	require.NoError(t, err)

	require.NoError(t, yp.NewClient(cc).Handle(_providerID, missing).Hello(testContext(t)))
	require.Eventually(t, func() bool {
		return logs.FilterMessage("dropping hello for unknown phonebook").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHelloNeedsOnewayOutbound(t *testing.T) {
	server, _, id := newDummy(t)
	cc := yptest.NewClientConfig(t, server.Addr, yptest.UnaryOnly())

	err := yp.NewClient(cc).Handle(_providerID, id).Hello(testContext(t))
	assert.Equal(t, yperrors.CodeOpUnsupported, yperrors.ErrorCode(err))

	result, err := yp.NewClient(cc).Handle(_providerID, id).Sum(testContext(t), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(5), result)
}

func TestBackendFailureCode(t *testing.T) {
	mockCtrl := gomock.NewController(t)

	backend := yptest.NewMockBackend(mockCtrl)
	backend.EXPECT().Name().Return("mock").AnyTimes()
	backend.EXPECT().Open(gomock.Any(), gomock.Any()).
		Return(nil, yperrors.OpForbiddenErrorf("read-only"))

	server := yptest.NewServer(t, yptest.ServerConfig{
		Providers: []yp.ProviderConfig{{ID: _providerID, Backends: []yp.Backend{backend}}},
	})
	admin := yp.NewAdmin(yptest.NewClientConfig(t, server.Addr))

	_, err := admin.Open(testContext(t), _providerID, "", "mock", `{}`)
	assert.Equal(t, yperrors.CodeOpForbidden, yperrors.ErrorCode(err))
}

func TestRegisterSameProviderTwice(t *testing.T) {
	d := yarpc.NewDispatcher(yarpc.Config{
		Name:     "yp",
		Inbounds: yarpc.Inbounds{http.NewTransport().NewInbound("127.0.0.1:0")},
	})

	p, err := yp.Register(d, yp.ProviderConfig{ID: _providerID})
	require.NoError(t, err)
	assert.Equal(t, []string{yp.DummyBackendName}, p.Backends())

	_, err = yp.Register(d, yp.ProviderConfig{ID: _providerID})
	assert.Equal(t, yperrors.CodeInvalidProvider, yperrors.ErrorCode(err))

	_, err = yp.Register(d, yp.ProviderConfig{ID: _providerID + 1})
	assert.NoError(t, err)
}

func TestRegisterWithoutInbounds(t *testing.T) {
	d := yarpc.NewDispatcher(yarpc.Config{Name: "yp"})
	_, err := yp.Register(d, yp.ProviderConfig{ID: _providerID})
	assert.Equal(t, yperrors.CodeInvalidArgs, yperrors.ErrorCode(err))
}
