// Package apiconnect wires the splitit.v1.SplitService messages to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/splitit/splitit/pkg/api"
)

// SplitServiceName is the fully-qualified name of the SplitService service.
const SplitServiceName = "splitit.v1.SplitService"

// Fully-qualified procedure names, used as URL paths below the service mount.
const (
	SplitServiceCalculateSplitProcedure   = "/splitit.v1.SplitService/CalculateSplit"
	SplitServiceCreateBillProcedure       = "/splitit.v1.SplitService/CreateBill"
	SplitServiceGetBillProcedure          = "/splitit.v1.SplitService/GetBill"
	SplitServiceUpdateBillProcedure       = "/splitit.v1.SplitService/UpdateBill"
	SplitServiceDeleteBillProcedure       = "/splitit.v1.SplitService/DeleteBill"
	SplitServiceListBillsProcedure        = "/splitit.v1.SplitService/ListBills"
	SplitServiceToggleAssignmentProcedure = "/splitit.v1.SplitService/ToggleAssignment"
	SplitServiceShareBillProcedure        = "/splitit.v1.SplitService/ShareBill"
	SplitServiceGetSharedBillProcedure    = "/splitit.v1.SplitService/GetSharedBill"
	SplitServicePublishSummaryProcedure   = "/splitit.v1.SplitService/PublishSummary"
)

// SplitServiceClient is a client for the splitit.v1.SplitService service.
type SplitServiceClient interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	ToggleAssignment(context.Context, *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error)
	ShareBill(context.Context, *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error)
	GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error)
	PublishSummary(context.Context, *connect.Request[api.PublishSummaryRequest]) (*connect.Response[api.PublishSummaryResponse], error)
}

// NewSplitServiceClient constructs a client for the splitit.v1.SplitService
// service. The JSON codec is always installed; options may add interceptors.
//
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &splitServiceClient{
		calculateSplit: connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](
			httpClient, baseURL+SplitServiceCalculateSplitProcedure, opts...),
		createBill: connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](
			httpClient, baseURL+SplitServiceCreateBillProcedure, opts...),
		getBill: connect.NewClient[api.GetBillRequest, api.GetBillResponse](
			httpClient, baseURL+SplitServiceGetBillProcedure, opts...),
		updateBill: connect.NewClient[api.UpdateBillRequest, api.UpdateBillResponse](
			httpClient, baseURL+SplitServiceUpdateBillProcedure, opts...),
		deleteBill: connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](
			httpClient, baseURL+SplitServiceDeleteBillProcedure, opts...),
		listBills: connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](
			httpClient, baseURL+SplitServiceListBillsProcedure, opts...),
		toggleAssignment: connect.NewClient[api.ToggleAssignmentRequest, api.ToggleAssignmentResponse](
			httpClient, baseURL+SplitServiceToggleAssignmentProcedure, opts...),
		shareBill: connect.NewClient[api.ShareBillRequest, api.ShareBillResponse](
			httpClient, baseURL+SplitServiceShareBillProcedure, opts...),
		getSharedBill: connect.NewClient[api.GetSharedBillRequest, api.GetSharedBillResponse](
			httpClient, baseURL+SplitServiceGetSharedBillProcedure, opts...),
		publishSummary: connect.NewClient[api.PublishSummaryRequest, api.PublishSummaryResponse](
			httpClient, baseURL+SplitServicePublishSummaryProcedure, opts...),
	}
}

type splitServiceClient struct {
	calculateSplit   *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
	createBill       *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill          *connect.Client[api.GetBillRequest, api.GetBillResponse]
	updateBill       *connect.Client[api.UpdateBillRequest, api.UpdateBillResponse]
	deleteBill       *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	listBills        *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	toggleAssignment *connect.Client[api.ToggleAssignmentRequest, api.ToggleAssignmentResponse]
	shareBill        *connect.Client[api.ShareBillRequest, api.ShareBillResponse]
	getSharedBill    *connect.Client[api.GetSharedBillRequest, api.GetSharedBillResponse]
	publishSummary   *connect.Client[api.PublishSummaryRequest, api.PublishSummaryResponse]
}

func (c *splitServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *splitServiceClient) ToggleAssignment(ctx context.Context, req *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error) {
	return c.toggleAssignment.CallUnary(ctx, req)
}

func (c *splitServiceClient) ShareBill(ctx context.Context, req *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error) {
	return c.shareBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetSharedBill(ctx context.Context, req *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	return c.getSharedBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) PublishSummary(ctx context.Context, req *connect.Request[api.PublishSummaryRequest]) (*connect.Response[api.PublishSummaryResponse], error) {
	return c.publishSummary.CallUnary(ctx, req)
}

// SplitServiceHandler is an implementation of the splitit.v1.SplitService service.
type SplitServiceHandler interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	ToggleAssignment(context.Context, *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error)
	ShareBill(context.Context, *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error)
	GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error)
	PublishSummary(context.Context, *connect.Request[api.PublishSummaryRequest]) (*connect.Response[api.PublishSummaryResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SplitServiceCalculateSplitProcedure,
		connect.NewUnaryHandler(SplitServiceCalculateSplitProcedure, svc.CalculateSplit, opts...))
	mux.Handle(SplitServiceCreateBillProcedure,
		connect.NewUnaryHandler(SplitServiceCreateBillProcedure, svc.CreateBill, opts...))
	mux.Handle(SplitServiceGetBillProcedure,
		connect.NewUnaryHandler(SplitServiceGetBillProcedure, svc.GetBill, opts...))
	mux.Handle(SplitServiceUpdateBillProcedure,
		connect.NewUnaryHandler(SplitServiceUpdateBillProcedure, svc.UpdateBill, opts...))
	mux.Handle(SplitServiceDeleteBillProcedure,
		connect.NewUnaryHandler(SplitServiceDeleteBillProcedure, svc.DeleteBill, opts...))
	mux.Handle(SplitServiceListBillsProcedure,
		connect.NewUnaryHandler(SplitServiceListBillsProcedure, svc.ListBills, opts...))
	mux.Handle(SplitServiceToggleAssignmentProcedure,
		connect.NewUnaryHandler(SplitServiceToggleAssignmentProcedure, svc.ToggleAssignment, opts...))
	mux.Handle(SplitServiceShareBillProcedure,
		connect.NewUnaryHandler(SplitServiceShareBillProcedure, svc.ShareBill, opts...))
	mux.Handle(SplitServiceGetSharedBillProcedure,
		connect.NewUnaryHandler(SplitServiceGetSharedBillProcedure, svc.GetSharedBill, opts...))
	mux.Handle(SplitServicePublishSummaryProcedure,
		connect.NewUnaryHandler(SplitServicePublishSummaryProcedure, svc.PublishSummary, opts...))
	return "/" + SplitServiceName + "/", mux
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitServiceHandler struct{}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(strings.TrimPrefix(procedure, "/")+" is not implemented"))
}

func (UnimplementedSplitServiceHandler) CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return nil, unimplemented(SplitServiceCalculateSplitProcedure)
}

func (UnimplementedSplitServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, unimplemented(SplitServiceCreateBillProcedure)
}

func (UnimplementedSplitServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, unimplemented(SplitServiceGetBillProcedure)
}

func (UnimplementedSplitServiceHandler) UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return nil, unimplemented(SplitServiceUpdateBillProcedure)
}

func (UnimplementedSplitServiceHandler) DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return nil, unimplemented(SplitServiceDeleteBillProcedure)
}

func (UnimplementedSplitServiceHandler) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, unimplemented(SplitServiceListBillsProcedure)
}

func (UnimplementedSplitServiceHandler) ToggleAssignment(context.Context, *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error) {
	return nil, unimplemented(SplitServiceToggleAssignmentProcedure)
}

func (UnimplementedSplitServiceHandler) ShareBill(context.Context, *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error) {
	return nil, unimplemented(SplitServiceShareBillProcedure)
}

func (UnimplementedSplitServiceHandler) GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	return nil, unimplemented(SplitServiceGetSharedBillProcedure)
}

func (UnimplementedSplitServiceHandler) PublishSummary(context.Context, *connect.Request[api.PublishSummaryRequest]) (*connect.Response[api.PublishSummaryResponse], error) {
	return nil, unimplemented(SplitServicePublishSummaryProcedure)
}
