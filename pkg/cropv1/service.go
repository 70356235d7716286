// Package cropv1 defines the crop.v1.CropService gRPC contract.
//
// Payloads use the protobuf well-known types: requests and responses are
// google.protobuf.Struct documents whose keys follow the JSON field names of
// the domain types (input_conditions, all_plants, top_recommendation, ...).
package cropv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "crop.v1.CropService"

// Full method names
const (
	CropService_Recommend_FullMethodName         = "/" + ServiceName + "/Recommend"
	CropService_OptimalConditions_FullMethodName = "/" + ServiceName + "/OptimalConditions"
	CropService_RecordReading_FullMethodName     = "/" + ServiceName + "/RecordReading"
	CropService_RecommendCurrent_FullMethodName  = "/" + ServiceName + "/RecommendCurrent"
	CropService_ListCrops_FullMethodName         = "/" + ServiceName + "/ListCrops"
)

// CropServiceClient is the client API for CropService
type CropServiceClient interface {
	// Recommend ranks crops for {ph, temperature, humidity}
	Recommend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	// OptimalConditions returns {ph_range, temperature_range, humidity_range} for a crop
	OptimalConditions(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	// RecordReading validates and stores {ph, temperature, humidity}
	RecordReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	// RecommendCurrent ranks crops for the latest stored reading
	RecommendCurrent(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	// ListCrops returns {crops: [...]} in catalog order
	ListCrops(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type cropServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCropServiceClient wraps a connection
func NewCropServiceClient(cc grpc.ClientConnInterface) CropServiceClient {
	return &cropServiceClient{cc}
}

func (c *cropServiceClient) Recommend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CropService_Recommend_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cropServiceClient) OptimalConditions(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CropService_OptimalConditions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cropServiceClient) RecordReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CropService_RecordReading_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cropServiceClient) RecommendCurrent(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CropService_RecommendCurrent_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cropServiceClient) ListCrops(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CropService_ListCrops_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CropServiceServer is the server API for CropService.
// Implementations should embed UnimplementedCropServiceServer.
type CropServiceServer interface {
	Recommend(context.Context, *structpb.Struct) (*structpb.Struct, error)
	OptimalConditions(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RecordReading(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecommendCurrent(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListCrops(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedCropServiceServer returns Unimplemented for every method
type UnimplementedCropServiceServer struct{}

func (UnimplementedCropServiceServer) Recommend(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Recommend not implemented")
}
func (UnimplementedCropServiceServer) OptimalConditions(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method OptimalConditions not implemented")
}
func (UnimplementedCropServiceServer) RecordReading(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RecordReading not implemented")
}
func (UnimplementedCropServiceServer) RecommendCurrent(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RecommendCurrent not implemented")
}
func (UnimplementedCropServiceServer) ListCrops(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCrops not implemented")
}

// RegisterCropServiceServer registers srv on s
func RegisterCropServiceServer(s grpc.ServiceRegistrar, srv CropServiceServer) {
	s.RegisterService(&CropService_ServiceDesc, srv)
}

// unary adapts a typed method to grpc's method handler signature.
func unary[Req any](method string, newReq func() Req, call func(CropServiceServer, context.Context, Req) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CropServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CropServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newStruct() *structpb.Struct { return new(structpb.Struct) }
func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }
func newStringValue() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }

// CropService_ServiceDesc is the grpc.ServiceDesc for CropService
var CropService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CropServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Recommend",
			Handler:    unary(CropService_Recommend_FullMethodName, newStruct, CropServiceServer.Recommend),
		},
		{
			MethodName: "OptimalConditions",
			Handler:    unary(CropService_OptimalConditions_FullMethodName, newStringValue, CropServiceServer.OptimalConditions),
		},
		{
			MethodName: "RecordReading",
			Handler:    unary(CropService_RecordReading_FullMethodName, newStruct, CropServiceServer.RecordReading),
		},
		{
			MethodName: "RecommendCurrent",
			Handler:    unary(CropService_RecommendCurrent_FullMethodName, newEmpty, CropServiceServer.RecommendCurrent),
		},
		{
			MethodName: "ListCrops",
			Handler:    unary(CropService_ListCrops_FullMethodName, newEmpty, CropServiceServer.ListCrops),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}
