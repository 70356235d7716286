package cropv1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ProtoFile is the registered descriptor path of the service
const ProtoFile = "crop/v1/crop.proto"

var fileDescriptor protoreflect.FileDescriptor

// File returns the descriptor registered for ProtoFile
func File() protoreflect.FileDescriptor { return fileDescriptor }

func init() {
	method := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(in),
			OutputType: proto.String(out),
		}
	}
	const (
		structType = ".google.protobuf.Struct"
		emptyType  = ".google.protobuf.Empty"
		stringType = ".google.protobuf.StringValue"
	)

	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(ProtoFile),
		Package: proto.String("crop.v1"),
		Syntax:  proto.String("proto3"),
		Dependency: []string{
			"google/protobuf/empty.proto",
			"google/protobuf/struct.proto",
			"google/protobuf/wrappers.proto",
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("CropService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Recommend", structType, structType),
				method("OptimalConditions", stringType, structType),
				method("RecordReading", structType, structType),
				method("RecommendCurrent", emptyType, structType),
				method("ListCrops", emptyType, structType),
			},
		}},
	}

	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("cropv1: build descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("cropv1: register descriptor: %v", err))
	}
	fileDescriptor = fd
}
