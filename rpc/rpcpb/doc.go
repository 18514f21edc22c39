// Package rpcpb holds the protobuf messages the rpc package frames calls with.
package rpcpb

//go:generate protoc --go_out=. --go_opt=paths=source_relative rpc.proto
