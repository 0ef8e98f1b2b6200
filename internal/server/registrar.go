package server

import "google.golang.org/grpc"

// Registrar attaches one service implementation to the gRPC server.
// Each service package exposes its own (see buddy.NewRegistrar).
type Registrar interface {
	Register(s *grpc.Server)
}
