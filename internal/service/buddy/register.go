package buddy

import (
	"google.golang.org/grpc"

	"github.com/oggyb/gym-buddy/internal/app"
)

// Registrar ties the buddy service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the buddy service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the buddy service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	RegisterBuddyServiceServer(s, NewBuddyService(r.appCtx))
}
