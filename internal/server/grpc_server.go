package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/oggyb/gym-buddy/internal/config"
	"github.com/oggyb/gym-buddy/internal/metrics"
)

// NewGRPCServer builds a gRPC server with the logging/metrics interceptor
// and registers all provided services.
func NewGRPCServer(log *slog.Logger, registrars ...Registrar) *grpc.Server {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryInterceptor(log)))

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	// enable reflection for easier debugging with grpcurl
	reflection.Register(grpcServer)
	return grpcServer
}

// StartGRPCServer boots a gRPC server and registers all provided services.
// It returns once ctx is done and in-flight calls have finished.
func StartGRPCServer(ctx context.Context, cfg *config.Config, log *slog.Logger, registrars ...Registrar) error {
	addr := fmt.Sprintf("%s:%s", cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, lis, NewGRPCServer(log, registrars...), log)
}

// Serve runs grpcServer on lis until ctx is done, then stops it gracefully.
func Serve(ctx context.Context, lis net.Listener, grpcServer *grpc.Server, log *slog.Logger) error {
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.Info("stopping gRPC server", "reason", ctx.Err())
			grpcServer.GracefulStop()
		case <-stopped:
		}
	}()
	defer close(stopped)

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// UnaryInterceptor logs every call and records its duration.
func UnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)
		code := status.Code(err)

		metrics.ObserveRPC(info.FullMethod, code.String(), elapsed)
		if err != nil {
			log.Warn("rpc failed", "method", info.FullMethod, "code", code.String(), "duration", elapsed, "err", err)
		} else {
			log.Debug("rpc done", "method", info.FullMethod, "duration", elapsed)
		}
		return resp, err
	}
}

// StartMetricsServer serves /metrics on addr until ctx is done.
func StartMetricsServer(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting metrics server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
