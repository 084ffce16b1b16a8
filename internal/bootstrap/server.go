package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/spacetravel/config"
	bookingsapi "github.com/Domenick1991/spacetravel/internal/api/bookings_service_api"
	"github.com/Domenick1991/spacetravel/internal/service/booking"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const shutdownTimeout = 5 * time.Second

type Servers struct {
	grpcServer  *grpc.Server
	httpServer  *http.Server
	gatewayConn *grpc.ClientConn
	log         *zap.Logger
}

// Run starts the gRPC server and the HTTP server (REST API, gRPC gateway and
// API docs) and blocks until ctx is cancelled or a server fails.
func Run(ctx context.Context, cfg *config.Config, router http.Handler, bookingSvc booking.BookingUseCase, log *zap.Logger) error {
	s, err := newServers(cfg, router, bookingSvc, log)
	if err != nil {
		return err
	}
	defer s.gatewayConn.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() {
		log.Info("gRPC server listening", zap.String("address", cfg.GRPC.Address))
		errCh <- s.grpcServer.Serve(lis)
	}()

	go func() {
		log.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		return err
	case <-ctx.Done():
		log.Info("Shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, router http.Handler, bookingSvc booking.BookingUseCase, log *zap.Logger) (*Servers, error) {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger(log)))
	bookingsapi.RegisterBookingsServiceServer(grpcSrv, bookingsapi.NewServer(bookingSvc))

	conn, err := grpc.NewClient(dialTarget(cfg.GRPC.Address), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC for gateway: %w", err)
	}

	gateway := runtime.NewServeMux()
	if err := bookingsapi.RegisterBookingsServiceHandler(context.Background(), gateway, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("register bookings gateway: %w", err)
	}

	handler := http.NewServeMux()
	handler.Handle("/v1/", gateway)
	handler.Handle("/", router)

	if cfg.HTTP.SwaggerDir != "" {
		fs := http.FileServer(http.Dir(cfg.HTTP.SwaggerDir))
		handler.Handle("/swagger/", http.StripPrefix("/swagger/", fs))
		handler.Handle("/docs/", httpSwagger.Handler(httpSwagger.URL("/swagger/spacetravel.swagger.json")))
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		gatewayConn: conn,
		log:         log,
	}, nil
}

// dialTarget turns a listen address such as ":9090" into something dialable.
func dialTarget(address string) string {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host != "" {
		return address
	}
	return net.JoinHostPort("localhost", port)
}

func unaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{zap.String("method", info.FullMethod), zap.Duration("duration", time.Since(start))}
		if err != nil {
			log.Warn("gRPC request failed", append(fields, zap.Error(err))...)
			return resp, err
		}
		log.Info("gRPC request", fields...)
		return resp, nil
	}
}
