package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/config"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/identity"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/matcher"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/metrics"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/network"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/ratelimit"
	"github.com/atomyze-foundation/hlf-query-gateway/service/gateway"
	srvMw "github.com/atomyze-foundation/hlf-query-gateway/service/gateway/middleware"
	"github.com/atomyze-foundation/hlf-query-gateway/service/query"
	"github.com/felixge/httpsnoop"
	"github.com/flowchartsman/swaggerui"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var AppInfoVer string

var confFlag = flag.String("config", "config.yaml", "path to configuration file")

const adminUser = "admin"

func main() {
	flag.Parse()

	ctx := context.Background()

	conf, err := config.Load(*confFlag)
	if err != nil {
		fmt.Println("load config:", err)
		os.Exit(1)
	}
	if err = conf.Validate(); err != nil {
		fmt.Println("invalid config:", err)
		os.Exit(1)
	}
	// initialize logger
	lc := zap.NewProductionConfig()
	if err = lc.Level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		fmt.Println("parse log level:", err)
		os.Exit(1)
	}
	logger, err := lc.Build()
	if err != nil {
		fmt.Println("init logger:", err)
		os.Exit(1)
	}

	logger.Info("app version", zap.String("version", AppInfoVer))
	if conf.AccessToken == "" {
		logger.Warn("access token is not set, authentication is disabled")
	}
	// create host matcher for local development
	match := matcher.NewMatcher(conf.HostMatcher)
	// load organization identities and peers
	registry := identity.NewRegistry(logger)
	orgs, err := loadOrganizations(logger, conf, registry, match)
	if err != nil {
		logger.Fatal("organizations load failed", zap.Error(err))
	}

	prom, err := metrics.NewPrometheus()
	if err != nil {
		logger.Fatal("metrics init failed", zap.Error(err))
	}
	// create query service instance
	qSrv := query.NewService(logger.Named("query"), registry, network.NewProvider(logger.Named("network"), orgs...), query.WithRecorder(prom))
	gw := gateway.New(logger.Named("gateway"), qSrv,
		gateway.WithLimiter(ratelimit.New(conf.RateLimit.RPS, conf.RateLimit.Burst, conf.RateLimit.IdleTTL)),
		gateway.WithTimeout(conf.QueryTimeout),
	)
	// listen and server http and grpc servers
	err = listen(ctx, logger, conf, gw, prom.Handler())
	for _, org := range orgs {
		logger.Info("waiting for peer pool close", zap.String("org", org.Name))
		err = multierr.Append(err, org.Pool.Close())
	}
	if err != nil {
		logger.Error("server returned error", zap.Error(err))
		os.Exit(1)
	}
}

// loadOrganizations registers organization users and creates peer pools.
func loadOrganizations(logger *zap.Logger, conf *config.Config, registry *identity.Registry, match *matcher.Matcher) ([]*network.Organization, error) {
	orgs := make([]*network.Organization, 0, len(conf.Organizations))
	for name, o := range conf.Organizations {
		// read credentials for mutual tls
		tlsCreds, err := o.TLS.TLSConfig()
		if err != nil {
			return nil, fmt.Errorf("organization %s: tls creds load: %w", name, err)
		}
		rootCAs, err := o.TLS.RootCertificates()
		if err != nil {
			return nil, fmt.Errorf("organization %s: tls ca load: %w", name, err)
		}
		// load signing identities
		admin, err := o.Admin.Load(logger, o.MspID)
		if err != nil {
			return nil, fmt.Errorf("organization %s: admin identity load: %w", name, err)
		}
		if _, ok := o.Users[adminUser]; !ok {
			registry.Register(name, o.MspID, adminUser, admin)
		}
		for username, u := range o.Users {
			signer, err := u.Load(logger, o.MspID)
			if err != nil {
				return nil, fmt.Errorf("organization %s: user %s identity load: %w", name, username, err)
			}
			registry.Register(name, o.MspID, username, signer)
		}
		// create local peers instances
		peers := make([]*peer.Peer, 0, len(o.Peers))
		for _, peerName := range o.PeerNames() {
			p, err := o.Peers[peerName].Load(peerName, o.MspID, config.ClientCertificate(tlsCreds))
			if err != nil {
				return nil, fmt.Errorf("organization %s: %w", name, err)
			}
			peers = append(peers, p)
		}

		orgs = append(orgs, &network.Organization{
			Name:            name,
			MspID:           o.MspID,
			Admin:           admin,
			Peers:           peers,
			Pool:            peer.NewGrpcPool(logger.With(zap.String("org", name)), tlsCreds, match, rootCAs...),
			LegacyLifecycle: o.LegacyLifecycle,
		})
	}
	return orgs, nil
}

func listen(ctx context.Context, logger *zap.Logger, conf *config.Config, gw *gateway.Gateway, metricsHandler http.Handler) error { //nolint:funlen
	lis, err := net.Listen("tcp", conf.Listen.GRPC)
	if err != nil {
		logger.Fatal("bind grpc port failed", zap.Error(err), zap.String("port", conf.Listen.GRPC))
	}

	grpcServer := new(grpc.Server)
	httpServer := new(http.Server)

	// create new context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// listen system interrupt signals
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// start err group with servers
	g, ctx := errgroup.WithContext(ctx)

	// start grpc server
	g.Go(func() error {
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(srvMw.AuthenticationInterceptor(conf.AccessToken)))
		grpc_health_v1.RegisterHealthServer(grpcServer, health.NewServer())
		logger.Info("grpc listen", zap.String("port", conf.Listen.GRPC))
		return grpcServer.Serve(lis)
	})

	// start http server
	g.Go(func() error {
		conn, err := grpc.DialContext(ctx, conf.Listen.GRPC, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
		if err != nil {
			return fmt.Errorf("grpc dial: %w", err)
		}

		mux := runtime.NewServeMux(srvMw.ErrorHandler(logger), runtime.WithHealthEndpointAt(grpc_health_v1.NewHealthClient(conn), "/v1/healthz"))
		if err = gw.Register(mux); err != nil {
			return fmt.Errorf("register gateway: %w", err)
		}

		h := srvMw.Authentication(logger, conf.AccessToken, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasPrefix(r.URL.Path, "/v1"):
				mux.ServeHTTP(w, r)
			case r.URL.Path == "/metrics":
				metricsHandler.ServeHTTP(w, r)
			default:
				swaggerui.Handler(gateway.SwaggerJSON).ServeHTTP(w, r)
			}
		}))

		httpServer = &http.Server{
			ReadHeaderTimeout: time.Second,
			Addr:              conf.Listen.HTTP,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				m := httpsnoop.CaptureMetrics(h, w, r)
				logger.Named("http").Info("request",
					zap.String("ip", r.RemoteAddr),
					zap.String("path", r.RequestURI),
					zap.Duration("duration", m.Duration),
					zap.Int("code", m.Code),
					zap.Int64("bytes", m.Written),
				)
			}),
		}
		logger.Info("http listen", zap.String("port", conf.Listen.HTTP))
		if err = httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// block until context cancellation or interrupt signal
	select {
	case <-interrupt:
		break
	case <-ctx.Done():
		break
	}

	logger.Info("received shutdown signal")
	cancel()

	if err = httpServer.Shutdown(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("http server shutdown", zap.Error(err))
		}
	}
	grpcServer.GracefulStop()

	if err = g.Wait(); err != nil {
		return fmt.Errorf("wait error: %w", err)
	}

	return nil
}
