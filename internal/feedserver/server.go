package feedserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/internal/feed"
	"github.com/ifkeeper/keeper-commons-utils/internal/feedserver/options"
	"github.com/ifkeeper/keeper-commons-utils/internal/pkg/middleware"
	"github.com/ifkeeper/keeper-commons-utils/log"
	"github.com/ifkeeper/keeper-commons-utils/pkg/db"
	"github.com/ifkeeper/keeper-commons-utils/pkg/storage"
)

const (
	redisPingAttempts = 3
	redisPingInterval = time.Second
	monitorInterval   = 5 * time.Second
)

type apiServer struct {
	opts    *options.Options
	engine  *gin.Engine
	srv     *feed.Service
	monitor *storage.Monitor
	limiter *middleware.IPRateLimiter

	db    *gorm.DB
	redis redis.UniversalClient
}

// createAPIServer 连接 MySQL、redis 和 kafka 并组装 feed.Service.
func createAPIServer(ctx context.Context, opts *options.Options) (*apiServer, error) {
	gdb, err := opts.MySQLOptions.NewClient()
	if err != nil {
		return nil, err
	}
	store := feed.NewStore(gdb)
	if err := store.Migrate(); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	log.Info("mysql is ready")

	client := opts.RedisOptions.NewClient()
	if err := storage.Ping(ctx, client, redisPingAttempts, redisPingInterval); err != nil {
		_ = client.Close()
		_ = db.Close(gdb)
		return nil, err
	}
	log.Info("redis is ready")

	gen, err := opts.FeedOptions.NewGenerator()
	if err != nil {
		_ = client.Close()
		_ = db.Close(gdb)
		return nil, err
	}

	pub := opts.KafkaOptions.NewPublisher()
	if opts.KafkaOptions.Enabled() {
		log.Infof("publishing post events to kafka topic %s", opts.KafkaOptions.Topic)
	}

	prefix := opts.RedisOptions.KeyPrefix
	srv := feed.NewService(gen,
		feed.NewSequenceAllocator(client, prefix),
		store,
		feed.NewWeekCache(client, prefix+"week:"),
		pub,
		feed.WithUserTagLength(opts.FeedOptions.UserTagLength),
	)

	s := newAPIServer(opts, srv, storage.NewMonitor(client, monitorInterval))
	s.db = gdb
	s.redis = client
	return s, nil
}

func newAPIServer(opts *options.Options, srv *feed.Service, monitor *storage.Monitor) *apiServer {
	gin.SetMode(opts.ServerRunOptions.Mode)

	s := &apiServer{
		opts:    opts,
		engine:  gin.New(),
		srv:     srv,
		monitor: monitor,
	}
	if opts.ServerRunOptions.RateLimit > 0 {
		s.limiter = middleware.NewIPRateLimiter(opts.ServerRunOptions.RateLimit, opts.ServerRunOptions.RateBurst)
	}
	s.installMiddlewares()
	s.installRoutes()
	return s
}

// Run 阻塞直到 ctx 结束或 HTTP 服务出错，然后优雅退出.
func (s *apiServer) Run(ctx context.Context) error {
	address := s.opts.InsecureServingOptions.Address()
	server := &http.Server{
		Addr:              address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          log.StdErrLogger(),
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Infof("start to listening the incoming requests on http address: %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "serve %s", address)
		}
		log.Infof("server on %s stopped", address)
		return nil
	})

	if s.monitor != nil {
		eg.Go(func() error {
			s.monitor.Run(ctx)
			return nil
		})
	}

	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ServerRunOptions.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down the server ...")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown server")
		}
		return nil
	})

	err := eg.Wait()
	s.close()
	return err
}

func (s *apiServer) close() {
	if err := s.srv.Close(); err != nil {
		log.Warnf("close publisher: %v", err)
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Warnf("close redis: %v", err)
		}
	}
	if s.db != nil {
		if err := db.Close(s.db); err != nil {
			log.Warnf("close mysql: %v", err)
		}
	}
	log.Flush()
}
