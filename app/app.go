// Package app 负责启动装配：并发加载 schema / scaler / 模型 / 酒店目录，构建 HTTP 服务并优雅退出。
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tripkit/catalog"
	"github.com/rushteam/tripkit/config"
	_ "github.com/rushteam/tripkit/config/builders"
	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feature"
	"github.com/rushteam/tripkit/filter"
	"github.com/rushteam/tripkit/flight"
	"github.com/rushteam/tripkit/hotel"
	"github.com/rushteam/tripkit/model"
	"github.com/rushteam/tripkit/server"
	"github.com/rushteam/tripkit/service"
	"github.com/rushteam/tripkit/store"
)

// App 持有构建完成的组件，除 Run 外全部只读。
type App struct {
	Config    *config.AppConfig
	Logger    *slog.Logger
	Predictor *flight.Predictor
	Ranker    *hotel.Ranker
	Server    *server.Server

	closers []func(context.Context) error
}

// NewLogger 按级别创建 JSON 日志，未知级别回退到 info。
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// Build 并发加载所有只读依赖；任意一项失败则整体失败。
func Build(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg.Log.Level)
	}

	var (
		schema    *feature.Schema
		scaler    feature.FeatureScaler
		regressor model.Regressor
		hotels    *catalog.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := feature.LoadSchema(gctx, cfg.Flight.Schema, cfg.Flight.LoadTimeout)
		if err != nil {
			return fmt.Errorf("load feature schema: %w", err)
		}
		schema = s
		return nil
	})
	g.Go(func() error {
		s, err := feature.LoadScaler(gctx, cfg.Flight.Scaler, cfg.Flight.LoadTimeout)
		if err != nil {
			return fmt.Errorf("load feature scaler: %w", err)
		}
		scaler = s
		return nil
	})
	g.Go(func() error {
		m, err := openRegressor(cfg.Flight.Model)
		if err != nil {
			return fmt.Errorf("build flight model: %w", err)
		}
		regressor = m
		return nil
	})
	g.Go(func() error {
		c, err := openCatalog(gctx, cfg.Hotel.Catalog, logger)
		if err != nil {
			return err
		}
		hotels = c
		return nil
	})
	if err := g.Wait(); err != nil {
		if c, ok := regressor.(interface{ Close(context.Context) error }); ok {
			_ = c.Close(ctx)
		}
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger}
	if c, ok := regressor.(interface{ Close(context.Context) error }); ok {
		a.closers = append(a.closers, c.Close)
	}

	var sc flight.Scaler
	if scaler != nil {
		sc = scaler
	}
	a.Predictor = flight.NewPredictor(schema, sc, regressor,
		flight.WithStrictCategories(cfg.Flight.Strict),
		flight.WithLogger(logger),
	)

	ranker, err := newRanker(cfg.Hotel, hotels, logger)
	if err != nil {
		if cerr := a.Close(ctx); cerr != nil {
			logger.Warn("close after build failure", "error", cerr)
		}
		return nil, err
	}
	a.Ranker = ranker

	deps := server.Deps{
		Predictor:   a.Predictor,
		Schema:      schema,
		Hotels:      a.Ranker,
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	if hc, ok := regressor.(server.HealthChecker); ok {
		deps.Health = hc
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	a.Server = server.New(deps)

	logger.Info("app built",
		"schema_columns", schema.Len(),
		"schema_version", schema.ModelVersion,
		"scaler_columns", len(scaler),
		"model", regressor.Name(),
		"catalog_listings", hotels.Len(),
		"catalog_places", len(hotels.Places()),
		"strict_categories", cfg.Flight.Strict,
	)
	return a, nil
}

// openRegressor 在测试中可替换
var openRegressor = newRegressor

func newRegressor(cfg config.ModelConfig) (model.Regressor, error) {
	switch cfg.Type {
	case config.ModelLinear:
		m, err := model.LoadLinearModel(cfg.Path)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ModelRPC:
		name := cfg.Name
		if name == "" {
			name = "rpc"
		}
		return model.NewRPCModel(name, cfg.Endpoint, cfg.Timeout), nil
	case config.ModelKServe:
		svc, err := service.NewMLService(&cfg.KServe)
		if err != nil {
			return nil, err
		}
		return model.NewServiceModel(svc, cfg.KServe.ModelName), nil
	default:
		return nil, fmt.Errorf("unknown model type %q", cfg.Type)
	}
}

// openCatalog 从配置的数据源加载目录，连接在加载完成后立即关闭。
func openCatalog(ctx context.Context, cfg config.CatalogConfig, logger *slog.Logger) (*catalog.Catalog, error) {
	switch cfg.Source {
	case config.CatalogFile:
		return catalog.Load(ctx, &catalog.FileSource{Path: cfg.Path})

	case config.CatalogMemory:
		ms := store.NewMemoryStore()
		defer ms.Close()
		return loadStoreCatalog(ctx, ms, cfg, logger)

	case config.CatalogRedis:
		rs, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("open catalog store: %w", err)
		}
		defer rs.Close()
		return loadStoreCatalog(ctx, rs, cfg, logger)

	case config.CatalogPostgres:
		src, err := catalog.NewPostgresSource(cfg.Postgres.DSN, cfg.Postgres.Table)
		if err != nil {
			return nil, fmt.Errorf("open catalog database: %w", err)
		}
		defer src.Close()
		return catalog.Load(ctx, src)

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// loadStoreCatalog 读取 Store 中的目录；key 不存在且配置了 seed_file 时先写入再加载。
func loadStoreCatalog(ctx context.Context, st core.Store, cfg config.CatalogConfig, logger *slog.Logger) (*catalog.Catalog, error) {
	src := &catalog.StoreSource{Store: st, Key: cfg.Redis.Key}
	c, err := catalog.Load(ctx, src)
	if err == nil || cfg.SeedFile == "" || !core.IsNotFound(err) {
		return c, err
	}
	return seedCatalog(ctx, src, cfg.SeedFile, logger)
}

// seedCatalog 用本地文件初始化空的 Store 目录。
func seedCatalog(ctx context.Context, src *catalog.StoreSource, seedFile string, logger *slog.Logger) (*catalog.Catalog, error) {
	listings, err := (&catalog.FileSource{Path: seedFile}).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}
	if err := src.Save(ctx, listings); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	logger.Info("catalog seeded", "store", src.Name(), "seed_file", seedFile, "listings", len(listings))
	return catalog.New(listings)
}

func newRanker(cfg config.HotelConfig, c *catalog.Catalog, logger *slog.Logger) (*hotel.Ranker, error) {
	opts := []hotel.Option{hotel.WithLogger(logger)}
	if cfg.Rule != "" {
		rule, err := filter.NewExprFilter(cfg.Rule)
		if err != nil {
			return nil, fmt.Errorf("compile hotel rule: %w", err)
		}
		opts = append(opts, hotel.WithRules(rule))
	}
	if cfg.Pipeline != "" {
		p, err := config.LoadHotelPipeline(cfg.Pipeline, c)
		if err != nil {
			return nil, err
		}
		if cfg.Rule != "" {
			logger.Warn("hotel.rule is ignored when hotel.pipeline is set", "pipeline", cfg.Pipeline)
		}
		opts = append(opts, hotel.WithPipeline(p))
	}
	return hotel.NewRanker(c, opts...), nil
}

// Run 启动 HTTP 服务，ctx 取消后优雅退出。
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.Config.Server.Addr,
		Handler:      a.Server.Handler(),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("server error: %w", err)
		}
	}

	a.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown error", "error", err)
		runErr = errors.Join(runErr, err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}
	a.Logger.Info("server stopped")
	return runErr
}

// Close 释放远程模型连接等资源
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
