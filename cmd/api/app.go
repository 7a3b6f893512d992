package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/route"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/broker"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/memory"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/repository"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/storage"
	"github.com/hugohenrick/pdv-restaurante/internal/config"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/internal/infrastructure/database"
	"github.com/hugohenrick/pdv-restaurante/internal/service/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/service/catalog"
	"github.com/hugohenrick/pdv-restaurante/internal/service/kitchen"
	"github.com/hugohenrick/pdv-restaurante/internal/service/order"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/hugohenrick/pdv-restaurante/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

// eventPublisher é o publicador de eventos com ciclo de vida
type eventPublisher interface {
	order.Publisher
	Close() error
}

// App representa a aplicação e suas dependências
type App struct {
	cfg       *config.Config
	log       *logger.ZapLogger
	router    *gin.Engine
	pool      *pgxpool.Pool
	publisher eventPublisher
	board     *kitchen.Board
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log *logger.ZapLogger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	st, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	a.publisher = broker.Nop{}
	if cfg.Broker.URL != "" {
		rmq, err := broker.NewRabbitMQ(cfg.Broker.URL, cfg.Broker.Exchange, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.publisher = rmq
	}

	uploads, err := storage.NewLocal(cfg.Storage.UploadsDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	if err != nil {
		a.Close()
		return nil, err
	}

	m := metrics.New()
	repos := st.Repositories()

	a.board = kitchen.NewBoard(repos.Items, log,
		kitchen.WithTick(cfg.Kitchen.Tick),
		kitchen.WithRefreshEvery(cfg.Kitchen.RefreshEvery),
		kitchen.WithMetrics(m),
	)
	orders := order.NewService(st, log,
		order.WithPublisher(a.publisher),
		order.WithKitchen(a.board),
		order.WithMetrics(m),
		order.WithDefaultServiceCharge(cfg.DefaultServiceCharge),
	)
	catalogSvc := catalog.NewService(st, uploads, log)
	cashierSvc := cashier.NewService(st, log, time.Now)

	sessions := auth.NewSessionService(repos.Users, jwtService)
	sessions.OnChange(func(evt auth.Event) {
		log.Info("Sessão alterada", "evento", string(evt.Type), "usuario", evt.UserID, "role", string(evt.Role))
	})

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))
	router.Use(m.GinMiddleware())
	router.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))

	router.Static("/uploads", uploads.Root())
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version,
			"storage": cfg.Storage.Driver,
		})
	})

	route.SetupRoutes(router.Group("/api/v1"), sessions, route.Controllers{
		Auth:    controller.NewAuthController(sessions),
		User:    controller.NewUserController(repos.Users),
		Table:   controller.NewTableController(orders, catalogSvc),
		Account: controller.NewAccountController(orders),
		Kitchen: controller.NewKitchenController(orders, a.board, log, originChecker(cfg.Server.CORSAllowedOrigins)),
		Cashier: controller.NewCashierController(cashierSvc),
		Product: controller.NewProductController(catalogSvc),
		Combo:   controller.NewComboController(catalogSvc),
	})

	a.router = router
	return a, nil
}

func (a *App) openStore(ctx context.Context) (store.Store, error) {
	if a.cfg.Storage.Driver == config.StorageDriverMemory {
		a.log.Warn("Usando armazenamento em memória, os dados serão perdidos ao reiniciar")
		return memory.NewStore(), nil
	}

	pool, err := database.NewPostgresPool(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.pool = pool
	return repository.NewStore(pool, a.log), nil
}

// Run inicia o servidor HTTP e o quadro da cozinha até o contexto ser cancelado
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.board.Run(ctx)
	})
	g.Go(func() error {
		a.log.Info("Servidor iniciado", "porta", a.cfg.Server.Port, "modo", a.cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("erro no servidor HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("Encerrando servidor")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Error("Erro ao fechar conexão com o broker", "error", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{"Retry-After"}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// originChecker aplica a mesma lista do CORS ao upgrade do websocket
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}
