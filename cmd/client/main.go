package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/client/internal/application/cart"
	catalogapp "github.com/storefront/client/internal/application/catalog"
	"github.com/storefront/client/internal/infrastructure/api"
	"github.com/storefront/client/internal/infrastructure/config"
	"github.com/storefront/client/internal/infrastructure/logger"
	"github.com/storefront/client/internal/infrastructure/stream"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront client",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("api", cfg.API.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiClient := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)

	// Reconciled views: nav categories plus the standard product lists
	gate := catalogapp.NewCategoryGate()
	navCategories := catalogapp.NewCategoryView()
	allProducts := catalogapp.NewProductView(gate)
	featured := catalogapp.NewFeaturedView(gate)
	onSale := catalogapp.NewSaleView(gate)

	productReconciler := catalogapp.NewProductReconciler(log, allProducts, featured, onSale)
	categoryReconciler := catalogapp.NewCategoryReconciler(log, gate, productReconciler, navCategories)
	variantReconciler := catalogapp.NewVariantReconciler(log, allProducts, featured, onSale)

	streamClient := stream.NewClient(stream.Options{
		Addr:           cfg.Stream.RedisAddr(),
		Password:       cfg.Stream.RedisPassword,
		DB:             cfg.Stream.RedisDB,
		ChannelPrefix:  cfg.Stream.ChannelPrefix,
		ConnectTimeout: cfg.Stream.ConnectTimeout,
		BackoffInitial: cfg.Stream.BackoffInitial,
		BackoffMax:     cfg.Stream.BackoffMax,
	}, log)

	productReconciler.Bind(streamClient)
	categoryReconciler.Bind(streamClient)
	variantReconciler.Bind(streamClient)

	cartStore := cartapp.NewStore(apiClient, cartapp.NewLoggingNotifier(log), log)

	// Hydrate views from the read endpoints before the stream connects;
	// failures leave empty views that the stream fills in over time.
	hydrate(ctx, log, apiClient, navCategories, allProducts, featured, onSale, cartStore)

	streamClient.Connect(ctx, nil)

	var statusSrv *http.Server
	if cfg.Status.Enabled {
		statusSrv = startStatusServer(cfg, log, streamClient, cartStore, map[string]*catalogapp.ProductCollection{
			"products": allProducts,
			"featured": featured,
			"on_sale":  onSale,
		}, navCategories)
	}

	<-ctx.Done()
	log.Info("Shutting down")

	if statusSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := statusSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("status server shutdown failed", zap.Error(err))
		}
	}
	if err := streamClient.Close(); err != nil {
		log.Warn("stream close failed", zap.Error(err))
	}
}

func hydrate(
	ctx context.Context,
	log *zap.Logger,
	apiClient *api.Client,
	navCategories *catalogapp.CategoryCollection,
	allProducts, featured, onSale *catalogapp.ProductCollection,
	cartStore *cartapp.Store,
) {
	if categories, err := apiClient.GetPublicCategories(ctx); err != nil {
		log.Warn("category hydration failed", zap.Error(err))
	} else {
		navCategories.Replace(categories.Items)
	}

	if products, err := apiClient.GetPublicProducts(ctx, api.ProductFilters{}); err != nil {
		log.Warn("product hydration failed", zap.Error(err))
	} else {
		allProducts.Replace(products.Items)
		featured.Replace(products.Items)
		onSale.Replace(products.Items)
	}

	if err := cartStore.Fetch(ctx); err != nil {
		log.Warn("cart hydration failed", zap.Error(err))
	}
}

func startStatusServer(
	cfg *config.Config,
	log *zap.Logger,
	streamClient *stream.Client,
	cartStore *cartapp.Store,
	productViews map[string]*catalogapp.ProductCollection,
	navCategories *catalogapp.CategoryCollection,
) *http.Server {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/status", func(c *gin.Context) {
		views := gin.H{"categories": navCategories.Len()}
		for name, view := range productViews {
			views[name] = view.Len()
		}
		c.JSON(http.StatusOK, gin.H{
			"stream": gin.H{
				"connected": streamClient.Connected(),
				"rooms":     streamClient.Rooms(),
			},
			"views": views,
			"cart": gin.H{
				"items":   cartStore.TotalQuantity(),
				"loading": cartStore.Loading(),
			},
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Status.Port,
		Handler: router,
	}

	go func() {
		log.Info("status endpoint listening", zap.String("port", cfg.Status.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("status server failed", zap.Error(err))
		}
	}()

	return srv
}
