package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/database/redisclient"
	"github.com/x-xyz/klvmarket/base/log"
	pricefomatter "github.com/x-xyz/klvmarket/base/price_fomatter"
	bValidator "github.com/x-xyz/klvmarket/base/validator"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/transaction"
	mmiddleware "github.com/x-xyz/klvmarket/middleware"
	"github.com/x-xyz/klvmarket/service/cache"
	"github.com/x-xyz/klvmarket/service/cache/provider"
	"github.com/x-xyz/klvmarket/service/cache/provider/compound"
	"github.com/x-xyz/klvmarket/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/klvmarket/service/cache/provider/redis"
	"github.com/x-xyz/klvmarket/service/marketplace"
	"github.com/x-xyz/klvmarket/service/walletbridge"
	activity_delivery "github.com/x-xyz/klvmarket/stores/activity/delivery/http"
	activity_usecase "github.com/x-xyz/klvmarket/stores/activity/usecase"
	hc_delivery "github.com/x-xyz/klvmarket/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/klvmarket/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/klvmarket/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/klvmarket/stores/listing/delivery/http"
	listing_usecase "github.com/x-xyz/klvmarket/stores/listing/usecase"
	metadata_repository "github.com/x-xyz/klvmarket/stores/metadata/repository"
	metadata_usecase "github.com/x-xyz/klvmarket/stores/metadata/usecase"
	network_repository "github.com/x-xyz/klvmarket/stores/network/repository"
	transaction_delivery "github.com/x-xyz/klvmarket/stores/transaction/delivery/http"
	transaction_usecase "github.com/x-xyz/klvmarket/stores/transaction/usecase"
	webresource_usecase "github.com/x-xyz/klvmarket/stores/web_resource/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvPrefix("klvmarket")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := log.Init(log.Config{
		Level:       viper.GetString("log.level"),
		Development: viper.GetBool("log.development"),
	}); err != nil {
		panic(err)
	}
}

func main() {
	defer func() { _ = log.Sync() }()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	networks, err := network_repository.NewViperRepo(viper.GetViper())
	if err != nil {
		context.WithField("err", err).Panic("network_repository.NewViperRepo failed")
	}
	for _, n := range network_repository.MissingMarketplaceIds(context, networks) {
		context.WithField("network", n).Warn("no networks.<name>.marketplaceId configured, sells must name one")
	}

	// init cache
	pages, metaCache, generations := mustInitCache(context)

	httpTimeout := viper.GetDuration("http.timeout")
	marketplaceClient := marketplace.NewClient(&marketplace.ClientCfg{
		HttpClient:        http.Client{},
		Timeout:           httpTimeout,
		RequestsPerSecond: viper.GetFloat64("marketplaceApi.rps"),
		Burst:             viper.GetInt("marketplaceApi.burst"),
	})

	bridge := walletbridge.New(&walletbridge.BridgeCfg{
		HttpClient: http.Client{},
		Url:        viper.GetString("walletBridge.url"),
		Timeout:    viper.GetDuration("walletBridge.timeout"),
	})
	if bridge == nil {
		context.Warn("no wallet bridge configured, transactions will fail as not connected")
	}

	// construct repository, usecase and delivery
	metadataRepo := metadata_repository.NewMarketplaceRepo(marketplaceClient, networks, metaCache)
	metadata := metadata_usecase.NewMetadataUseCase(&metadata_usecase.MetadataUseCaseCfg{
		Repo: metadataRepo,
	})

	imageResolver := webresource_usecase.NewImageResolver(&webresource_usecase.ImageResolverCfg{
		Gateway: viper.GetString("ipfs.gateway"),
	})

	listing := listing_usecase.NewListingUseCase(&listing_usecase.ListingUseCaseCfg{
		Client:       marketplaceClient,
		Networks:     networks,
		Metadata:     metadata,
		Images:       imageResolver,
		Pages:        pages,
		Generations:  generations,
		StaleAfter:   viper.GetDuration("listing.staleAfter"),
		FetchTimeout: viper.GetDuration("listing.fetchTimeout"),
		PageLimit:    viper.GetInt("listing.pageLimit"),
	})

	activity := activity_usecase.NewActivityUseCase(&activity_usecase.ActivityUseCaseCfg{
		Client:   marketplaceClient,
		Networks: networks,
	})

	priceFormatter := pricefomatter.NewPriceFormatter(mustPriceFormatterCfg(context))

	tx := transaction_usecase.NewTransactionUseCase(&transaction_usecase.TransactionUseCaseCfg{
		Bridge:         bridge,
		Networks:       networks,
		Listing:        listing,
		PriceFormatter: priceFormatter,
		OnStateChange: func(c ctx.Ctx, change transaction.StateChange) {
			if change.To.IsTerminal() {
				c.WithField("state", change.To).Info("operation finished")
			}
		},
	})

	hcRepo := hc_repo.New(generations, marketplaceClient, networks)
	hc := hc_usecase.New(hcRepo, networks)

	hc_delivery.New(e, hc)
	listing_delivery.New(e, listing)
	activity_delivery.New(e, activity)
	transaction_delivery.New(e, tx)

	go func() {
		if err := e.Start(viper.GetString("http.addr")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

// mustInitCache returns the page cache, the asset metadata cache and the provider
// holding the listing generations. Generations live in redis whenever redis is configured so every
// replica sees an invalidation.
func mustInitCache(context ctx.Ctx) (cache.Service, cache.Service, provider.Provider) {
	sizeMB := viper.GetInt("cache.sizeMB")
	if sizeMB <= 0 {
		sizeMB = 64
	}

	var pages, generations provider.Provider
	switch p := viper.GetString("cache.provider"); p {
	case "", "local":
		context.Info("init local cache")
		pages = primitive.NewPrimitive("listing", sizeMB)
		generations = primitive.NewPrimitive("listingGen", 1)
	case "redis", "compound":
		context.Info("init redis cache")
		redisCfg := redisclient.Config{}
		if err := viper.UnmarshalKey("redis_cache", &redisCfg); err != nil {
			context.WithField("err", err).Panic("viper.UnmarshalKey failed")
		}
		remote := redisCache.NewRedis(redisclient.MustConnectRedis(redisCfg))
		generations = remote
		pages = remote
		if p == "compound" {
			pages = compound.NewCompound(primitive.NewPrimitive("listing", sizeMB), remote)
		}
	default:
		context.WithField("provider", p).Panic("unknown cache provider")
	}

	pageCache := cache.New(cache.ServiceConfig{
		Pfx:   "klvmarket",
		Ttl:   viper.GetDuration("listing.expireAfter"),
		Cache: pages,
	})
	metaTtl := viper.GetDuration("metadata.cacheTtl")
	if metaTtl <= 0 {
		return pageCache, nil, generations
	}
	return pageCache, cache.New(cache.ServiceConfig{
		Pfx:   "klvmarket",
		Ttl:   metaTtl,
		Cache: pages,
	}), generations
}

func mustPriceFormatterCfg(context ctx.Ctx) *pricefomatter.PriceFormatterCfg {
	cfg := &pricefomatter.PriceFormatterCfg{
		Precisions: map[domain.CurrencyId]int32{},
	}
	for currency := range viper.GetStringMap("currencies") {
		cfg.Precisions[domain.CurrencyId(currency)] = viper.GetInt32("currencies." + currency + ".precision")
	}
	if viper.IsSet("currency.defaultPrecision") {
		p := viper.GetInt32("currency.defaultPrecision")
		cfg.DefaultPrecision = &p
	}
	context.WithField("currencies", len(cfg.Precisions)).Info("price formatter configured")
	return cfg
}
