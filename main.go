package main

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/chucky-1/fdbroker/internal/config"
	"github.com/chucky-1/fdbroker/internal/gateway"
	"github.com/chucky-1/fdbroker/internal/repository"
	"github.com/chucky-1/fdbroker/internal/server"
	"github.com/chucky-1/fdbroker/internal/service"
	"github.com/chucky-1/fdbroker/internal/session"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Configuration
	_ = godotenv.Load()
	cfg := new(config.Config)
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("%v", err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.SetLevel(level)

	// Catalog cache, redis tier only when a host is configured
	var ring *redis.Ring
	if cfg.HostRedisCache != "" {
		hostAndPort := fmt.Sprint(cfg.HostRedisCache, ":", cfg.PortRedisCache)
		ring = redis.NewRing(&redis.RingOptions{Addrs: map[string]string{cfg.ServerRedisCache: hostAndPort}})
		defer func() {
			if err := ring.Close(); err != nil {
				log.Error(err)
			}
		}()
	}
	rep := repository.NewRepository(repository.DefaultStocks(), repository.NewLocalCache(ring, cfg.CatalogTTL))

	// Banking API
	gw := gateway.NewGateway(cfg, nil)
	log.Infof("tracking identifier %s", gw.TrackingID())

	srv := service.NewService(rep, gw, service.NewSimulatedSettler(cfg.SettlementDelay))
	s := server.NewServer(srv, session.New(), cfg.StaticDir, cfg.AllowedOrigins)
	if err = s.Start(cfg.Addr); err != nil {
		log.Error(err)
	}
}
