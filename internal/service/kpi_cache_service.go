package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached KPI payloads
	KPICacheKeyPrefix = "kpi:cache:"
)

// KPICacheService holds short-lived serialized KPI payloads so the
// dashboard can refresh without re-running every aggregate. It lives at
// the delivery layer; the aggregation core stays cache-free. A redis
// outage degrades to live queries, never to an error.
type KPICacheService interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

type kpiCacheService struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

func NewKPICacheService(client *redis.Client, log *logrus.Logger, ttl time.Duration) KPICacheService {
	return &kpiCacheService{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (s *kpiCacheService) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := s.client.Get(ctx, KPICacheKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("KPI cache read failed for %s: %+v", key, err)
		}
		return nil, false
	}
	return payload, true
}

func (s *kpiCacheService) Set(ctx context.Context, key string, payload []byte) {
	if err := s.client.Set(ctx, KPICacheKeyPrefix+key, payload, s.ttl).Err(); err != nil {
		s.log.Warnf("KPI cache write failed for %s: %+v", key, err)
	}
}
