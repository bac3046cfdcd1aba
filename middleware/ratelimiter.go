package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbokatech/hall-management-backend/utils"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter limits requests per IP across the API. The Redis store is
// used when Redis is configured so the limit holds across replicas;
// otherwise it falls back to the in-memory store.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if utils.RedisClient != nil {
		redisStore, err := redisstore.NewStoreWithOptions(utils.RedisClient, limiter.StoreOptions{
			Prefix: "ratelimit",
		})
		if err != nil {
			log.Printf("⚠️ Redis limiter store failed, using memory store: %v", err)
			store = memorystore.NewStore()
		} else {
			store = redisStore
		}
	} else {
		store = memorystore.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
