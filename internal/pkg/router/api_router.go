package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/propnest/PropNest/app/controllers"
	"github.com/propnest/PropNest/internal/pkg/cache"
	"github.com/propnest/PropNest/internal/pkg/env"
	"github.com/propnest/PropNest/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        env.GetEnvInt("API_RATE_LIMIT", 120),
		Expiration: time.Minute,
		Storage:    newLimiterStorage(),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes, staff API key required
	v1 := api.Group("/v1", middleware.APIKeyAuthMiddleware())

	// Leads
	v1.Get("/leads", controllers.HandleListLeads)
	v1.Post("/leads", controllers.HandleCreateLead)
	v1.Get("/leads/:uuid", controllers.HandleGetLead)
	v1.Patch("/leads/:uuid", controllers.HandleUpdateLead)

	// Properties
	v1.Get("/properties", controllers.HandleListProperties)
	v1.Post("/properties", controllers.HandleCreateProperty)
	v1.Get("/properties/:uuid", controllers.HandleGetProperty)
	v1.Patch("/properties/:uuid", controllers.HandleUpdateProperty)
	v1.Delete("/properties/:uuid", controllers.HandleDeleteProperty)

	// Owners
	v1.Get("/owners", controllers.HandleListOwners)
	v1.Post("/owners", controllers.HandleCreateOwner)

	// Listing photos
	v1.Post("/properties/:uuid/photos", controllers.HandleUploadPropertyPhoto)
	v1.Get("/properties/:uuid/photos", controllers.HandleListPropertyPhotos)
	v1.Delete("/photos/:uuid", controllers.HandleDeletePropertyPhoto)

	// Property documents (S3 presigned flows)
	v1.Post("/properties/:uuid/documents", controllers.HandleCreateDocumentUpload)
	v1.Get("/properties/:uuid/documents", controllers.HandleListPropertyDocuments)
	v1.Get("/documents/:uuid/download", controllers.HandleDownloadDocument)
	v1.Delete("/documents/:uuid", controllers.HandleDeleteDocument)
}

// newLimiterStorage backs the API rate limiter with Redis so limits survive
// restarts and hold across instances. Database 1 keeps limiter keys separate
// from the cache (DB 0).
func newLimiterStorage() *redis.Storage {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")

	if cacheClient := cache.GetClient(); cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, perr := strconv.Atoi(p); perr == nil {
				port = v
			}
		}
		// Prefer password from the underlying client if present
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1,
		Reset:    false,
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
