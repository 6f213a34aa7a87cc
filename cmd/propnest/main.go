package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/propnest/PropNest/app/controllers"
	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/cache"
	"github.com/propnest/PropNest/internal/pkg/constants"
	"github.com/propnest/PropNest/internal/pkg/database"
	"github.com/propnest/PropNest/internal/pkg/env"
	"github.com/propnest/PropNest/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// Repositories before anything that touches the database
	repository.InitializeFactory(database.GetDB())

	ensureInitialAdmin()

	// Lead ingestion pipeline (webhook handlers enqueue into it)
	controllers.InitLeadPipeline()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/propnest to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // photos cap at 20 MiB plus multipart overhead
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("MONITOR_USERNAME", "admin"): env.GetEnv("MONITOR_PASSWORD", "admin"),
		},
	}), monitor.New())

	// static uploads (listing photos and thumbnails)
	app.Static(constants.UploadsRoute, env.GetEnv("UPLOADS_DIR", basePath+constants.UploadsPath), fiber.Static{
		CacheDuration: 10 * time.Second,
		Compress:      false,
		MaxAge:        604800, // 7 days
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// ensureInitialAdmin creates the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the staff table is empty, so the Basic-auth admin
// surface is reachable on a fresh install.
func ensureInitialAdmin() {
	repo := repository.GetGlobalFactory().GetStaffUserRepository()

	count, err := repo.Count()
	if err != nil {
		log.Printf("Warning: could not count staff users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	email := env.GetEnv("ADMIN_EMAIL", "")
	password := env.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		log.Println("Warning: no staff users and ADMIN_EMAIL/ADMIN_PASSWORD unset; admin surface unusable")
		return
	}

	admin, err := models.CreateStaffUser("Administrator", email, password, models.ROLE_ADMIN)
	if err != nil {
		log.Printf("Warning: could not build initial admin: %v", err)
		return
	}
	if err := repo.Create(admin); err != nil {
		log.Printf("Warning: could not create initial admin: %v", err)
		return
	}

	log.Printf("Created initial admin account %s", email)
}
