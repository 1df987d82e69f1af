package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipebox/internal/apperror"
	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/services"
	"recipebox/pkg/events"
	"recipebox/pkg/imagestore"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "recipebox.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("MEDIA_DIR", "media")
	viper.SetDefault("AMQP_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	mediaDir := viper.GetString("MEDIA_DIR")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Ingredient{}, &models.Recipe{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Image storage ---
	images, err := imagestore.New(mediaDir)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// --- Event publisher (optional) ---
	var mqClient *events.Client
	if amqpURL := viper.GetString("AMQP_URL"); amqpURL != "" {
		mqClient, err = events.NewClient(events.Config{URL: amqpURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		// Audit consumer: log every catalog event that flows through the queue.
		if err := mqClient.Consume(func(msg amqp.Delivery) error {
			log.Printf("Catalog event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}); err != nil {
			log.Printf("Failed to start event consumer: %v", err)
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	ingredientRepo := repositories.NewGORMIngredientRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, mqClient)
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	tagService := services.NewTagService(tagRepo)
	ingredientService := services.NewIngredientService(ingredientRepo)
	recipeService := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, images, mqClient)

	// --- Superuser bootstrap ---
	if adminEmail := viper.GetString("ADMIN_EMAIL"); adminEmail != "" {
		if _, err := userService.CreateSuperuser(adminEmail, viper.GetString("ADMIN_PASSWORD")); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				log.Printf("Admin account %s already exists", adminEmail)
			} else {
				log.Fatalf("Failed to create admin account: %v", err)
			}
		} else {
			log.Printf("Created admin account %s", adminEmail)
		}
	}

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, authService)
	tagHandler := handlers.NewTagHandler(tagService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Static("/media", mediaDir)

	apiV1 := app.Group("/api/v1")
	requireAuth := middleware.AuthRequired(authService)

	userHandler.RegisterRoutes(apiV1, requireAuth)

	recipeGroup := apiV1.Group("/recipe", requireAuth)
	tagHandler.RegisterRoutes(recipeGroup)
	ingredientHandler.RegisterRoutes(recipeGroup)
	recipeHandler.RegisterRoutes(recipeGroup)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM connection for the configured driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
