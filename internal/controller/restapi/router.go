package restapi

import (
	"github.com/baiqizhang/CopyCat-Server/config"
	v1 "github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase/search"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/baiqizhang/CopyCat-Server/docs" // swagger docs
)

// @title CopyCat
// @version 1.0.0
// @host localhost:3001
// @BasePath /
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	photo usecase.PhotoUseCase,
	labels usecase.LabelsUseCase,
	searchUC usecase.SearchUseCase,
	searchLog usecase.SearchLogUseCase,
	changelog usecase.ChangelogUseCase,
	l logger.Interface,
) {
	app.Use(recover.New())

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Prometheus metrics
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Popular tag images referenced by search results
	app.Static(search.PopularTagsPath, cfg.Search.PopularTagsDir)

	// Routers
	v1.NewRoutes(app, photo, labels, searchUC, searchLog, changelog, l)
}
