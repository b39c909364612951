package v1

import (
	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/validate"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewRoutes(
	router fiber.Router,
	photo usecase.PhotoUseCase,
	labels usecase.LabelsUseCase,
	search usecase.SearchUseCase,
	searchLog usecase.SearchLogUseCase,
	changelog usecase.ChangelogUseCase,
	l logger.Interface,
) {
	r := &V1{
		photo:     photo,
		labels:    labels,
		search:    search,
		searchLog: searchLog,
		changelog: changelog,
		v:         validate.New(),
		logger:    l,
	}

	{
		// Photos
		router.Get("/photos/:id", r.getPhoto)
		router.Get("/photos/:id/labels", r.getPhotoLabels)
		router.Post("/photos", r.uploadPhoto)
		router.Get("/labels", r.detectLabels)

		// Search
		router.Get("/search", r.searchPhotos)
		router.Get("/search/updateList", r.listTags)
		router.Get("/searchlog", r.logSearch)

		// Changelog
		router.Get("/whatsnew", r.whatsNew)
		router.Get("/whatsnew/upload", r.changelogForm)
		router.Post("/whatsnew/upload", r.uploadChangelog)
		router.Get("/whatsnew/reset", r.resetChangelog)
	}
}
