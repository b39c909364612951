package v1

import (
	"net/http"
	"strings"

	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/request"
	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/response"
	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/validate"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Search photos
// @Description Merges cached popular tag photos with Unsplash results for comma separated labels
// @Tags 		search
// @Produce 	json
// @Param 		labels query string true "Comma separated labels"
// @Success 	200 {array} entity.AggregatedPhoto
// @Failure 	400 {object} response.Error "Missing labels"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/search [get]
func (r *V1) searchPhotos(ctx *fiber.Ctx) error {
	var q request.Search

	if err := ctx.QueryParser(&q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid query")
	}

	if err := r.v.Struct(q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, validate.Message(err))
	}

	photos, err := r.search.Search(ctx.UserContext(), strings.Split(q.Labels, ","))
	if err != nil {
		r.logger.Error(err, "restapi - v1 - searchPhotos")

		return errorResponse(ctx, http.StatusInternalServerError, "search problems")
	}

	return ctx.Status(http.StatusOK).JSON(photos)
}

// @Summary 	List popular tags
// @Description Returns the cached popular tag names
// @Tags 		search
// @Produce 	json
// @Success 	200 {object} response.Tags
// @Router 		/search/updateList [get]
func (r *V1) listTags(ctx *fiber.Ctx) error {
	return ctx.Status(http.StatusOK).JSON(response.Tags{Tags: r.search.Tags()})
}
