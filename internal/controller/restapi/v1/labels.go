package v1

import (
	"net/http"

	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/request"
	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/validate"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Detect labels
// @Description Runs the label detector on an image URL and returns its JSON output unchanged
// @Tags 		labels
// @Produce 	json
// @Param 		url query string true "Image URL"
// @Success 	200 {object} interface{}
// @Failure 	400 {object} response.Error "Missing url"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/labels [get]
func (r *V1) detectLabels(ctx *fiber.Ctx) error {
	var q request.DetectLabels

	if err := ctx.QueryParser(&q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid query")
	}

	if err := r.v.Struct(q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, validate.Message(err))
	}

	out, err := r.labels.Detect(ctx.UserContext(), q.URL)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - detectLabels")

		return errorResponse(ctx, http.StatusInternalServerError, "label detection problems")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return ctx.Status(http.StatusOK).Send(out)
}
