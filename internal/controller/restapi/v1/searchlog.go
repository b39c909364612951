package v1

import (
	"net/http"

	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/request"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Log search keyword
// @Description Counts a search keyword; the tally file is written in the background
// @Tags 		search
// @Param 		keyword query string false "Keyword"
// @Success 	200
// @Router 		/searchlog [get]
func (r *V1) logSearch(ctx *fiber.Ctx) error {
	var q request.SearchLog

	if err := ctx.QueryParser(&q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid query")
	}

	if err := r.searchLog.Record(ctx.UserContext(), q.Keyword); err != nil {
		r.logger.Error(err, "restapi - v1 - logSearch")
	}

	return ctx.Status(http.StatusOK).Send(nil)
}
