package v1

import (
	"embed"
	"math"
	"net/http"
	"strconv"

	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/request"
	"github.com/gofiber/fiber/v2"
)

//go:embed web/change.html
var webFiles embed.FS

// @Summary 	Changelog since version
// @Description Returns entries newer than version as one HTML fragment. A lang containing "en" selects the cn text
// @Tags 		whatsnew
// @Produce 	json
// @Param 		version query int 	 false "Client version"
// @Param 		lang 	query string false "Client language"
// @Success 	200 {object} dto.WhatsNew
// @Router 		/whatsnew [get]
func (r *V1) whatsNew(ctx *fiber.Ctx) error {
	var q request.WhatsNew

	if err := ctx.QueryParser(&q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid query")
	}

	// an unparsable version is newer than anything stored
	version, err := strconv.Atoi(q.Version)
	if err != nil {
		version = math.MaxInt
	}

	return ctx.Status(http.StatusOK).JSON(r.changelog.WhatsNew(version, q.Lang))
}

// @Summary 	Changelog upload form
// @Tags 		whatsnew
// @Produce 	html
// @Success 	200
// @Router 		/whatsnew/upload [get]
func (r *V1) changelogForm(ctx *fiber.Ctx) error {
	file, err := webFiles.ReadFile("web/change.html")
	if err != nil {
		r.logger.Error(err, "restapi - v1 - changelogForm")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with load form")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return ctx.Send(file)
}

// @Summary 	Append changelog entry
// @Tags 		whatsnew
// @Accept 		x-www-form-urlencoded,json
// @Produce 	plain
// @Param 		new_cn  formData string false "Chinese text"
// @Param 		new_eng formData string false "English text"
// @Success 	200 {string} string "Uploaded"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/whatsnew/upload [post]
func (r *V1) uploadChangelog(ctx *fiber.Ctx) error {
	var body request.UploadChangelog

	if err := ctx.BodyParser(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if _, err := r.changelog.Append(ctx.UserContext(), body.NewCN, body.NewENG); err != nil {
		r.logger.Error(err, "restapi - v1 - uploadChangelog")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).SendString("Uploaded")
}

// @Summary 	Reset changelog
// @Tags 		whatsnew
// @Produce 	plain
// @Success 	200 {string} string "reset"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/whatsnew/reset [get]
func (r *V1) resetChangelog(ctx *fiber.Ctx) error {
	if err := r.changelog.Reset(ctx.UserContext()); err != nil {
		r.logger.Error(err, "restapi - v1 - resetChangelog")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).SendString("reset")
}
