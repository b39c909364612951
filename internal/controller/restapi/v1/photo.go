package v1

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/request"
	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi/v1/validate"
	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// @Summary 	Get photo
// @Description Returns a photo record by id
// @Tags 		photos
// @Produce 	json
// @Param 		id path string true "Photo ID(uuid)"
// @Success 	200 {object} entity.Photo
// @Failure 	404 {object} response.Error "Photo not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/photos/{id} [get]
func (r *V1) getPhoto(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusNotFound, "photo not found")
	}

	photo, err := r.photo.Get(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "photo not found")
		}
		r.logger.Error(err, "restapi - v1 - getPhoto")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(photo)
}

// @Summary  	Upload photo
// @Description Compresses a base64 encoded image, stores it in S3 and returns the finalized photo
// @Tags 		photos
// @Accept 		json
// @Produce 	json
// @Param 		request body request.UploadPhoto true "Base64 image data and metadata"
// @Success 	201 {object} entity.Photo
// @Failure 	400 {object} response.Error "Missing or malformed data"
// @Failure 	413 {object} response.Error "Body exceeds HTTP_BODY_LIMIT"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/photos [post]
func (r *V1) uploadPhoto(ctx *fiber.Ctx) error {
	var body request.UploadPhoto

	if err := ctx.BodyParser(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if err := r.v.Struct(body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, validate.Message(err))
	}

	data, err := base64.StdEncoding.DecodeString(body.Data)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "data is not valid base64")
	}

	photo, err := r.photo.Upload(ctx.UserContext(), dto.UploadPhoto{
		Data:        data,
		ReferenceID: body.ReferenceID,
		OwnerID:     body.OwnerID,
		TagList:     body.TagList,
	})
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadPhoto")

		return errorResponse(ctx, http.StatusInternalServerError, "upload problems")
	}

	return ctx.Status(http.StatusCreated).JSON(photo)
}

// @Summary 	Get photo labels
// @Description Returns labels detected for a finalized photo by the label worker
// @Tags 		photos
// @Produce 	json
// @Param 		id path string true "Photo ID(uuid)"
// @Success 	200 {object} entity.PhotoLabels
// @Failure 	404 {object} response.Error "No labels for photo"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/photos/{id}/labels [get]
func (r *V1) getPhotoLabels(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusNotFound, "labels not found")
	}

	labels, err := r.labels.Labels(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "labels not found")
		}
		r.logger.Error(err, "restapi - v1 - getPhotoLabels")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(labels)
}
