package v1

import (
	"github.com/baiqizhang/CopyCat-Server/internal/usecase"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type V1 struct {
	photo     usecase.PhotoUseCase
	labels    usecase.LabelsUseCase
	search    usecase.SearchUseCase
	searchLog usecase.SearchLogUseCase
	changelog usecase.ChangelogUseCase

	v      *validator.Validate
	logger logger.Interface
}
