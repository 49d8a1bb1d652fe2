package education

import (
	"context"

	"github.com/google/uuid"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	educationRepo "github.com/muhammadheryan/eyewear-store/repository/education"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
	"go.uber.org/zap"
)

// EducationApp serves the lens education hub articles.
type EducationApp interface {
	List(ctx context.Context) ([]model.EducationArticle, error)
	Get(ctx context.Context, id string) (*model.EducationArticle, error)
	Create(ctx context.Context, req *model.EducationRequest) (*model.EducationArticle, error)
	Update(ctx context.Context, id string, req *model.EducationRequest) (*model.EducationArticle, error)
	Delete(ctx context.Context, id string) error
}

type educationAppImpl struct {
	educationRepo educationRepo.EducationRepository
}

func NewEducationApp(educationRepo educationRepo.EducationRepository) EducationApp {
	return &educationAppImpl{educationRepo: educationRepo}
}

func (s *educationAppImpl) List(ctx context.Context) ([]model.EducationArticle, error) {
	items, err := s.educationRepo.List(ctx)
	if err != nil {
		logger.Error("[List] err educationRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *educationAppImpl) Get(ctx context.Context, id string) (*model.EducationArticle, error) {
	article, err := s.educationRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[Get] err educationRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if article == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return article, nil
}

func (s *educationAppImpl) Create(ctx context.Context, req *model.EducationRequest) (*model.EducationArticle, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	article := toArticle(uuid.NewString(), req)
	if err := s.educationRepo.Create(ctx, article); err != nil {
		logger.Error("[Create] err educationRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return article, nil
}

func (s *educationAppImpl) Update(ctx context.Context, id string, req *model.EducationRequest) (*model.EducationArticle, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	article := toArticle(id, req)
	if err := s.educationRepo.Update(ctx, article); err != nil {
		logger.Error("[Update] err educationRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return article, nil
}

func (s *educationAppImpl) Delete(ctx context.Context, id string) error {
	if err := s.educationRepo.Delete(ctx, id); err != nil {
		logger.Error("[Delete] err educationRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func toArticle(id string, req *model.EducationRequest) *model.EducationArticle {
	return &model.EducationArticle{
		ID:           id,
		Title:        req.Title,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	}
}
