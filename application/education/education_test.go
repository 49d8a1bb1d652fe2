package education_test

import (
	"context"
	"errors"
	"testing"

	appeducation "github.com/muhammadheryan/eyewear-store/application/education"
	"github.com/muhammadheryan/eyewear-store/constant"
	educationmocks "github.com/muhammadheryan/eyewear-store/mocks/repository/education"
	"github.com/muhammadheryan/eyewear-store/model"
	cerr "github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEducationApp_Get(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(repo *educationmocks.EducationRepository)
		want     *model.EducationArticle
		errCode  constant.ErrorType
	}{
		{
			name: "success",
			mockCall: func(repo *educationmocks.EducationRepository) {
				repo.On("GetByID", mock.Anything, "a1").Return(&model.EducationArticle{ID: "a1", Title: "Blue-cut lenses"}, nil).Once()
			},
			want: &model.EducationArticle{ID: "a1", Title: "Blue-cut lenses"},
		},
		{
			name: "error: not found",
			mockCall: func(repo *educationmocks.EducationRepository) {
				repo.On("GetByID", mock.Anything, "a1").Return(nil, nil).Once()
			},
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: repository fails",
			mockCall: func(repo *educationmocks.EducationRepository) {
				repo.On("GetByID", mock.Anything, "a1").Return(nil, errors.New("db error")).Once()
			},
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := educationmocks.NewEducationRepository(t)
			tt.mockCall(repo)

			got, err := appeducation.NewEducationApp(repo).Get(context.Background(), "a1")
			if tt.want == nil {
				assert.True(t, cerr.IsType(err, tt.errCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEducationApp_CreateUpdate(t *testing.T) {
	repo := educationmocks.NewEducationRepository(t)
	app := appeducation.NewEducationApp(repo)
	ctx := context.Background()

	_, err := app.Create(ctx, &model.EducationRequest{Title: "", Content: "x"})
	assert.True(t, cerr.IsType(err, constant.ErrInvalidRequest))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.EducationArticle")).Return(nil).Once()
	created, err := app.Create(ctx, &model.EducationRequest{Title: "Progressive lenses", Content: "Multifocal.", DisplayOrder: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 2, created.DisplayOrder)

	repo.On("GetByID", mock.Anything, created.ID).Return(created, nil).Once()
	repo.On("Update", mock.Anything, &model.EducationArticle{ID: created.ID, Title: "Progressive", Content: "Multifocal.", DisplayOrder: 1}).Return(nil).Once()
	updated, err := app.Update(ctx, created.ID, &model.EducationRequest{Title: "Progressive", Content: "Multifocal.", DisplayOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, "Progressive", updated.Title)
}
