package board

import (
	"context"
	"testing"

	"intraportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) CreatePost(ctx context.Context, p *domain.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPostRepo) ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *mockPostRepo) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPostRepo) CreateComment(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockPostRepo) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *mockPostRepo) ToggleReaction(ctx context.Context, postID, userID int64, kind string) (bool, error) {
	args := m.Called(ctx, postID, userID, kind)
	return args.Bool(0), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description, metadata string) error {
	args := m.Called(ctx, p, category, description, metadata)
	return args.Error(0)
}

func newBoardService() (*Service, *mockPostRepo, *mockRecorder) {
	posts := new(mockPostRepo)
	recorder := new(mockRecorder)
	svc := NewService(posts, recorder, NewHub(), zap.NewNop())
	return svc, posts, recorder
}

var ana = domain.Principal{UserID: 1, Email: "ana@portal.local", Name: "Ana"}

func TestCreatePost_RecordsActivity(t *testing.T) {
	svc, posts, recorder := newBoardService()

	posts.On("CreatePost", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Post).ID = 10
	}).Return(nil)
	recorder.On("Record", mock.Anything, ana, domain.ActivityPostCreation, mock.Anything, mock.Anything).Return(nil)

	post, err := svc.CreatePost(context.Background(), ana, CreatePostRequest{
		Title: "Festa junina", Body: "Sexta às 18h no refeitório",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), post.ID)
	assert.Equal(t, domain.PostGeneral, post.Category)
	assert.Equal(t, ana.UserID, post.AuthorID)
	recorder.AssertNumberOfCalls(t, "Record", 1)
}

func TestCreatePost_BlankBodyRejected(t *testing.T) {
	svc, posts, _ := newBoardService()

	_, err := svc.CreatePost(context.Background(), ana, CreatePostRequest{Title: "x", Body: "   "})

	assert.ErrorIs(t, err, ErrValidation)
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	svc, posts, _ := newBoardService()

	posts.On("GetPost", mock.Anything, int64(10)).Return(&domain.Post{ID: 10, AuthorID: 2}, nil)

	assert.ErrorIs(t, svc.DeletePost(context.Background(), ana, 10), ErrForbidden)
	posts.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}

func TestDeletePost_MissingIsNoop(t *testing.T) {
	svc, posts, _ := newBoardService()

	posts.On("GetPost", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	assert.NoError(t, svc.DeletePost(context.Background(), ana, 99))
	posts.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}

func TestCreateComment_RecordsActivity(t *testing.T) {
	svc, posts, recorder := newBoardService()

	posts.On("GetPost", mock.Anything, int64(10)).Return(&domain.Post{ID: 10, AuthorID: 2}, nil)
	posts.On("CreateComment", mock.Anything, mock.Anything).Return(nil)
	recorder.On("Record", mock.Anything, ana, domain.ActivityComment, mock.Anything, mock.Anything).Return(nil)

	comment, err := svc.CreateComment(context.Background(), ana, 10, CreateCommentRequest{Body: "Estarei lá!"})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), comment.PostID)
	recorder.AssertNumberOfCalls(t, "Record", 1)
}

func TestCreateComment_UnknownPost(t *testing.T) {
	svc, posts, _ := newBoardService()

	posts.On("GetPost", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateComment(context.Background(), ana, 99, CreateCommentRequest{Body: "eco"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleReaction_PointsOnlyWhenAdded(t *testing.T) {
	svc, posts, recorder := newBoardService()

	posts.On("GetPost", mock.Anything, int64(10)).Return(&domain.Post{ID: 10}, nil)
	posts.On("ToggleReaction", mock.Anything, int64(10), ana.UserID, "like").Return(true, nil).Once()
	recorder.On("Record", mock.Anything, ana, domain.ActivityReaction, mock.Anything, mock.Anything).Return(nil)

	added, err := svc.ToggleReaction(context.Background(), ana, 10, ReactionRequest{Kind: "like"})
	assert.NoError(t, err)
	assert.True(t, added)
	recorder.AssertNumberOfCalls(t, "Record", 1)

	// Toggling off removes the reaction but never claws points back.
	posts.On("ToggleReaction", mock.Anything, int64(10), ana.UserID, "like").Return(false, nil).Once()

	added, err = svc.ToggleReaction(context.Background(), ana, 10, ReactionRequest{Kind: "like"})
	assert.NoError(t, err)
	assert.False(t, added)
	recorder.AssertNumberOfCalls(t, "Record", 1)
}
