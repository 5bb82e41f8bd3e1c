package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intraportal/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	posts    PostRepository
	activity ActivityRecorder
	hub      *Hub
	log      *zap.Logger
}

func NewService(posts PostRepository, activity ActivityRecorder, hub *Hub, log *zap.Logger) *Service {
	return &Service{
		posts:    posts,
		activity: activity,
		hub:      hub,
		log:      log,
	}
}

func (s *Service) CreatePost(ctx context.Context, p domain.Principal, req CreatePostRequest) (*domain.Post, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, ErrValidation
	}
	category := domain.PostCategory(req.Category)
	if category == "" {
		category = domain.PostGeneral
	}

	post := &domain.Post{
		AuthorID:   p.UserID,
		AuthorName: p.Name,
		Category:   category,
		Title:      req.Title,
		Body:       req.Body,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.record(ctx, p, domain.ActivityPostCreation, fmt.Sprintf("Published a post: %s", post.Title), post.ID)
	s.broadcast(FeedEvent{Type: "post_created", PostID: post.ID, Actor: p.Name})
	return post, nil
}

func (s *Service) ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return s.posts.ListPosts(ctx, limit, offset)
}

// DeletePost removes the caller's own post, comments and reactions
// included. Deleting an already-deleted post is a no-op.
func (s *Service) DeletePost(ctx context.Context, p domain.Principal, id int64) error {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if post.AuthorID != p.UserID {
		return ErrForbidden
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}
	s.broadcast(FeedEvent{Type: "post_deleted", PostID: id, Actor: p.Name})
	return nil
}

func (s *Service) CreateComment(ctx context.Context, p domain.Principal, postID int64, req CreateCommentRequest) (*domain.Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrValidation
	}
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		PostID:     postID,
		AuthorID:   p.UserID,
		AuthorName: p.Name,
		Body:       req.Body,
	}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.record(ctx, p, domain.ActivityComment, "Commented on a post", postID)
	s.broadcast(FeedEvent{Type: "comment_created", PostID: postID, Actor: p.Name})
	return comment, nil
}

// ToggleReaction flips the caller's reaction of the given kind. Only
// adding a reaction earns points; removing one does not claw them back
// (events are append-only).
func (s *Service) ToggleReaction(ctx context.Context, p domain.Principal, postID int64, req ReactionRequest) (bool, error) {
	if strings.TrimSpace(req.Kind) == "" {
		return false, ErrValidation
	}
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	added, err := s.posts.ToggleReaction(ctx, postID, p.UserID, req.Kind)
	if err != nil {
		return false, err
	}
	if added {
		s.record(ctx, p, domain.ActivityReaction, "Reacted to a post", postID)
	}
	s.broadcast(FeedEvent{Type: "reaction_toggled", PostID: postID, Actor: p.Name})
	return added, nil
}

func (s *Service) record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description string, postID int64) {
	if s.activity == nil {
		return
	}
	metadata := fmt.Sprintf(`{"post_id":%d}`, postID)
	if err := s.activity.Record(ctx, p, category, description, metadata); err != nil {
		s.log.Warn("activity recording failed", zap.Int64("post_id", postID), zap.Error(err))
	}
}

func (s *Service) broadcast(event FeedEvent) {
	if s.hub != nil {
		s.hub.Broadcast(event)
	}
}
