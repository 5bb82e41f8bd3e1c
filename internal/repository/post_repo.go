package repository

import (
	"context"
	"errors"
	"time"

	"intraportal/internal/domain"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

type postModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	AuthorID   int64     `gorm:"column:author_id;index"`
	AuthorName string    `gorm:"column:author_name"`
	Category   string    `gorm:"column:category"`
	Title      string    `gorm:"column:title"`
	Body       string    `gorm:"column:body;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

func (postModel) TableName() string { return "posts" }

type commentModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PostID     int64     `gorm:"column:post_id;index"`
	AuthorID   int64     `gorm:"column:author_id"`
	AuthorName string    `gorm:"column:author_name"`
	Body       string    `gorm:"column:body;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (commentModel) TableName() string { return "comments" }

type reactionModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	PostID    int64     `gorm:"column:post_id;uniqueIndex:idx_reaction_once"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_reaction_once"`
	Kind      string    `gorm:"column:kind;uniqueIndex:idx_reaction_once"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reactionModel) TableName() string { return "reactions" }

func toDomainPost(m postModel) domain.Post {
	return domain.Post{
		ID:         m.ID,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		Category:   domain.PostCategory(m.Category),
		Title:      m.Title,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainComment(m commentModel) domain.Comment {
	return domain.Comment{
		ID:         m.ID,
		PostID:     m.PostID,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainReaction(m reactionModel) domain.Reaction {
	return domain.Reaction{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		Kind:      m.Kind,
		CreatedAt: m.CreatedAt,
	}
}

func (r *PostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	m := postModel{
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Category:   string(p.Category),
		Title:      p.Title,
		Body:       p.Body,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = toDomainPost(m)
	return nil
}

// ListPosts returns posts most-recent-first with comments and reactions
// attached.
func (r *PostRepository) ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ms []postModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Post, 0, len(ms))
	for _, m := range ms {
		p := toDomainPost(m)
		comments, err := r.ListComments(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		reactions, err := r.listReactions(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		p.Comments = comments
		p.Reactions = reactions
		out = append(out, p)
	}
	return out, nil
}

func (r *PostRepository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	var m postModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	p := toDomainPost(m)
	return &p, nil
}

func (r *PostRepository) DeletePost(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&commentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&reactionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&postModel{}, id).Error
	})
}

func (r *PostRepository) CreateComment(ctx context.Context, c *domain.Comment) error {
	m := commentModel{
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Body:       c.Body,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = toDomainComment(m)
	return nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var ms []commentModel
	tx := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Comment, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainComment(m))
	}
	return out, nil
}

func (r *PostRepository) listReactions(ctx context.Context, postID int64) ([]domain.Reaction, error) {
	var ms []reactionModel
	tx := r.db.WithContext(ctx).Where("post_id = ?", postID).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Reaction, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainReaction(m))
	}
	return out, nil
}

// ToggleReaction adds the reaction if absent and removes it if present.
// It reports whether the reaction exists after the call.
func (r *PostRepository) ToggleReaction(ctx context.Context, postID, userID int64, kind string) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing reactionModel
		err := tx.Where("post_id = ? AND user_id = ? AND kind = ?", postID, userID, kind).
			First(&existing).Error
		if err == nil {
			added = false
			return tx.Delete(&reactionModel{}, existing.ID).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		added = true
		return tx.Create(&reactionModel{PostID: postID, UserID: userID, Kind: kind}).Error
	})
	return added, err
}
