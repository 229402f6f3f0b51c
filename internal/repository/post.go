package repository

import (
	"context"
	"fmt"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Exists(ctx context.Context, postID uint) (bool, error)
	AddPost(ctx context.Context, authorHandle, content string, mediaIDs []uint) (uint, error)
	DeletePost(ctx context.Context, authorHandle string, postID uint) error
	FeedFor(ctx context.Context, viewerHandle string) ([]models.PostView, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
	in instrument
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, in: newInstrument("posts")}
}

func (r *postRepository) Exists(ctx context.Context, postID uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Post{}, "id = ?", postID)
}

// AddPost stores the post and claims the given media for it. Either the post
// and every attachment are saved, or nothing is.
func (r *postRepository) AddPost(ctx context.Context, authorHandle, content string, mediaIDs []uint) (uint, error) {
	var postID uint
	err := r.in.write(ctx, "AddPost", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			authorID, err := requireAccountID(tx, authorHandle)
			if err != nil {
				return err
			}

			post := models.Post{AuthorID: authorID, Content: content}
			if err := tx.Create(&post).Error; err != nil {
				return writeError("could not create post", err)
			}

			if err := attachMedia(tx, post.ID, mediaIDs); err != nil {
				return err
			}
			postID = post.ID
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return postID, nil
}

// attachMedia moves unattached media rows onto postID. Unknown ids fail with
// NOT_FOUND, media owned by another post with CONFLICT.
func attachMedia(tx *gorm.DB, postID uint, mediaIDs []uint) error {
	ids := uniqueIDs(mediaIDs)
	if len(ids) == 0 {
		return nil
	}

	res := tx.Model(&models.Media{}).
		Where("id IN ? AND post_id IS NULL", ids).
		Update("post_id", postID)
	if res.Error != nil {
		return writeError("could not attach media", res.Error)
	}
	if res.RowsAffected == int64(len(ids)) {
		return nil
	}

	var found int64
	if err := tx.Model(&models.Media{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
		return readError(err)
	}
	if found < int64(len(ids)) {
		return models.NewNotFoundMessage("media not found")
	}
	return models.NewConflictError("media already attached to a post")
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DeletePost removes a post owned by authorHandle. A post that exists but
// belongs to someone else yields PERMISSION_DENIED.
func (r *postRepository) DeletePost(ctx context.Context, authorHandle string, postID uint) error {
	return r.in.write(ctx, "DeletePost", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			authorID, err := requireAccountID(tx, authorHandle)
			if err != nil {
				return err
			}
			if err := requirePost(tx, postID); err != nil {
				return err
			}

			res := tx.Where("id = ? AND author_id = ?", postID, authorID).Delete(&models.Post{})
			if res.Error != nil {
				return writeError("could not delete post", res.Error)
			}
			if res.RowsAffected == 0 {
				return models.NewPermissionError(fmt.Sprintf("post %d does not belong to the caller", postID))
			}
			return nil
		})
	})
}

// FeedFor returns posts written by accounts the viewer follows, oldest first.
// Authors, attachments and likes are loaded with one query per relation.
func (r *postRepository) FeedFor(ctx context.Context, viewerHandle string) ([]models.PostView, error) {
	var feed []models.PostView
	err := r.in.observe(ctx, "FeedFor", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			viewerID, err := requireAccountID(tx, viewerHandle)
			if err != nil {
				return err
			}

			followed := tx.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", viewerID)

			var posts []models.Post
			err = tx.Where("author_id IN (?)", followed).
				Preload("Author").
				Preload("Media", func(db *gorm.DB) *gorm.DB {
					return db.Order("media.id ASC")
				}).
				Preload("Likes", func(db *gorm.DB) *gorm.DB {
					return db.Order("likes.id ASC")
				}).
				Preload("Likes.Account").
				Order("posts.id ASC").
				Find(&posts).Error
			if err != nil {
				return readError(err)
			}

			feed = make([]models.PostView, 0, len(posts))
			for _, p := range posts {
				feed = append(feed, p.View())
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}
