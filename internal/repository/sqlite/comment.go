package sqlite

import (
	"context"
	"time"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type commentRow struct {
	ID          int64     `db:"id"`
	PostID      int64     `db:"post_id"`
	AuthorID    uuid.UUID `db:"author_id"`
	Content     string    `db:"content"`
	PublishedAt time.Time `db:"published_at"`
	Username    string    `db:"username"`
	FullName    string    `db:"full_name"`
}

func (r commentRow) toModel() *model.FullComment {
	return &model.FullComment{
		Comment: model.Comment{
			ID:          r.ID,
			PostID:      r.PostID,
			AuthorID:    r.AuthorID,
			Content:     r.Content,
			PublishedAt: r.PublishedAt,
		},
		Author: model.UserAuthor{
			ID:       r.AuthorID,
			Username: r.Username,
			FullName: r.FullName,
		},
	}
}

const selectFullComment = `SELECT
	c.id, c.post_id, c.author_id, c.content, c.published_at, u.username, u.full_name
	FROM comments c
	JOIN cached_users u ON c.author_id = u.id`

type commentRepo struct {
	db *sqlx.DB
}

func newCommentRepo(db *sqlx.DB) repository.Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if comment.PublishedAt.IsZero() {
		comment.PublishedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(
		ctx,
		"INSERT INTO comments(post_id, author_id, content, published_at) VALUES(?, ?, ?, ?)",
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.PublishedAt.UTC(),
	)
	if err != nil {
		return nil, err
	}

	comment.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.FullComment, error) {
	var row commentRow
	if err := r.db.GetContext(ctx, &row, selectFullComment+" WHERE c.id = ?", id); err != nil {
		return nil, notFound(err)
	}
	return row.toModel(), nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, error) {
	repository.MaxLimit(&limit)

	var rows []commentRow
	if err := r.db.SelectContext(
		ctx,
		&rows,
		selectFullComment+`
		WHERE c.post_id = ?
		ORDER BY c.published_at DESC, c.id DESC
		LIMIT ? OFFSET ?`,
		postID,
		limit,
		offset,
	); err != nil {
		return nil, err
	}

	comments := make([]*model.FullComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toModel())
	}
	return comments, nil
}

func (r *commentRepo) CountPostComments(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(id) FROM comments WHERE post_id = ?", postID)
	return count, err
}

func (r *commentRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE comments SET content = ? WHERE id = ?", content, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res)
}
