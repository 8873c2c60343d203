package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) repository.Comment {
	return &commentRepo{
		db: db,
	}
}

const selectFullComment = `SELECT
	c.id, c.post_id, c.author_id, c.content, c.published_at, u.username, u.full_name
	FROM comments c
	JOIN cached_users u ON c.author_id = u.id`

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if comment.PublishedAt.IsZero() {
		comment.PublishedAt = time.Now().UTC()
	}
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(post_id, author_id, content, published_at) VALUES($1, $2, $3, $4) RETURNING id",
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.PublishedAt,
	).Scan(&comment.ID); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.FullComment, error) {
	row := r.db.QueryRow(ctx, selectFullComment+" WHERE c.id = $1", id)

	comment, err := scanFullComment(row)
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, error) {
	repository.MaxLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		selectFullComment+`
		WHERE c.post_id = $1
		ORDER BY c.published_at DESC, c.id DESC
		LIMIT $2
		OFFSET $3`,
		postID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*model.FullComment, 0, limit)
	for rows.Next() {
		comment, err := scanFullComment(rows)
		if err != nil {
			return nil, err
		}

		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) CountPostComments(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(id) FROM comments WHERE post_id = $1", postID).Scan(&count)
	return count, err
}

func (r *commentRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	tag, err := r.db.Exec(ctx, "UPDATE comments SET content = $1 WHERE id = $2", content, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanFullComment(row pgx.Row) (*model.FullComment, error) {
	var comment model.FullComment
	if err := row.Scan(
		&comment.Comment.ID,
		&comment.Comment.PostID,
		&comment.Comment.AuthorID,
		&comment.Comment.Content,
		&comment.Comment.PublishedAt,
		&comment.Author.Username,
		&comment.Author.FullName,
	); err != nil {
		return nil, err
	}
	comment.Author.ID = comment.Comment.AuthorID

	return &comment, nil
}
