// Package client talks to the comment API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

func New(cfg config.ClientConfig, logger *zap.Logger) *Client {
	cfg = cfg.Normalized()
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// CurrentUserID returns the id carried by the access token, if there is one.
func (c *Client) CurrentUserID() (uuid.UUID, bool) {
	if c.token == "" {
		return uuid.Nil, false
	}

	idString, err := utils.SubjectID(c.token)
	if err != nil {
		c.logger.Sugar().Warnf("failed to read access token: %s", err.Error())
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		c.logger.Sugar().Warnf("access token carries an invalid id: %s", err.Error())
		return uuid.Nil, false
	}

	return id, true
}

func (c *Client) ListComments(ctx context.Context, postID int64, page int) (*dto.CommentPage, error) {
	query := url.Values{}
	query.Set("post", strconv.FormatInt(postID, 10))
	query.Set("page", strconv.Itoa(page))

	var result dto.CommentPage
	if err := c.do(ctx, http.MethodGet, dto.CommentsPath+"?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateComment(ctx context.Context, postID int64, content string) (*dto.CommentReadFull, error) {
	body := dto.CreateCommentRequest{
		Content: content,
		Post:    dto.PostIRI(postID),
	}

	var result dto.CommentReadFull
	if err := c.do(ctx, http.MethodPost, dto.CommentsPath, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateComment replaces the content of the comment at locator iri.
func (c *Client) UpdateComment(ctx context.Context, iri string, content string) (*dto.CommentReadFull, error) {
	var result dto.CommentReadFull
	if err := c.do(ctx, http.MethodPut, iri, dto.UpdateCommentRequest{Content: content}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteComment(ctx context.Context, iri string) error {
	return c.do(ctx, http.MethodDelete, iri, nil, nil)
}

func (c *Client) GetPost(ctx context.Context, postID int64) (*dto.PostRead, error) {
	var result dto.PostRead
	if err := c.do(ctx, http.MethodGet, dto.PostIRI(postID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Sugar().Errorf("failed to %s %s: %s", method, path, err.Error())
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
	)

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var v dto.ValidationResponse
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return &StatusError{StatusCode: resp.StatusCode}
		}
		return newValidationError(v.Violations)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var basic dto.BasicResponse
		_ = json.NewDecoder(resp.Body).Decode(&basic)
		return &StatusError{StatusCode: resp.StatusCode, Details: basic.Details}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
