package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memohai/chirp/internal/auth"
	"github.com/memohai/chirp/internal/feed"
)

// PostsHandler serves the global feed, single posts, per-user feeds and post creation.
type PostsHandler struct {
	feed   *feed.Service
	logger *slog.Logger
}

// CreatePostRequest is the body for POST /posts. The author comes from the session.
type CreatePostRequest struct {
	Content string `json:"content"`
}

func NewPostsHandler(log *slog.Logger, feedService *feed.Service) *PostsHandler {
	return &PostsHandler{
		feed:   feedService,
		logger: log.With(slog.String("handler", "posts")),
	}
}

func (h *PostsHandler) Register(e *echo.Echo) {
	e.GET("/posts", h.List)
	e.GET("/posts/:id", h.Get)
	e.POST("/posts", h.Create)
	e.GET("/users/:id/posts", h.ListByUser)
}

// List godoc
// @Summary List recent posts
// @Description Newest posts with their authors, at most 100
// @Tags posts
// @Success 200 {array} feed.FeedEntry
// @Failure 500 {object} ErrorResponse
// @Router /posts [get]
func (h *PostsHandler) List(c echo.Context) error {
	entries, err := h.feed.ListRecentPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Get godoc
// @Summary Get post
// @Description Get a single post with its author
// @Tags posts
// @Param id path string true "Post ID"
// @Success 200 {object} feed.FeedEntry
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{id} [get]
func (h *PostsHandler) Get(c echo.Context) error {
	entry, err := h.feed.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// ListByUser godoc
// @Summary List posts by user
// @Description Newest posts by one author, at most 100
// @Tags posts
// @Param id path string true "User ID"
// @Success 200 {array} feed.FeedEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/posts [get]
func (h *PostsHandler) ListByUser(c echo.Context) error {
	entries, err := h.feed.ListPostsByAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Create godoc
// @Summary Create post
// @Description Publish an emoji-only post as the signed-in user
// @Tags posts
// @Param payload body CreatePostRequest true "Post content"
// @Success 201 {object} posts.Post
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts [post]
func (h *PostsHandler) Create(c echo.Context) error {
	// blank when there is no session; CreatePost rejects that as unauthorized
	authorID, _ := auth.UserIDFromContext(c)
	var req CreatePostRequest
	if err := bindJSON(c, &req); err != nil {
		if authorID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "sign in to continue")
		}
		return err
	}
	post, err := h.feed.CreatePost(c.Request().Context(), authorID, req.Content)
	if err != nil {
		return err
	}
	h.logger.Info("post created", slog.String("post_id", post.ID), slog.String("author_id", post.AuthorID))
	return c.JSON(http.StatusCreated, post)
}
