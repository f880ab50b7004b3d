package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandeep2351/linkedin-clone/internal/api/metrics"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

// PostHandler serves the feed and post endpoints. Every route sits behind Auth.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Feed handles GET /posts.
//
// @Summary      Feed
// @Description  Newest posts by the caller and their connections.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   postResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /posts [get]
func (h *PostHandler) Feed(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	views, err := h.service.Feed(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostsResponse(views))
}

// Create handles POST /posts/create.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Content and optional image URL"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /posts/create [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), user.ID, req.Content, req.Image)
	if err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toPostResponse(view))
}

// Delete handles DELETE /posts/delete/:id.
//
// @Summary      Delete own post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/delete/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

// Get handles GET /posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(view))
}

// Comment handles POST /posts/:id/comment.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /posts/{id}/comment [post]
func (h *PostHandler) Comment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Comment(c.Request().Context(), user.ID, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("comment").Inc()
	return c.JSON(http.StatusOK, toPostResponse(view))
}

// Like handles POST /posts/:id/like. A second call unlikes.
//
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.service.ToggleLike(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	action := "unlike"
	if view.Post.LikedBy(user.ID) {
		action = "like"
	}
	metrics.PostActionsTotal.WithLabelValues(action).Inc()
	return c.JSON(http.StatusOK, toPostResponse(view))
}

// DeleteComment handles DELETE /posts/:id/comment/:commentId.
//
// @Summary      Delete a comment
// @Description  Allowed for the comment's author and the post's author.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Post ID"
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  messageResponse
// @Failure      401        {object}  messageResponse
// @Failure      403        {object}  messageResponse
// @Failure      404        {object}  messageResponse
// @Router       /posts/{id}/comment/{commentId} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteComment(c.Request().Context(), user.ID, c.Param("id"), c.Param("commentId")); err != nil {
		return err
	}
	metrics.PostActionsTotal.WithLabelValues("delete_comment").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Comment deleted successfully"})
}
