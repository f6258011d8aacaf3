package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumarket/elearn-api/internal/dto"
	"github.com/edumarket/elearn-api/internal/service"
	"github.com/edumarket/elearn-api/internal/utils"
)

// DiscussionHandler provides HTTP endpoints for course forums.
type DiscussionHandler struct {
	service service.DiscussionService
	logger  zerolog.Logger
}

// NewDiscussionHandler constructs a handler instance.
func NewDiscussionHandler(service service.DiscussionService, logger zerolog.Logger) *DiscussionHandler {
	return &DiscussionHandler{
		service: service,
		logger:  logger.With().Str("component", "discussion_handler").Logger(),
	}
}

// Register binds the discussion routes.
func (h *DiscussionHandler) Register(router fiber.Router) {
	router.Get("/:courseID/posts", h.listPosts)
	router.Post("/:courseID/posts", h.createPost)
	router.Get("/:courseID/posts/:postID", h.getPost)
	router.Post("/:courseID/posts/:postID/upvote", h.upvotePost)
}

func (h *DiscussionHandler) listPosts(c *fiber.Ctx) error {
	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	posts, err := h.service.ListPosts(withRequestContext(c), courseID, limit, offset)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "posts", posts)
}

func (h *DiscussionHandler) createPost(c *fiber.Ctx) error {
	author := accountFromContext(c)
	if author == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.DiscussionPostCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CreatePost(withRequestContext(c), author, courseID, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "post created", response)
}

func (h *DiscussionHandler) getPost(c *fiber.Ctx) error {
	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	postID, err := parseUintParamValue(c, "postID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	post, err := h.service.GetPost(withRequestContext(c), courseID, postID)
	if err != nil {
		return sendServiceError(c, err)
	}
	if post == nil {
		return utils.SendErrorWithCode(c, fiber.StatusNotFound, service.CodeNotFound, "post not found")
	}

	return utils.SendSuccess(c, "post", post)
}

func (h *DiscussionHandler) upvotePost(c *fiber.Ctx) error {
	courseID, err := parseUintParamValue(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	postID, err := parseUintParamValue(c, "postID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.UpvotePost(withRequestContext(c), courseID, postID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "post upvoted", response)
}
