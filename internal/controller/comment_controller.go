package controller

import (
	"strconv"

	"github.com/gamepedia/community-service/internal/dto"
	"github.com/gamepedia/community-service/internal/middleware"
	"github.com/gamepedia/community-service/internal/service"
	pkgdto "github.com/gamepedia/community-service/pkg/dto"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/gamepedia/community-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CommentController struct {
	service service.CommentService
}

func CreateCommentController(e *echo.Group, service service.CommentService, checkLogin echo.MiddlewareFunc) {
	cc := CommentController{
		service: service,
	}
	e.GET("/post/:postidx/comment", cc.GetComments)

	e.POST("/post/:postidx/comment", cc.AddComment, checkLogin)
	e.DELETE("/comment/:commentidx", cc.DeleteComment, checkLogin)
}

func (c *CommentController) AddComment(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	postIdx, err := strconv.ParseInt(e.Param("postidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload := dto.CommentRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddComment").Msg("")
	}

	err = c.service.AddComment(e.Request().Context(), postIdx, claims.UserIdx, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", nil)
}

func (c *CommentController) GetComments(e echo.Context) error {
	postIdx, err := strconv.ParseInt(e.Param("postidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	filter := pkgdto.Filter{}
	err = e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetComments").Msg("")
	}

	respPayload, err := c.service.GetComments(e.Request().Context(), postIdx, filter.LastIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *CommentController) DeleteComment(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	commentIdx, err := strconv.ParseInt(e.Param("commentidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.DeleteComment(e.Request().Context(), commentIdx, claims.UserIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
