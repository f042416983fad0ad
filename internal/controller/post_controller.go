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

type PostController struct {
	service service.PostService
}

func CreatePostController(e *echo.Group, service service.PostService, checkLogin echo.MiddlewareFunc) {
	pc := PostController{
		service: service,
	}
	e.GET("/game/:gameidx/post", pc.GetPosts)

	e.POST("/game/:gameidx/post", pc.AddPost, checkLogin)
	e.GET("/post/:postidx", pc.GetPostDetail, checkLogin)
	e.POST("/post/image", pc.UploadPostImage, checkLogin)
	e.DELETE("/post/:postidx", pc.DeletePost, checkLogin)
}

func (c *PostController) AddPost(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	gameIdx, err := strconv.ParseInt(e.Param("gameidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload := dto.PostRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddPost").Msg("")
	}

	err = c.service.AddPost(e.Request().Context(), claims.UserIdx, gameIdx, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", nil)
}

func (c *PostController) GetPosts(e echo.Context) error {
	gameIdx, err := strconv.ParseInt(e.Param("gameidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	filter := pkgdto.Filter{}
	err = e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPosts").Msg("")
	}

	respPayload, err := c.service.GetPosts(e.Request().Context(), gameIdx, filter.Page, filter.Q)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *PostController) GetPostDetail(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	postIdx, err := strconv.ParseInt(e.Param("postidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	respPayload, err := c.service.GetPostDetail(e.Request().Context(), postIdx, claims.UserIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *PostController) UploadPostImage(e echo.Context) error {
	_, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	file, err := readFormFile(e, "image")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	respPayload, err := c.service.UploadPostImage(e.Request().Context(), file.Filename, file.ContentType, file.Body)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *PostController) DeletePost(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	postIdx, err := strconv.ParseInt(e.Param("postidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.DeletePost(e.Request().Context(), postIdx, claims.UserIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
