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

type GameController struct {
	service service.GameService
}

func CreateGameController(e *echo.Group, service service.GameService, checkLogin echo.MiddlewareFunc) {
	gc := GameController{
		service: service,
	}
	e.GET("/game", gc.GetGames)
	e.GET("/game/search", gc.SearchGames)
	e.GET("/game/popular", gc.GetPopularGames)
	e.GET("/game/:gameidx/banner", gc.GetBanners)
	e.GET("/game/:gameidx/history", gc.GetHistories)
	e.GET("/game/:gameidx/history/:historyidx", gc.GetHistoryDetail)

	e.POST("/game/request", gc.AddGameRequest, checkLogin)
	e.POST("/game/:gameidx/wiki", gc.ReviseWiki, checkLogin)
	e.POST("/game/:gameidx/wiki/image", gc.UploadWikiImage, checkLogin)
}

func (c *GameController) AddGameRequest(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.GameRequestRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddGameRequest").Msg("")
	}

	err = c.service.AddGameRequest(e.Request().Context(), claims.UserIdx, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", nil)
}

func (c *GameController) GetGames(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetGames").Msg("")
	}

	respPayload, err := c.service.GetGames(e.Request().Context(), filter.Page)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *GameController) SearchGames(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "SearchGames").Msg("")
	}

	respPayload, err := c.service.SearchGames(e.Request().Context(), filter.Q)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *GameController) GetPopularGames(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPopularGames").Msg("")
	}

	respPayload, err := c.service.GetPopularGames(e.Request().Context(), filter.Page)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *GameController) GetBanners(e echo.Context) error {
	gameIdx, err := strconv.ParseInt(e.Param("gameidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	respPayload, err := c.service.GetBanners(e.Request().Context(), gameIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *GameController) GetHistories(e echo.Context) error {
	gameIdx, err := strconv.ParseInt(e.Param("gameidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	respPayload, err := c.service.GetHistories(e.Request().Context(), gameIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *GameController) GetHistoryDetail(e echo.Context) error {
	gameIdx, err := strconv.ParseInt(e.Param("gameidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	historyIdx, err := strconv.ParseInt(e.Param("historyidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	respPayload, err := c.service.GetHistoryDetail(e.Request().Context(), historyIdx, gameIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *GameController) ReviseWiki(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	gameIdx, err := strconv.ParseInt(e.Param("gameidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload := dto.WikiRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "ReviseWiki").Msg("")
	}

	err = c.service.ReviseWiki(e.Request().Context(), gameIdx, claims.UserIdx, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", nil)
}

func (c *GameController) UploadWikiImage(e echo.Context) error {
	_, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	gameIdx, err := strconv.ParseInt(e.Param("gameidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	file, err := readFormFile(e, "image")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	respPayload, err := c.service.UploadWikiImage(e.Request().Context(), gameIdx, file.Filename, file.ContentType, file.Body)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}
