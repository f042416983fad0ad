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

type AdminController struct {
	service service.AdminService
}

func CreateAdminController(e *echo.Group, service service.AdminService, checkLogin echo.MiddlewareFunc, checkAdmin echo.MiddlewareFunc) {
	ac := AdminController{
		service: service,
	}
	e.GET("/admin/request/all", ac.GetGameRequests, checkLogin, checkAdmin)
	e.POST("/admin/game", ac.ApproveGameRequest, checkLogin, checkAdmin)
	e.DELETE("/admin/request/:requestidx", ac.DenyGameRequest, checkLogin, checkAdmin)
}

func (c *AdminController) GetGameRequests(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetGameRequests").Msg("")
	}

	requests, pagination, err := c.service.GetGameRequests(e.Request().Context(), filter.Page)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", map[string]interface{}{
		"requests":   requests,
		"pagination": pagination,
	})
}

func (c *AdminController) ApproveGameRequest(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ApproveGameRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "ApproveGameRequest").Msg("")
	}

	thumbnail, err := readFormFile(e, "thumbnail")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	banner, err := readFormFile(e, "banner")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	err = c.service.ApproveGameRequest(e.Request().Context(), claims.UserIdx, payload, thumbnail, banner)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", nil)
}

func (c *AdminController) DenyGameRequest(e echo.Context) error {
	requestIdx, err := strconv.ParseInt(e.Param("requestidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.DenyGameRequest(e.Request().Context(), requestIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
