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

type AccountController struct {
	service service.AccountService
}

func CreateAccountController(e *echo.Group, service service.AccountService, checkLogin echo.MiddlewareFunc) {
	ac := AccountController{
		service: service,
	}
	e.POST("/account/login", ac.Login)
	e.POST("/account/register", ac.Register)
	e.GET("/account/kakao", ac.KakaoLogin)
	e.POST("/account/check/id", ac.CheckLoginID)
	e.POST("/account/check/nickname", ac.CheckNickname)
	e.POST("/account/check/email", ac.CheckEmail)
	e.POST("/account/email/verify", ac.VerifyEmailCode)
	e.POST("/account/find/id", ac.FindLoginID)

	e.GET("/account", ac.GetMyInfo, checkLogin)
	e.PUT("/account", ac.UpdateMyInfo, checkLogin)
	e.PUT("/account/password", ac.UpdatePassword, checkLogin)
	e.PUT("/account/profile-image", ac.UpdateProfileImage, checkLogin)
	e.DELETE("/account", ac.Withdraw, checkLogin)

	e.GET("/account/notification", ac.GetNotifications, checkLogin)
	e.DELETE("/account/notification/:notificationidx", ac.DeleteNotification, checkLogin)
}

func (c *AccountController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	respPayload, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *AccountController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
	}

	err = c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", nil)
}

func (c *AccountController) KakaoLogin(e echo.Context) error {
	code := e.QueryParam("code")
	if code == "" {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	respPayload, err := c.service.KakaoLogin(e.Request().Context(), code)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *AccountController) CheckLoginID(e echo.Context) error {
	payload := dto.CheckIDRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CheckLoginID").Msg("")
	}

	err = c.service.CheckLoginID(e.Request().Context(), payload.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AccountController) CheckNickname(e echo.Context) error {
	payload := dto.CheckNicknameRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CheckNickname").Msg("")
	}

	err = c.service.CheckNickname(e.Request().Context(), payload.Nickname)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AccountController) CheckEmail(e echo.Context) error {
	payload := dto.CheckEmailRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CheckEmail").Msg("")
	}

	err = c.service.CheckEmail(e.Request().Context(), payload.Email)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AccountController) VerifyEmailCode(e echo.Context) error {
	payload := dto.EmailAuthRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "VerifyEmailCode").Msg("")
	}

	err = c.service.VerifyEmailCode(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AccountController) FindLoginID(e echo.Context) error {
	payload := dto.CheckEmailRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "FindLoginID").Msg("")
	}

	respPayload, err := c.service.FindLoginID(e.Request().Context(), payload.Email)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *AccountController) GetMyInfo(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	respPayload, err := c.service.GetMyInfo(e.Request().Context(), claims.UserIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *AccountController) UpdateMyInfo(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.UpdateInfoRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateMyInfo").Msg("")
	}

	err = c.service.UpdateMyInfo(e.Request().Context(), claims.UserIdx, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AccountController) UpdatePassword(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.UpdatePasswordRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePassword").Msg("")
	}

	err = c.service.UpdatePassword(e.Request().Context(), claims.UserIdx, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AccountController) UpdateProfileImage(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	file, err := readFormFile(e, "image")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	respPayload, err := c.service.UpdateProfileImage(e.Request().Context(), claims.UserIdx, file.Filename, file.ContentType, file.Body)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *AccountController) Withdraw(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	err = c.service.Withdraw(e.Request().Context(), claims.UserIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AccountController) GetNotifications(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	filter := pkgdto.Filter{}
	err = e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetNotifications").Msg("")
	}

	respPayload, err := c.service.GetNotifications(e.Request().Context(), claims.UserIdx, filter.LastIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *AccountController) DeleteNotification(e echo.Context) error {
	claims, err := middleware.GetTokenClaims(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	notificationIdx, err := strconv.ParseInt(e.Param("notificationidx"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.DeleteNotification(e.Request().Context(), notificationIdx, claims.UserIdx)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
