package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gamepedia/community-service/internal/dto"
	"github.com/gamepedia/community-service/pkg/response"
	"github.com/labstack/echo/v4"
)

func (s *IntegrationTestSuite) postJSON(path string, payload interface{}, token string) *http.Response {
	reqBody, err := json.Marshal(payload)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://localhost:%s/api/v1%s", s.app.Config.ServicePort, path),
		bytes.NewBuffer(reqBody),
	)
	s.Require().NoError(err)

	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	client := http.Client{}
	resp, err := client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *IntegrationTestSuite) getJSON(path string, token string) *http.Response {
	req, err := http.NewRequest(http.MethodGet,
		fmt.Sprintf("http://localhost:%s/api/v1%s", s.app.Config.ServicePort, path), nil)
	s.Require().NoError(err)

	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	client := http.Client{}
	resp, err := client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *IntegrationTestSuite) login(id string, pw string) dto.LoginResponse {
	resp := s.postJSON("/account/login", dto.LoginRequest{ID: id, Pw: pw}, "")
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body := response.SuccessResponse{}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))

	data, err := json.Marshal(body.Data)
	s.Require().NoError(err)

	loginResp := dto.LoginResponse{}
	s.Require().NoError(json.Unmarshal(data, &loginResp))

	return loginResp
}

func (s *IntegrationTestSuite) Test_RegisterAndLogin() {
	resp := s.postJSON("/account/register", dto.RegisterRequest{
		ID:       "itester",
		Pw:       "secret123",
		Nickname: "itester",
		Email:    "itester@test.com",
	}, "")
	resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	// a second registration with the same id must conflict
	resp = s.postJSON("/account/register", dto.RegisterRequest{
		ID:       "itester",
		Pw:       "secret123",
		Nickname: "other",
		Email:    "other@test.com",
	}, "")
	resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)

	loginResp := s.login("itester", "secret123")
	s.NotEmpty(loginResp.Token)
	s.False(loginResp.IsAdmin)
}

func (s *IntegrationTestSuite) Test_ProtectedRouteRequiresToken() {
	resp := s.getJSON("/account", "")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.getJSON("/account", "not-a-valid-token")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) Test_AdminRouteRejectsRegularUser() {
	resp := s.postJSON("/account/register", dto.RegisterRequest{
		ID:       "regular",
		Pw:       "secret123",
		Nickname: "regular",
		Email:    "regular@test.com",
	}, "")
	resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	loginResp := s.login("regular", "secret123")

	resp = s.getJSON("/admin/request/all", loginResp.Token)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
