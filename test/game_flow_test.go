package test

import (
	"net/http"

	"github.com/gamepedia/community-service/internal/dto"
)

func (s *IntegrationTestSuite) Test_GameRequestFlow() {
	resp := s.postJSON("/account/register", dto.RegisterRequest{
		ID:       "gamer",
		Pw:       "secret123",
		Nickname: "gamer",
		Email:    "gamer@test.com",
	}, "")
	resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	loginResp := s.login("gamer", "secret123")

	// requesting a game needs a token
	resp = s.postJSON("/game/request", dto.GameRequestRequest{Title: "Integration Quest"}, "")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.postJSON("/game/request", dto.GameRequestRequest{Title: "Integration Quest"}, loginResp.Token)
	resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)
}

func (s *IntegrationTestSuite) Test_PublicGameListing() {
	resp := s.getJSON("/game?page=1", "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.getJSON("/game/popular?page=1", "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.getJSON("/game/search?q=quest", "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}
