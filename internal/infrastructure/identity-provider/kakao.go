package identityprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gamepedia/community-service/config"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/gamepedia/community-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// ExternalIdentity is the opaque result of an authorization-code exchange:
// the provider-side subject key and the account email.
type ExternalIdentity struct {
	Key   string
	Email string
}

type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (ExternalIdentity, error)
}

type KakaoIdentityProvider struct {
	config config.KakaoConfig
	cb     *gobreaker.CircuitBreaker[[]byte]
}

func CreateKakaoIdentityProvider(config config.KakaoConfig, cb *gobreaker.CircuitBreaker[[]byte]) IdentityProvider {
	return &KakaoIdentityProvider{config: config, cb: cb}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type userInfoResponse struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email string `json:"email"`
	} `json:"kakao_account"`
}

func (p *KakaoIdentityProvider) Exchange(ctx context.Context, code string) (identity ExternalIdentity, err error) {
	body, err := p.cb.Execute(func() ([]byte, error) {
		params := url.Values{}
		params.Set("grant_type", "authorization_code")
		params.Set("client_id", p.config.RestAPIKey)
		params.Set("redirect_uri", p.config.RedirectURI)
		params.Set("code", code)

		statusCode, tokenBody, err := httpclient.SendRequest(httpclient.HttpRequest{
			URL:    p.config.TokenURL,
			Method: http.MethodPost,
			Body:   []byte(params.Encode()),
			Headers: map[string]string{
				"Content-Type": "application/x-www-form-urlencoded",
			},
		})
		if err != nil {
			return nil, err
		}
		if statusCode != http.StatusOK {
			return nil, fmt.Errorf("token exchange returned status %d", statusCode)
		}

		tokenResp := tokenResponse{}
		if err := json.Unmarshal(tokenBody, &tokenResp); err != nil {
			return nil, err
		}

		statusCode, userBody, err := httpclient.SendRequest(httpclient.HttpRequest{
			URL:    p.config.UserInfoURL,
			Method: http.MethodGet,
			Headers: map[string]string{
				"Authorization": "Bearer " + tokenResp.AccessToken,
			},
		})
		if err != nil {
			return nil, err
		}
		if statusCode != http.StatusOK {
			return nil, fmt.Errorf("user info returned status %d", statusCode)
		}

		return userBody, nil
	})
	if err != nil {
		log.Error().Err(err).Str("component", "Exchange").Msg("")
		return identity, errs.ErrIdentityProvider
	}

	userInfo := userInfoResponse{}
	if err := json.Unmarshal(body, &userInfo); err != nil {
		log.Error().Err(err).Str("component", "Exchange").Msg("")
		return identity, errs.ErrIdentityProvider
	}

	identity.Key = fmt.Sprintf("%d", userInfo.ID)
	identity.Email = userInfo.KakaoAccount.Email

	return identity, nil
}
