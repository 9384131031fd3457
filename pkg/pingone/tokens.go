package pingone

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ClientCredentialsToken obtains a worker access token from the PingOne
// token endpoint using the client credentials grant.
func (c *Client) ClientCredentialsToken(ctx context.Context) (TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	endpoint := fmt.Sprintf("%s/%s/as/token", c.cfg.AuthBaseURL, c.cfg.EnvironmentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return TokenResponse{}, err
	}
	return tokenResp, nil
}
