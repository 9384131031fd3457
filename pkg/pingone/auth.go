package pingone

import (
	"context"
	"net/http"
)

// InitAuthentication starts a device authentication run for testing a
// registered device. The returned status is normalized: when the gateway
// reports the state in nextStep instead of status, Status carries it.
func (c *Client) InitAuthentication(
	ctx context.Context,
	workerToken string,
	req InitAuthenticationRequest,
) (InitAuthenticationResponse, error) {
	if req.Region == "" {
		req.Region = c.cfg.Region
	}

	var resp InitAuthenticationResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/pingone/mfa/device-authentication-init", workerToken, req, &resp)
	if err != nil {
		return InitAuthenticationResponse{}, err
	}

	if resp.Status == "" {
		resp.Status = resp.NextStep
	}
	return resp, nil
}

// ValidateOTP validates an OTP for a device authentication or activation.
func (c *Client) ValidateOTP(
	ctx context.Context,
	req ValidateOTPRequest,
) (ValidateOTPResponse, error) {
	if req.Region == "" {
		req.Region = c.cfg.Region
	}

	var resp ValidateOTPResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/pingone/mfa/validate-otp-for-device", req.WorkerToken, req, &resp)
	if err != nil {
		return ValidateOTPResponse{}, err
	}
	return resp, nil
}
