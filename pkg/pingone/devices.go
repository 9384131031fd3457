package pingone

import (
	"context"
	"net/http"
	"net/url"
)

// RegisterDevice registers an MFA device for a user. The worker token is
// always required for gateway access; user-flow registrations additionally
// carry the user token in the payload.
func (c *Client) RegisterDevice(
	ctx context.Context,
	workerToken string,
	req RegisterDeviceRequest,
) (RegisterDeviceResponse, error) {
	var resp RegisterDeviceResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/pingone/mfa/register-device", workerToken, req, &resp)
	if err != nil {
		return RegisterDeviceResponse{}, err
	}
	return resp, nil
}

// ListDevices fetches one page of a user's registered devices. Pass an
// empty cursor for the first page; an empty cursor on the response means
// there are no further pages.
func (c *Client) ListDevices(
	ctx context.Context,
	workerToken, environmentID, username, cursor string,
) (DevicesPage, error) {
	q := url.Values{}
	q.Set("environmentId", environmentID)
	q.Set("username", username)
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var page DevicesPage
	err := c.doJSON(ctx, http.MethodGet, "/api/pingone/mfa/devices?"+q.Encode(), workerToken, nil, &page)
	if err != nil {
		return DevicesPage{}, err
	}
	return page, nil
}

// DeleteDevice removes a registered device. Used by the console's device
// management view when the gateway reports the device cap.
func (c *Client) DeleteDevice(
	ctx context.Context,
	workerToken, environmentID, username, deviceID string,
) error {
	q := url.Values{}
	q.Set("environmentId", environmentID)
	q.Set("username", username)
	q.Set("deviceId", deviceID)

	return c.doJSON(ctx, http.MethodDelete, "/api/pingone/mfa/device?"+q.Encode(), workerToken, nil, nil)
}

// ListPolicies fetches the device authentication policies for an
// environment.
func (c *Client) ListPolicies(
	ctx context.Context,
	workerToken, environmentID string,
) ([]DeviceAuthenticationPolicy, error) {
	q := url.Values{}
	q.Set("environmentId", environmentID)

	var resp struct {
		Policies []DeviceAuthenticationPolicy `json:"policies"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/pingone/mfa/device-authentication-policies?"+q.Encode(), workerToken, nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Policies, nil
}
