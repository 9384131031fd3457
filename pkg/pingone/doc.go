/*
Package pingone is the console's client for the PingOne MFA gateway API.

The client covers exactly the operations the registration console drives:
device registration, device authentication initialization, OTP validation,
device listing, device authentication policy listing, and worker token
acquisition via the client credentials grant.

	client := pingone.NewClient(pingone.ClientConfig{
		APIBaseURL:  "https://gateway.example.com",
		AuthBaseURL: "https://auth.pingone.com",
		ClientID:    "worker-client",
		ClientSecret: "secret",
		Region:      "NA",
	})

	resp, err := client.RegisterDevice(ctx, workerToken, pingone.RegisterDeviceRequest{
		EnvironmentID: envID,
		Username:      "alice",
		Type:          "SMS",
		TokenType:     "worker",
		Status:        "ACTIVE",
		Phone:         "+1.5551234567",
	})

Errors from the gateway are returned as *APIError with the upstream status
code, error code and message preserved. Use IsTooManyDevices to detect the
device cap condition, which the console renders with a remediation hint.
*/
package pingone
