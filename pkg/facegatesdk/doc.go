/*
Package facegatesdk is a Go client for the facegate gateway.

# Getting started

	client := facegatesdk.NewSDKClient("http://localhost:5000")

	health, err := client.GetHealth(ctx)
	if err != nil {
		log.Fatalf("gateway unhealthy: %v", err)
	}

# Vendor calls

Person, camera, event and recognition calls are relayed to the airaFace
server. Their results come back as a VendorResponse holding the vendor's
own status code and JSON payload:

	resp, err := client.CreatePerson(ctx, map[string]any{
		"fullname":   "Ada Lovelace",
		"employeeno": "A0001",
	})
	if err != nil {
		return err // the gateway failed, see APIError
	}
	if !resp.OK() {
		log.Printf("vendor said %d: %s", resp.StatusCode, resp.Payload)
	}

# Errors

Failures of the gateway itself are *APIError values and match the Err*
sentinels by status code:

	_, err := client.Snapshot(ctx, "cam-7")
	switch {
	case errors.Is(err, facegatesdk.ErrNotFound):
		// unknown camera
	case errors.Is(err, facegatesdk.ErrCameraUnavailable):
		// camera offline
	}
*/
package facegatesdk
