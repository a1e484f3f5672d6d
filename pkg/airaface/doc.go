/*
Package airaface talks to the airaFace Lite appliance API on behalf of the
facegate service.

# Overview

The vendor API authenticates with an opaque session token obtained from
POST /generatetoken and passed on every later call in a "token" header.
Tokens live for 60 minutes; this package caches one token and treats it as
expired 5 minutes early.

	client := airaface.New(airaface.Config{
		Protocol: "https",
		Host:     "192.168.1.100",
		Port:     "443",
		Username: "admin",
		Password: "admin",
	})

	resp, err := client.Send(ctx, airaface.Request{
		Method:   http.MethodGet,
		Endpoint: "/queryperson",
	})

# Errors

Send returns the vendor's answer as-is, whatever its status. Only failures
to obtain an answer are errors, and they are always *Error with one of a
closed set of kinds:

	var aerr *airaface.Error
	if errors.As(err, &aerr) {
		status := aerr.HTTPStatus()
		...
	}

	if errors.Is(err, airaface.ErrRequestFailed) {
		// vendor did not answer
	}

# Concurrency

TokenManager and Forwarder are safe for concurrent use. The cached token is
an immutable value swapped atomically, and concurrent refreshes share a
single login exchange.
*/
package airaface
