package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/facegate/pkg/airaface"
	"github.com/aussiebroadwan/facegate/pkg/httpx"
	"github.com/aussiebroadwan/facegate/pkg/slogx"
)

// writeVendorError maps a token or forwarding failure onto its status code.
// Anything that is not an *airaface.Error becomes a generic 500.
func writeVendorError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var aerr *airaface.Error
	if !errors.As(err, &aerr) {
		log.Error("unexpected vendor error", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Warn("vendor call failed",
		"kind", aerr.Kind.String(),
		"vendor_status", aerr.StatusCode,
		"error", aerr.Error(),
	)
	httpx.WriteError(w, aerr.HTTPStatus(), aerr.Error())
}
