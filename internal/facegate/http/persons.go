package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/facegate/pkg/airaface"
)

// PersonsHandler relays person management to the vendor.
type PersonsHandler struct {
	Forwarder Forwarder
}

// HandleList handles GET /api/persons
//
//	@Summary		Query persons
//	@Description	Forwards the query string to the vendor person query.
//	@Tags			Persons
//	@Produce		json
//	@Success		200	{object}	map[string]any			"Vendor response"
//	@Failure		500	{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/persons [get].
func (h *PersonsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodGet,
		Endpoint: "/queryperson",
		Query:    r.URL.Query(),
	})
}

// HandleCreate handles POST /api/persons
//
//	@Summary		Create person
//	@Description	Creates a person on the vendor. fullname is required.
//	@Tags			Persons
//	@Accept			json
//	@Produce		json
//	@Param			request	body		map[string]any			true	"Person record"
//	@Success		200		{object}	map[string]any			"Vendor response"
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid body or missing fullname"
//	@Failure		500		{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/persons [post].
func (h *PersonsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	if name, _ := body["fullname"].(string); strings.TrimSpace(name) == "" {
		writeVendorError(w, r, airaface.NewValidationError("fullname is required"))
		return
	}

	forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodPost,
		Endpoint: "/createperson",
		Body:     body,
	})
}

// HandleModify handles PUT /api/persons/{id}
//
//	@Summary		Modify person
//	@Description	Merges the path id into the body and forwards it to the vendor.
//	@Tags			Persons
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Person ID"
//	@Param			request	body		map[string]any			true	"Fields to change"
//	@Success		200		{object}	map[string]any			"Vendor response"
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid body"
//	@Failure		500		{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/persons/{id} [put].
func (h *PersonsHandler) HandleModify(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	body["id"] = r.PathValue("id")

	forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodPost,
		Endpoint: "/modifyperson",
		Body:     body,
	})
}
