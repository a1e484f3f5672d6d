package http

import (
	"net/http"

	"github.com/aussiebroadwan/facegate/pkg/airaface"
)

// eventOverridable lists the event handler fields a caller may set.
var eventOverridable = []string{
	"name", "enable", "group_list", "divice_groups", "remarks", "https",
	"method", "host", "port", "url", "custom_data", "note",
}

// eventHandlerBody builds a createeventhandle body from the vendor defaults
// and the overridable fields of in.
func eventHandlerBody(in map[string]any) map[string]any {
	out := map[string]any{
		"action_type":              "http",
		"name":                     "event_handler",
		"enable":                   true,
		"group_list":               []string{"All Person"},
		"divice_groups":            []string{},
		"temperature_trigger_rule": 0,
		"remarks":                  "",
		"https":                    true,
		"method":                   "GET",
		"host":                     "",
		"port":                     80,
		"data_type":                "JSON",
		"language":                 "en",
		"url":                      "",
		"custom_data":              "",
		"note":                     "",
	}
	for _, k := range eventOverridable {
		if v, ok := in[k]; ok {
			out[k] = v
		}
	}
	return out
}

// EventsHandler relays event handler management to the vendor.
type EventsHandler struct {
	Forwarder Forwarder
}

// HandleCreate handles POST /api/events
//
//	@Summary		Create event handler
//	@Description	Creates a vendor event handler. Fields the caller omits take the vendor defaults (HTTP action, all persons, port 80).
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			request	body		map[string]any			true	"Event handler fields"
//	@Success		200		{object}	map[string]any			"Vendor response"
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid body"
//	@Failure		500		{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodPost,
		Endpoint: "/createeventhandle",
		Body:     eventHandlerBody(body),
	})
}

// HandleModify handles PUT /api/events/{id}
//
//	@Summary		Modify event handler
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Event handler ID"
//	@Param			request	body		map[string]any			true	"Fields to change"
//	@Success		200		{object}	map[string]any			"Vendor response"
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid body"
//	@Failure		500		{object}	httpx.ErrorResponse	"Vendor request failed"
//	@Router			/api/events/{id} [put].
func (h *EventsHandler) HandleModify(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	body["id"] = r.PathValue("id")

	forward(w, r, h.Forwarder, airaface.Request{
		Method:   http.MethodPost,
		Endpoint: "/modifyeventhandle",
		Body:     body,
	})
}
