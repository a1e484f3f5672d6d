// Package facegate holds the Swagger document served at /swagger/.
package facegate

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "AussieBroadWAN Team",
			"url": "https://github.com/aussiebroadwan/facegate"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"System"
				],
				"summary": "Service banner",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.IndexResponse"
						}
					}
				}
			}
		},
		"/api/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"System"
				],
				"summary": "Health check",
				"description": "Obtains a vendor token (cached when still valid). Healthy means the vendor accepted our credentials.",
				"responses": {
					"200": {
						"description": "Vendor reachable",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					},
					"500": {
						"description": "Vendor unreachable or login rejected",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					}
				}
			}
		},
		"/api/token/refresh": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"System"
				],
				"summary": "Refresh vendor token",
				"description": "Discards the cached vendor token and logs in again.",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.TokenRefreshResponse"
						}
					},
					"500": {
						"description": "Login exchange failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/websocket/info": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"System"
				],
				"summary": "Realtime channel info",
				"description": "Returns the vendor WebSocket URL for realtime recognition events and an example event.",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.WebsocketInfoResponse"
						}
					}
				}
			}
		},
		"/api/persons": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Persons"
				],
				"summary": "Query persons",
				"description": "Forwards the query string to the vendor person query.",
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Persons"
				],
				"summary": "Create person",
				"description": "Creates a person on the vendor. fullname is required.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				],
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Invalid body",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/persons/{id}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Persons"
				],
				"summary": "Modify person",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Person ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				],
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Invalid body",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/cameras": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cameras"
				],
				"summary": "Query cameras",
				"description": "Forwards the query string to the vendor camera query.",
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cameras"
				],
				"summary": "Create camera",
				"description": "Creates a camera on the vendor. On success the stream location and credentials are also kept locally.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				],
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Invalid body",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/cameras/{id}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cameras"
				],
				"summary": "Modify camera",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Camera ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				],
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Invalid body",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/events": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Events"
				],
				"summary": "Create event handler",
				"description": "Creates a vendor event handler. Fields the caller omits take the vendor defaults.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				],
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Invalid body",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/events/{id}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Events"
				],
				"summary": "Modify event handler",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Event ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				],
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Invalid body",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/recognitions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Recognitions"
				],
				"summary": "Query recognition results",
				"description": "Forwards the supported filters to the vendor. Filters that are absent or empty are dropped.",
				"parameters": [
					{
						"type": "string",
						"description": "start_time",
						"name": "start_time",
						"in": "query"
					},
					{
						"type": "string",
						"description": "end_time",
						"name": "end_time",
						"in": "query"
					},
					{
						"type": "string",
						"description": "person_id",
						"name": "person_id",
						"in": "query"
					},
					{
						"type": "string",
						"description": "camera_id",
						"name": "camera_id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "Vendor response",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"500": {
						"description": "Vendor request failed",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/camera/{id}/snapshot": {
			"get": {
				"produces": [
					"image/jpeg"
				],
				"tags": [
					"Media"
				],
				"summary": "Camera snapshot",
				"parameters": [
					{
						"type": "string",
						"description": "Camera ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"404": {
						"description": "Camera not found",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"503": {
						"description": "Camera stream unavailable",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/camera/{id}/stream": {
			"get": {
				"produces": [
					"multipart/x-mixed-replace"
				],
				"tags": [
					"Media"
				],
				"summary": "Camera MJPEG stream",
				"parameters": [
					{
						"type": "string",
						"description": "Camera ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"404": {
						"description": "Camera not found",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					},
					"503": {
						"description": "Camera stream unavailable",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"httpx.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string",
					"example": "Endpoint not found"
				}
			}
		},
		"http.IndexResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"example": "running"
				},
				"service": {
					"type": "string",
					"example": "airaFace API Integration"
				},
				"version": {
					"type": "string",
					"example": "1.0.0"
				},
				"aira_server": {
					"type": "string",
					"example": "https://192.168.1.100:443"
				}
			}
		},
		"http.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"example": "healthy"
				},
				"aira_api": {
					"type": "string",
					"example": "connected"
				},
				"token_valid": {
					"type": "boolean",
					"example": true
				},
				"database": {
					"type": "string",
					"example": "connected"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"http.TokenRefreshResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string",
					"example": "Token refreshed successfully"
				},
				"token": {
					"type": "string"
				},
				"expires_at": {
					"type": "string",
					"example": "2025-03-14T10:21:53Z"
				}
			}
		},
		"http.RecognitionExample": {
			"type": "object",
			"properties": {
				"type": {
					"type": "integer"
				},
				"score": {
					"type": "number"
				},
				"target_score": {
					"type": "number"
				},
				"snapshot": {
					"type": "string"
				},
				"channel": {
					"type": "string"
				},
				"timestamp": {
					"type": "integer"
				},
				"person_info": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"http.WebsocketInfoResponse": {
			"type": "object",
			"properties": {
				"websocket_url": {
					"type": "string",
					"example": "ws://192.168.1.100/airafacelite/verifyresults"
				},
				"description": {
					"type": "string"
				},
				"example_response": {
					"$ref": "#/definitions/http.RecognitionExample"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "facegate",
	Description:      "REST gateway in front of an airaFace Lite face recognition server.\n\nVendor calls are authenticated with a cached session token that is refreshed automatically.\nVendor responses are relayed with their original status code.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
