// Package docs registers the OpenAPI description of the service.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/v1/sessions": {
            "post": {"tags": ["sessions"], "summary": "Open a report session holding the empty report",
                "responses": {"201": {"description": "session id, schema version and report"}}}
        },
        "/api/v1/sessions/{id}": {
            "delete": {"tags": ["sessions"], "summary": "Close a session",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "closed"}, "404": {"description": "unknown session"}}}
        },
        "/api/v1/sessions/{id}/report": {
            "get": {"tags": ["sessions"], "summary": "Current report",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "report"}}},
            "put": {"tags": ["sessions"], "summary": "Replace the report wholesale",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "validate", "in": "query", "type": "boolean"},
                    {"name": "report", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "stored report"}, "400": {"description": "invalid report"}}},
            "delete": {"tags": ["sessions"], "summary": "Reset to the empty report",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "empty report"}}}
        },
        "/api/v1/sessions/{id}/defaults/{template}": {
            "get": {"tags": ["sessions"], "summary": "Fresh default value for a nested entity",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "template", "in": "path", "required": true, "type": "string",
                        "enum": ["transport_unit", "temperature", "pulp", "thermograph", "photo"]}
                ],
                "responses": {"200": {"description": "template value"}, "404": {"description": "unknown template"}}}
        },
        "/api/v1/sessions/{id}/report/summary.csv": {
            "get": {"tags": ["sessions"], "summary": "Per unit counters as CSV", "produces": ["text/csv"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "CSV file"}}}
        },
        "/api/v1/report": {
            "put": {"tags": ["reports"], "summary": "Build a draft report document",
                "parameters": [
                    {"name": "validate", "in": "query", "type": "boolean"},
                    {"name": "report", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "document file"}, "400": {"description": "application error"}}},
            "get": {"tags": ["reports"], "summary": "Reports in progress",
                "responses": {"200": {"description": "name, size and modification time of every document"}}},
            "patch": {"tags": ["reports"], "summary": "Add unit photos to a draft",
                "parameters": [{"name": "report", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "document file"}, "404": {"description": "draft not found"}}}
        },
        "/api/v1/report/{name}": {
            "get": {"tags": ["reports"], "summary": "Download a draft",
                "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "document file"}, "404": {"description": "draft not found"}}},
            "post": {"tags": ["reports"], "summary": "Replace a draft with an edited file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {"200": {"description": "stored name"}, "404": {"description": "draft not found"}}}
        },
        "/register": {
            "post": {"tags": ["auth"], "summary": "Register a surveyor",
                "responses": {"201": {"description": "surveyor"}, "409": {"description": "already registered"}}}
        },
        "/login": {
            "post": {"tags": ["auth"], "summary": "Obtain a bearer token",
                "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}}}
        },
        "/healthz": {
            "get": {"tags": ["ops"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agent report API",
	Description:      "Cold-chain cargo inspection reports: editing sessions and report documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
