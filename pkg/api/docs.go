package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{marshal .Schemes}},
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/health": {
            "get": {"summary": "Service health", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/encode": {
            "post": {"summary": "Hide a payload in a carrier", "consumes": ["multipart/form-data"],
                "produces": ["image/bmp"],
                "parameters": [
                    {"name": "carrier", "in": "formData", "type": "file", "required": true},
                    {"name": "payload", "in": "formData", "type": "file", "required": true},
                    {"name": "extension", "in": "formData", "type": "string"}
                ],
                "responses": {"200": {"description": "Encoded carrier"},
                    "400": {"description": "Malformed request or carrier"},
                    "422": {"description": "Payload does not fit or extension is invalid"}}}
        },
        "/decode": {
            "post": {"summary": "Recover a payload", "consumes": ["application/octet-stream"],
                "produces": ["application/octet-stream"],
                "responses": {"200": {"description": "Payload bytes",
                    "headers": {"X-Payload-Extension": {"type": "string"}}},
                    "400": {"description": "Carrier too short"}}}
        },
        "/inspect": {
            "post": {"summary": "Inspect a carrier", "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "Carrier info"},
                    "400": {"description": "Not a bitmap"}}}
        },
        "/carriers": {
            "get": {"summary": "List archived carriers", "produces": ["application/json"],
                "responses": {"200": {"description": "Archive entries"}}},
            "post": {"summary": "Encode and archive a carrier", "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "Archived carrier"},
                    "422": {"description": "Payload does not fit or extension is invalid"}}}
        },
        "/carriers/{id}": {
            "get": {"summary": "Download an archived carrier", "produces": ["image/bmp"],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Carrier bytes"}, "404": {"description": "Not found"}}},
            "delete": {"summary": "Delete an archived carrier", "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        },
        "/carriers/{id}/payload": {
            "get": {"summary": "Recover the payload of an archived carrier",
                "produces": ["application/octet-stream"],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Payload bytes"}, "404": {"description": "Not found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:9200",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "lsbmp REST API",
	Description:      "Hide files in the low bits of BMP carriers and recover them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
