// Package docs registers the OpenAPI document of the foundation registry with swag.
// It is regenerated by `swag init -g cmd/api/main.go` from the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/fundacoes": {
            "get": {
                "description": "Without cnpj, returns every foundation newest first. With cnpj (plain or formatted), returns the matching record.",
                "produces": ["application/json"],
                "tags": ["foundations"],
                "summary": "List or search foundations",
                "parameters": [
                    {"type": "string", "description": "Tax ID, digits or formatted", "name": "cnpj", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/foundation.DataResponse"}},
                    "404": {"description": "No foundation with this tax ID", "schema": {"$ref": "#/definitions/foundation.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Validates and stores a new foundation. The tax ID is stored digits-only.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["foundations"],
                "summary": "Create foundation",
                "parameters": [
                    {"description": "Foundation fields", "name": "foundation", "in": "body", "required": true, "schema": {"$ref": "#/definitions/foundation.PatchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/foundation.MessageDataResponse"}},
                    "400": {"description": "Validation failed or invalid JSON", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}},
                    "409": {"description": "Tax ID already registered", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}}
                }
            }
        },
        "/api/fundacoes/{id}": {
            "put": {
                "description": "Merges the provided fields into the stored record. Missing or null fields keep their value; an empty string is a value.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["foundations"],
                "summary": "Update foundation",
                "parameters": [
                    {"type": "integer", "description": "Foundation ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "foundation", "in": "body", "schema": {"$ref": "#/definitions/foundation.PatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/foundation.MessageDataResponse"}},
                    "400": {"description": "Validation failed or invalid JSON", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}},
                    "404": {"description": "Foundation not found", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}},
                    "409": {"description": "Tax ID already registered", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Permanently removes the foundation.",
                "produces": ["application/json"],
                "tags": ["foundations"],
                "summary": "Delete foundation",
                "parameters": [
                    {"type": "integer", "description": "Foundation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/foundation.MessageResponse"}},
                    "404": {"description": "Foundation not found", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/foundation.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "foundation.DTO": {
            "type": "object",
            "properties": {
                "affiliatedInstitution": {"type": "string"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "taxId": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "foundation.DataResponse": {
            "type": "object",
            "properties": {"data": {}}
        },
        "foundation.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "foundation.MessageDataResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/foundation.DTO"},
                "message": {"type": "string"}
            }
        },
        "foundation.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "foundation.PatchRequest": {
            "type": "object",
            "properties": {
                "affiliatedInstitution": {"type": "string", "example": "USP"},
                "email": {"type": "string", "example": "contato@instituto.org"},
                "name": {"type": "string", "example": "Instituto A"},
                "phone": {"type": "string", "example": "11999999999"},
                "taxId": {"type": "string", "example": "12.345.678/0001-99"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fundações API",
	Description:      "Registry of foundations identified by tax ID (CNPJ).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
