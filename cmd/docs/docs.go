// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/rates_backend/main.go -o cmd/docs
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
        "/auth_tokens": {
            "post": {
                "description": "Exchanges a username and password for a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CreateAuthTokenRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserWithTokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth_tokens/current": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Revokes the bearer token used for this request.",
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/exchange_rates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns how many units of base one unit of quote is worth. Falls back to the inverse pair and then to triangulation through the reference currency.",
                "produces": ["application/json"],
                "tags": ["exchange rates"],
                "summary": "Resolve an exchange rate",
                "parameters": [
                    {"type": "string", "description": "Quote currency code", "name": "quote", "in": "query", "required": true},
                    {"type": "string", "description": "Base currency code", "name": "base", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExchangeRateResponse"}},
                    "400": {"description": "Invalid currency code", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "No such rate", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Store or data error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Inserts the rate for the pair, replacing any existing value.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exchange rates"],
                "summary": "Store an exchange rate",
                "parameters": [
                    {
                        "description": "Exchange rate",
                        "name": "rate",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SaveExchangeRateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExchangeRateResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "description": "Creates a user and returns a first bearer token for it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CreateUserRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserWithTokenResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Failed to create user", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AuthTokenResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "token": {"type": "string"}}
        },
        "dto.CreateAuthTokenRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "dto.CreateUserRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "maxLength": 72, "minLength": 1},
                "username": {"type": "string", "maxLength": 64, "minLength": 1}
            }
        },
        "dto.ExchangeRateResponse": {
            "type": "object",
            "properties": {"base": {"type": "string"}, "quote": {"type": "string"}, "rate": {"type": "number"}}
        },
        "dto.SaveExchangeRateRequest": {
            "type": "object",
            "required": ["base", "quote"],
            "properties": {"base": {"type": "string"}, "quote": {"type": "string"}, "rate": {"type": "number"}}
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {"username": {"type": "string"}}
        },
        "dto.UserWithTokenResponse": {
            "type": "object",
            "properties": {
                "auth_token": {"$ref": "#/definitions/dto.AuthTokenResponse"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Exchange Rates API",
	Description:      "Stores exchange rates synced from ECB and IEX and resolves any currency pair.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
