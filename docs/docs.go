// Package docs registers the Swagger document served at /swagger/index.html.
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
        "/api/access-log": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "Logins, logouts and invoice reads, oldest first. A date-only 'to' covers the whole day.",
                "produces": ["application/json"],
                "tags": ["access-log"],
                "summary": "Access log",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range, inclusive", "name": "to", "in": "query"},
                    {
                        "enum": ["LOGIN_SUCCESS", "LOGIN_FAILURE", "LOGOUT", "INVOICE_VIEW", "INVOICE_NOT_FOUND", "MAX_INVOICE"],
                        "type": "string",
                        "description": "Event type",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/max-invoice": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "Maximum invoice id across all users, not only the caller's.",
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Highest invoice id",
                "responses": {
                    "200": {"description": "maxInvoiceId", "schema": {"type": "object", "additionalProperties": true}},
                    "302": {"description": "redirect to /login when not logged in", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "name": "invoice.sid", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Desk API",
	Description:      "JSON endpoints of the invoice portal. HTML pages are not listed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
