// Package docs registers the OpenAPI description served at /swagger.
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
        "/api/v1/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/extractions/url": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["extractions"],
                "summary": "Extract a receipt page",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ExtractURLRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExtractionResponse"}}, "400": {"description": "Bad Request"}, "500": {"description": "Could not process document"}}
            }
        },
        "/api/v1/extractions/image": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["extractions"],
                "summary": "Extract a receipt image",
                "parameters": [
                    {"type": "file", "description": "Receipt image or PDF (field name file or comprovante)", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Save items as purchases", "name": "save", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExtractionResponse"}}, "400": {"description": "Bad Request"}, "500": {"description": "Could not process document"}}
            }
        },
        "/api/v1/extractions/access-key": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["extractions"],
                "summary": "Resolve an access key",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AccessKeyRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExtractionResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/documents": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["extractions"],
                "summary": "List saved extractions",
                "parameters": [
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.DocumentResponse"}}}}
            }
        },
        "/api/v1/categories": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryResponse"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CategoryRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CategoryResponse"}}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/v1/categories/defaults": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["categories"],
                "summary": "Create the default categories",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SeedCategoriesResponse"}}}
            }
        },
        "/api/v1/categories/{id}": {
            "put": {
                "security": [{"Bearer": []}],
                "tags": ["categories"],
                "summary": "Rename a category",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CategoryRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["categories"],
                "summary": "Delete a category",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/purchases": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["purchases"],
                "summary": "List purchases of a month",
                "parameters": [
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PurchaseResponse"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["purchases"],
                "summary": "Create a purchase",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.PurchaseRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PurchaseResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/purchases/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["purchases"],
                "summary": "Delete a purchase",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/fixed-costs": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "List fixed costs",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ObligationResponse"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "Create a fixed cost",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ObligationRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ObligationResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/fixed-costs/{id}": {
            "put": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "Replace a fixed cost",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ObligationRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "Delete a fixed cost",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/incomes": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "List incomes",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ObligationResponse"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "Create an income",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ObligationRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ObligationResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/incomes/{id}": {
            "put": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "Replace an income",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ObligationRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["obligations"],
                "summary": "Delete an income",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/transactions": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["reports"],
                "summary": "Transactions of a month",
                "parameters": [
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MonthTransactionsResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/reports/categories": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["reports"],
                "summary": "Spending per category",
                "parameters": [
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategoryReportResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["reports"],
                "summary": "Current month summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.RegisterRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.RefreshTokenRequest": {"type": "object", "properties": {"refresh_token": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}}},
        "dto.AuthResponse": {"type": "object", "properties": {"access_token": {"type": "string"}, "refresh_token": {"type": "string"}, "token_type": {"type": "string"}, "expires_in": {"type": "integer"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}},
        "dto.ExtractURLRequest": {"type": "object", "properties": {"url": {"type": "string"}, "save": {"type": "boolean"}}},
        "dto.AccessKeyRequest": {"type": "object", "properties": {"key": {"type": "string"}}},
        "dto.LineItemResponse": {"type": "object", "properties": {"name": {"type": "string"}, "quantity": {"type": "number"}, "unit_price": {"type": "number"}, "amount": {"type": "number"}, "category": {"type": "string"}}},
        "dto.ExtractionResponse": {"type": "object", "properties": {"kind": {"type": "string"}, "establishment": {"type": "string"}, "date": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/dto.LineItemResponse"}}, "total": {"type": "number"}, "access_key": {"type": "string"}, "lookup_url": {"type": "string"}, "document_id": {"type": "string"}, "saved": {"type": "boolean"}}},
        "dto.DocumentResponse": {"type": "object", "properties": {"id": {"type": "string"}, "source": {"type": "string"}, "reference": {"type": "string"}, "content_type": {"type": "string"}, "file_size": {"type": "integer"}, "result_kind": {"type": "string"}, "created_at": {"type": "string"}}},
        "dto.CategoryRequest": {"type": "object", "properties": {"name": {"type": "string"}}},
        "dto.CategoryResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "created_at": {"type": "string"}}},
        "dto.SeedCategoriesResponse": {"type": "object", "properties": {"created": {"type": "integer"}}},
        "dto.PurchaseRequest": {"type": "object", "properties": {"name": {"type": "string"}, "category": {"type": "string"}, "quantity": {"type": "number"}, "unit_price": {"type": "number"}, "amount": {"type": "number"}, "date": {"type": "string"}}},
        "dto.PurchaseResponse": {"type": "object", "properties": {"id": {"type": "string"}, "document_id": {"type": "string"}, "name": {"type": "string"}, "category": {"type": "string"}, "quantity": {"type": "number"}, "unit_price": {"type": "number"}, "amount": {"type": "number"}, "date": {"type": "string"}, "created_at": {"type": "string"}}},
        "dto.ObligationRequest": {"type": "object", "properties": {"name": {"type": "string"}, "category": {"type": "string"}, "amount": {"type": "number"}, "period": {"type": "string", "enum": ["monthly", "bimonthly", "quarterly", "semiannual", "annual", "one-off"]}, "anchor_month": {"type": "integer"}, "anchor_year": {"type": "integer"}, "due_day": {"type": "integer"}, "one_off_date": {"type": "string"}}},
        "dto.ObligationResponse": {"type": "object", "properties": {"id": {"type": "string"}, "kind": {"type": "string"}, "name": {"type": "string"}, "category": {"type": "string"}, "amount": {"type": "number"}, "period": {"type": "string"}, "anchor_month": {"type": "integer"}, "anchor_year": {"type": "integer"}, "due_day": {"type": "integer"}, "one_off_date": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "dto.TransactionResponse": {"type": "object", "properties": {"id": {"type": "string"}, "source_id": {"type": "string"}, "kind": {"type": "string"}, "name": {"type": "string"}, "category": {"type": "string"}, "amount": {"type": "number"}, "date": {"type": "string"}, "projected": {"type": "boolean"}}},
        "dto.MonthTransactionsResponse": {"type": "object", "properties": {"month": {"type": "integer"}, "year": {"type": "integer"}, "transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}}},
        "dto.CategoryTotalResponse": {"type": "object", "properties": {"category": {"type": "string"}, "total": {"type": "number"}}},
        "dto.CategoryReportResponse": {"type": "object", "properties": {"month": {"type": "integer"}, "year": {"type": "integer"}, "total": {"type": "number"}, "categories": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryTotalResponse"}}}},
        "dto.DashboardResponse": {"type": "object", "properties": {"month": {"type": "integer"}, "year": {"type": "integer"}, "spent": {"type": "number"}, "fixed_costs": {"type": "number"}, "income": {"type": "number"}, "balance": {"type": "number"}, "categories": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryTotalResponse"}}, "upcoming": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}}}
    },
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Controle Financeiro API",
	Description:      "Personal finance backend: receipt extraction, purchases, fixed costs, incomes and monthly reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
