// Package swagger holds the generated OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

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
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Admin login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get the authenticated admin", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/register": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Create an admin account", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/media/upload": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["media"], "summary": "Upload a product image", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Bad Gateway"}}}
        },
        "/media/upload/batch": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["media"], "summary": "Upload multiple product images", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Bad Gateway"}}}
        },
        "/media/variants/{stem}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["media"], "summary": "Delete every rendition derived from a base key", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}
        },
        "/media/signed-url/{key}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["media"], "summary": "Get a time-limited access URL for a stored object", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}
        },
        "/media/{key}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["media"], "summary": "Delete a stored object by key", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}
        },
        "/products": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create a product", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/products/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Get a product by ID", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update a product", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete a product", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/products/{id}/stock": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Adjust a product's stock level", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Get the full category tree", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/categories/reorder": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Reorder the category tree", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/categories/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Get a category by ID", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Update a category", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Delete a category", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/customers": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["customers"], "summary": "List customers", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["customers"], "summary": "Create a customer", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/customers/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["customers"], "summary": "Get a customer by ID", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["customers"], "summary": "Update a customer", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["customers"], "summary": "Delete a customer", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/orders": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "List orders", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Place an order", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/orders/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Get an order with its lines", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/orders/{id}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Update an order's status", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/pages": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["pages"], "summary": "List pages", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["pages"], "summary": "Create a page", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/pages/{slug}": {
            "get": {"tags": ["pages"], "summary": "Get a page by slug", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["pages"], "summary": "Update a page", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["pages"], "summary": "Delete a page", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token. Format: **Bearer {token}**",
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
	Title:            "Shoply API",
	Description:      "Backend for Shoply, a storefront and retail back office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
