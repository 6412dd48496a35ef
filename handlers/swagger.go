package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the users API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>users API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "users API", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "User": {
        "type": "object",
        "properties": {
          "id": { "type": "string", "description": "ObjectID hex" },
          "name": { "type": "string", "minLength": 2 },
          "email": { "type": "string", "minLength": 5 },
          "password": { "type": "string", "minLength": 8 }
        }
      },
      "NewUser": {
        "type": "object",
        "required": ["name", "email", "password"],
        "additionalProperties": false,
        "properties": {
          "name": { "type": "string", "minLength": 2 },
          "email": { "type": "string", "minLength": 5 },
          "password": { "type": "string", "minLength": 8 }
        }
      }
    }
  },
  "paths": {
    "/users": {
      "get": {
        "summary": "List all users",
        "responses": {
          "200": { "description": "array of users", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/User" } } } } },
          "500": { "description": "store failure" }
        }
      },
      "post": {
        "summary": "Create a user",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/NewUser" } } } },
        "responses": {
          "201": { "description": "created; body names the generated id" },
          "400": { "description": "invalid body or schema validation failure" },
          "500": { "description": "write not acknowledged" }
        }
      }
    },
    "/users/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": {
        "summary": "Get a user by id",
        "responses": {
          "200": { "description": "user", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/User" } } } },
          "404": { "description": "not found or malformed id" }
        }
      },
      "put": {
        "summary": "Update fields of a user",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object" } } } },
        "responses": {
          "200": { "description": "updated" },
          "304": { "description": "matched but unchanged" },
          "400": { "description": "malformed id, invalid body or schema validation failure" },
          "404": { "description": "not found" }
        }
      },
      "delete": {
        "summary": "Delete a user",
        "responses": {
          "202": { "description": "deleted" },
          "400": { "description": "malformed id or store failure" },
          "404": { "description": "not found" }
        }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
