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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Sign in with email and password", "responses": {"200": {"description": "tokens"}, "401": {"description": "invalid credentials"}}}},
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Create a user account", "responses": {"201": {"description": "tokens"}, "409": {"description": "email taken"}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Exchange a refresh token", "responses": {"200": {"description": "tokens"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Revoke the current tokens", "responses": {"200": {"description": "signed out"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Current user", "responses": {"200": {"description": "user"}}}},
        "/locations": {"get": {"tags": ["locations"], "summary": "List parking locations", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "city", "in": "query", "type": "string"}], "responses": {"200": {"description": "locations"}}}},
        "/locations/{id}": {"get": {"tags": ["locations"], "summary": "Get a location", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "location"}, "404": {"description": "not found"}}}},
        "/locations/{id}/slots": {"get": {"tags": ["slots"], "summary": "List slots of a location", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "type", "in": "query", "type": "string"}, {"name": "available", "in": "query", "type": "boolean"}], "responses": {"200": {"description": "slots"}}}},
        "/locations/{id}/feedback": {"get": {"tags": ["feedback"], "summary": "Visible feedback of a location", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "feedback"}}}},
        "/slots/{id}/hold": {"post": {"tags": ["slots"], "security": [{"BearerAuth": []}], "summary": "Hold a slot while booking", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "hold"}, "409": {"description": "held or unavailable"}}}},
        "/holds/{holdId}": {"delete": {"tags": ["slots"], "security": [{"BearerAuth": []}], "summary": "Release a hold", "parameters": [{"name": "holdId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "released"}}}},
        "/bookings": {
            "post": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Book a slot", "responses": {"201": {"description": "pending booking"}, "409": {"description": "slot unavailable"}}},
            "get": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Caller's bookings", "responses": {"200": {"description": "bookings"}}}
        },
        "/bookings/{id}": {"get": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Get a booking", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "booking"}}}},
        "/bookings/{id}/cancel": {"post": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Cancel a booking", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "cancelled"}}}},
        "/bookings/{id}/ticket": {"get": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Ticket PDF", "produces": ["application/pdf"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "pdf"}}}},
        "/bookings/{id}/qr": {"get": {"tags": ["bookings"], "security": [{"BearerAuth": []}], "summary": "Ticket QR code", "produces": ["image/png"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "png"}}}},
        "/payments": {
            "post": {"tags": ["payments"], "security": [{"BearerAuth": []}], "summary": "Pay a pending booking", "responses": {"201": {"description": "payment"}}},
            "get": {"tags": ["payments"], "security": [{"BearerAuth": []}], "summary": "Caller's payments", "responses": {"200": {"description": "payments"}}}
        },
        "/feedback": {
            "post": {"tags": ["feedback"], "security": [{"BearerAuth": []}], "summary": "Leave feedback", "responses": {"201": {"description": "feedback"}}},
            "get": {"tags": ["feedback"], "security": [{"BearerAuth": []}], "summary": "Caller's feedback", "responses": {"200": {"description": "feedback"}}}
        },
        "/ws/locations/{id}": {"get": {"tags": ["realtime"], "summary": "Websocket stream of slot availability", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"101": {"description": "switching protocols"}}}},
        "/admin/dashboard": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Dashboard aggregates", "responses": {"200": {"description": "dashboard"}}}},
        "/admin/users": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Search users", "responses": {"200": {"description": "users"}}}},
        "/admin/bookings": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Search bookings", "responses": {"200": {"description": "bookings"}}}},
        "/admin/bookings/{id}/complete": {"post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Complete a confirmed booking", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "completed"}}}},
        "/admin/tickets/verify": {"post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Verify a scanned ticket", "responses": {"200": {"description": "verification"}}}},
        "/admin/payments": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Search payments", "responses": {"200": {"description": "payments"}}}},
        "/admin/payments/stats": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Payment statistics", "responses": {"200": {"description": "stats"}}}},
        "/admin/payments/report": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Payments report PDF", "produces": ["application/pdf"], "responses": {"200": {"description": "pdf"}}}},
        "/admin/feedback": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Search feedback", "responses": {"200": {"description": "feedback"}}}},
        "/admin/feedback/stats": {"get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Feedback statistics", "responses": {"200": {"description": "stats"}}}},
        "/admin/feedback/{id}/response": {"post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Reply to feedback", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "feedback"}}}},
        "/admin/feedback/{id}/status": {"patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Moderate feedback", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "feedback"}}}},
        "/admin/locations/{id}": {"put": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Edit a location", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "location"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "LetsParkIt API",
	Description:      "Parking reservation backend: locations, slots, bookings, payments and feedback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
