package docs

import "github.com/swaggo/swag"

// @title           Ride Dashboard API
// @version         1.0
// @description     Trip request filters, KPI breakdowns and the analytics assistant.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const rideDocTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "parameters": {
        "city":         {"name": "city", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
        "vehicle_type": {"name": "vehicle_type", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
        "driver_id":    {"name": "driver_id", "in": "query", "type": "string"},
        "trip_type":    {"name": "trip_type", "in": "query", "type": "string"},
        "rider_id":     {"name": "rider_id", "in": "query", "type": "string"},
        "country":      {"name": "country", "in": "query", "type": "string"},
        "region":       {"name": "region", "in": "query", "type": "string"},
        "corporate":    {"name": "corporate", "in": "query", "type": "string"},
        "date_from":    {"name": "date_from", "in": "query", "type": "string", "format": "date"},
        "date_to":      {"name": "date_to", "in": "query", "type": "string", "format": "date"},
        "distance_min": {"name": "distance_min", "in": "query", "type": "number"},
        "distance_max": {"name": "distance_max", "in": "query", "type": "number"},
        "session_id":   {"name": "session_id", "in": "path", "required": true, "type": "string", "format": "uuid"}
    },
    "paths": {
        "/health": {"get": {"tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset not loaded"}}}},
        "/dashboard/options": {"get": {"tags": ["Dashboard"], "summary": "Filter options", "responses": {"200": {"description": "OK"}}}},
        "/dashboard/kpis": {"get": {"tags": ["Dashboard"], "summary": "Overall KPIs",
            "parameters": [{"$ref": "#/parameters/city"}, {"$ref": "#/parameters/vehicle_type"}, {"$ref": "#/parameters/driver_id"}, {"$ref": "#/parameters/trip_type"}, {"$ref": "#/parameters/rider_id"}, {"$ref": "#/parameters/country"}, {"$ref": "#/parameters/region"}, {"$ref": "#/parameters/corporate"}, {"$ref": "#/parameters/date_from"}, {"$ref": "#/parameters/date_to"}, {"$ref": "#/parameters/distance_min"}, {"$ref": "#/parameters/distance_max"}],
            "responses": {"200": {"description": "OK"}, "422": {"description": "Invalid filter"}}}},
        "/dashboard/breakdown/{dimension}": {"get": {"tags": ["Dashboard"], "summary": "Grouped KPI table",
            "parameters": [{"name": "dimension", "in": "path", "required": true, "type": "string", "enum": ["driver", "rider", "region", "corporate"]}, {"name": "sort", "in": "query", "type": "string", "enum": ["fulfillment_desc", "fulfillment_asc"]}, {"name": "limit", "in": "query", "type": "integer"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown dimension"}}}},
        "/dashboard/trips": {"get": {"tags": ["Dashboard"], "summary": "Filtered trip rows",
            "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}],
            "responses": {"200": {"description": "OK"}}}},
        "/dashboard/hourly": {"get": {"tags": ["Dashboard"], "summary": "Hour x category pivot", "responses": {"200": {"description": "OK"}}}},
        "/dashboard/locations": {"get": {"tags": ["Dashboard"], "summary": "Map points as GeoJSON", "produces": ["application/geo+json"], "responses": {"200": {"description": "OK"}}}},
        "/dashboard/summary": {"get": {"tags": ["Dashboard"], "summary": "Assistant summary", "responses": {"200": {"description": "OK"}}}},
        "/sessions": {"post": {"tags": ["Chat"], "summary": "Start a chat session", "responses": {"201": {"description": "Created"}}}},
        "/sessions/{session_id}": {"delete": {"tags": ["Chat"], "summary": "End a chat session", "parameters": [{"$ref": "#/parameters/session_id"}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}},
        "/sessions/{session_id}/history": {"get": {"tags": ["Chat"], "summary": "Conversation history", "parameters": [{"$ref": "#/parameters/session_id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/sessions/{session_id}/ask": {"post": {"tags": ["Chat"], "summary": "Ask the assistant",
            "parameters": [{"$ref": "#/parameters/session_id"}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"question": {"type": "string"}}}}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Invalid question"}}}},
        "/ws/sessions/{session_id}": {"get": {"tags": ["Chat"], "summary": "Chat over websocket", "parameters": [{"$ref": "#/parameters/session_id"}], "responses": {"101": {"description": "Switching Protocols"}}}},
        "/admin/dataset/reload": {"post": {"tags": ["Admin"], "summary": "Reload the dataset", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}}
    }
}`

// RideSwaggerInfo holds exported Swagger Info so clients can modify it
var RideSwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ride Dashboard API",
	Description:      "Trip request filters, KPI breakdowns and the analytics assistant.",
	InfoInstanceName: "ride",
	SwaggerTemplate:  rideDocTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(RideSwaggerInfo.InstanceName(), RideSwaggerInfo)
}
