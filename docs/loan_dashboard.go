package docs

import "github.com/swaggo/swag"

// @title           Loan Dashboard API
// @version         1.0
// @description     Driver loan portfolio: issued, paid and outstanding amounts.

// @host      localhost:3001
// @BasePath  /

const loanDocTemplate = `{
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
        "loan_id":      {"name": "loan_id", "in": "query", "type": "string"},
        "driver_email": {"name": "driver_email", "in": "query", "type": "string", "format": "email"},
        "issued_from":  {"name": "issued_from", "in": "query", "type": "string", "format": "date"},
        "issued_to":    {"name": "issued_to", "in": "query", "type": "string", "format": "date"}
    },
    "paths": {
        "/health": {"get": {"tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset not loaded"}}}},
        "/loans/options": {"get": {"tags": ["Loans"], "summary": "Loan filter options", "responses": {"200": {"description": "OK"}}}},
        "/loans/kpis": {"get": {"tags": ["Loans"], "summary": "Loan scorecards",
            "parameters": [{"$ref": "#/parameters/loan_id"}, {"$ref": "#/parameters/driver_email"}, {"$ref": "#/parameters/issued_from"}, {"$ref": "#/parameters/issued_to"}],
            "responses": {"200": {"description": "OK"}, "422": {"description": "Invalid filter"}}}},
        "/loans/daily-issued": {"get": {"tags": ["Loans"], "summary": "Amount issued per day",
            "parameters": [{"$ref": "#/parameters/loan_id"}, {"$ref": "#/parameters/driver_email"}, {"$ref": "#/parameters/issued_from"}, {"$ref": "#/parameters/issued_to"}],
            "responses": {"200": {"description": "OK"}}}},
        "/loans/records": {"get": {"tags": ["Loans"], "summary": "Filtered loan rows",
            "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}],
            "responses": {"200": {"description": "OK"}}}},
        "/admin/dataset/reload": {"post": {"tags": ["Admin"], "summary": "Reload the dataset", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}}
    }
}`

// LoanSwaggerInfo holds exported Swagger Info so clients can modify it
var LoanSwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Loan Dashboard API",
	Description:      "Driver loan portfolio: issued, paid and outstanding amounts.",
	InfoInstanceName: "loan",
	SwaggerTemplate:  loanDocTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(LoanSwaggerInfo.InstanceName(), LoanSwaggerInfo)
}
