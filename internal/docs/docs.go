// Package docs registers the OpenAPI document served at /swagger.
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
        "/paychecks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["paychecks"],
                "summary": "List paychecks",
                "parameters": [
                    {"type": "integer", "description": "Calendar year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Paychecks, newest first"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["paychecks"],
                "summary": "Create a paycheck",
                "parameters": [
                    {"description": "Paycheck details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PaycheckRequest"}}
                ],
                "responses": {
                    "201": {"description": "Paycheck created"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/paychecks/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["paychecks"],
                "summary": "Get paycheck by ID",
                "parameters": [{"type": "string", "description": "Paycheck ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Paycheck with deductions"},
                    "404": {"description": "Paycheck not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["paychecks"],
                "summary": "Update paycheck",
                "parameters": [
                    {"type": "string", "description": "Paycheck ID", "name": "id", "in": "path", "required": true},
                    {"description": "Paycheck details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PaycheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated paycheck"},
                    "404": {"description": "Paycheck not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["paychecks"],
                "summary": "Delete paycheck",
                "parameters": [{"type": "string", "description": "Paycheck ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Paycheck deleted"},
                    "404": {"description": "Paycheck not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/paychecks/{id}/project": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["paychecks"],
                "summary": "Project paycheck",
                "description": "Clone the paycheck onto every later pay date through December 31.",
                "parameters": [
                    {"type": "string", "description": "Paycheck ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Override today's date (YYYY-MM-DD)", "name": "today", "in": "query"},
                    {"description": "Pay frequency", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ProjectPaycheckRequest"}}
                ],
                "responses": {
                    "201": {"description": "Projected paychecks"},
                    "409": {"description": "Projection already running", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "No pay dates remain this year", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/paystubs/extract": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["text/plain", "application/json"],
                "produces": ["application/json"],
                "tags": ["paystubs"],
                "summary": "Extract paystub",
                "parameters": [
                    {"description": "Paystub text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ExtractPaystubRequest"}}
                ],
                "responses": {
                    "200": {"description": "Draft paycheck"},
                    "400": {"description": "Empty paystub", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Paystub text too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/recurring-expenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recurring-expenses"],
                "summary": "List recurring expenses",
                "parameters": [{"type": "boolean", "description": "Only active rules", "name": "active", "in": "query"}],
                "responses": {"200": {"description": "Recurring expenses by next due date"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recurring-expenses"],
                "summary": "Create a recurring expense",
                "parameters": [
                    {"description": "Recurring expense details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RecurringExpenseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Recurring expense created"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/recurring-expenses/{id}/pay": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recurring-expenses"],
                "summary": "Pay recurring expense",
                "parameters": [
                    {"type": "string", "description": "Recurring expense ID", "name": "id", "in": "path", "required": true},
                    {"description": "Amount and date overrides", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handlers.MarkPaidRequest"}}
                ],
                "responses": {
                    "201": {"description": "Payment recorded"},
                    "409": {"description": "Recurring expense is inactive", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reports/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Get dashboard",
                "parameters": [{"type": "string", "description": "Override today's date (YYYY-MM-DD)", "name": "today", "in": "query"}],
                "responses": {"200": {"description": "Dashboard report"}}
            }
        },
        "/reports/annual.xlsx": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["reports"],
                "summary": "Export annual report",
                "parameters": [{"type": "string", "description": "Override today's date (YYYY-MM-DD)", "name": "today", "in": "query"}],
                "responses": {"200": {"description": "Workbook", "schema": {"type": "file"}}}
            }
        }
    },
    "definitions": {
        "handlers.DeductionRequest": {
            "type": "object",
            "required": ["category", "name"],
            "properties": {
                "amount": {"type": "integer"},
                "category": {"type": "string", "example": "TAX"},
                "is_pre_tax": {"type": "boolean"},
                "name": {"type": "string", "maxLength": 100}
            }
        },
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handlers.ErrorDetail"}
            }
        },
        "handlers.ExtractPaystubRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "handlers.MarkPaidRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "date": {"type": "string", "example": "2024-01-31"}
            }
        },
        "handlers.PaycheckRequest": {
            "type": "object",
            "required": ["employer_name", "pay_date"],
            "properties": {
                "deductions": {"type": "array", "items": {"$ref": "#/definitions/handlers.DeductionRequest"}},
                "employer_name": {"type": "string", "maxLength": 255},
                "gross_amount": {"type": "integer"},
                "pay_date": {"type": "string", "example": "2024-01-15"}
            }
        },
        "handlers.ProjectPaycheckRequest": {
            "type": "object",
            "required": ["frequency"],
            "properties": {
                "frequency": {"type": "string", "example": "BIWEEKLY"}
            }
        },
        "handlers.RecurringExpenseRequest": {
            "type": "object",
            "required": ["amount", "description", "frequency", "start_date"],
            "properties": {
                "amount": {"type": "integer"},
                "category_id": {"type": "string"},
                "description": {"type": "string", "maxLength": 255},
                "end_date": {"type": "string"},
                "frequency": {"type": "string", "example": "MONTHLY"},
                "start_date": {"type": "string", "example": "2024-01-01"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Title:            "Budget API",
	Description:      "Paychecks, recurring expenses and transactions with a year-to-date dashboard and 12-month projection.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
