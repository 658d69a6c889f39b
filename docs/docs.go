// Package docs registers the OpenAPI document served at /swagger/*any.
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
        "/api/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "email or username in use", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/login": {
            "post": {"tags": ["auth"], "summary": "Log in with username or email", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/users/{userId}/role": {
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["auth"], "summary": "Change the role of a user", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "userId", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.RoleRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/current_user": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["auth"], "summary": "Current user profile", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams": {
            "get": {"tags": ["exams"], "summary": "List exams, newest first", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["exams"], "summary": "Create an exam", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ExamRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams/{examId}": {
            "get": {"tags": ["exams"], "summary": "Exam with its questions", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["exams"], "summary": "Update exam metadata", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ExamRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["exams"], "summary": "Delete an exam with its questions and results", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams/{examId}/submit": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["submissions"], "summary": "Submit answers for an exam", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "invalid payload shape", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams/{examId}/results/summary": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["analytics"], "summary": "Exam results summary", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams/{examId}/questions/{questionId}/breakdown": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["analytics"], "summary": "Answer distribution of one question", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true},
                    {"type": "integer", "name": "questionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams/{examId}/results/mine": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["results"], "summary": "The caller's attempts at one exam", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams/{examId}/results/{resultId}/review": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["results"], "summary": "Review a submitted result", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true},
                    {"type": "integer", "name": "resultId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/exams/{examId}/questions": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["questions"], "summary": "Add a question to an exam", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "examId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.QuestionRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/questions/{questionId}": {
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["questions"], "summary": "Update a question", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "questionId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.QuestionRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["questions"], "summary": "Delete a question and the answers recorded against it", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "questionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/questions/{questionId}/explanation": {
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["questions"], "summary": "Edit a question explanation", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "questionId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.ExplanationRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/questions/{questionId}/image": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["questions"], "summary": "Upload the statement image of a question", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "questionId", "in": "path", "required": true},
                    {"type": "file", "name": "image", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/completed-exams": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["results"], "summary": "Exams completed by the caller", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/tags": {
            "get": {"tags": ["tags"], "summary": "List tags by name", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["tags"], "summary": "Create a tag", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TagRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "duplicate name", "schema": {"$ref": "#/definitions/util.Response"}}}}
        }
    },
    "definitions": {
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "controller.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password", "username"],
            "properties": {
                "name": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "controller.RoleRequest": {
            "type": "object",
            "required": ["role"],
            "properties": {
                "role": {"type": "string", "enum": ["student", "teacher", "admin"]},
                "is_staff": {"type": "boolean"}
            }
        },
        "controller.LoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controller.ExplanationRequest": {
            "type": "object",
            "properties": {
                "explanation_text": {"type": "string"},
                "explanation_url": {"type": "string"},
                "texto": {"type": "string"},
                "url": {"type": "string"},
                "explicacion_texto": {"type": "string"},
                "explicacion_url": {"type": "string"}
            }
        },
        "dto.ExamRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "subject": {"type": "string"},
                "course": {"type": "string"}
            }
        },
        "dto.OptionRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"},
                "is_correct": {"type": "boolean"}
            }
        },
        "dto.QuestionRequest": {
            "type": "object",
            "required": ["statement", "type"],
            "properties": {
                "statement": {"type": "string"},
                "type": {"type": "string", "enum": ["alternativa_simple", "desarrollo"]},
                "difficulty": {"type": "string"},
                "position": {"type": "integer"},
                "explanation_text": {"type": "string"},
                "explanation_url": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/dto.OptionRequest"}},
                "tag_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "dto.TagRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ensayos API",
	Description:      "Practice exam authoring, grading and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
