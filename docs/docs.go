// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/auth/quick-signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Quick signup",
                "parameters": [
                    {"description": "Signup request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.QuickSignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.QuickSignupResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/user/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Get user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProfileResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/job-postings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Job Postings"],
                "summary": "Create a job posting",
                "parameters": [
                    {"description": "Job posting", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/jobposting.CreateJobPostingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/jobposting.JobPosting"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/job-postings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Job Postings"],
                "summary": "Get a job posting",
                "parameters": [
                    {"type": "string", "description": "Posting id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/jobposting.JobPosting"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/voice/transcribe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "Transcribe a recording",
                "parameters": [
                    {"description": "Base64 audio", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/voice.TranscribeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/voice.Transcript"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/voice/extract-job": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "Extract a job from a transcript",
                "parameters": [
                    {"description": "Transcript", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/voice.ExtractRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/voice.JobResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/voice/extract-user": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "Extract user details from a transcript",
                "parameters": [
                    {"description": "Transcript", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/voice.ExtractRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/voice.UserResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/voice/languages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "List supported languages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LanguagesResponse"}}
                }
            }
        },
        "/gazetteer/states": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Gazetteer"],
                "summary": "List states",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StatesResponse"}}
                }
            }
        },
        "/gazetteer/states/{state}/districts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Gazetteer"],
                "summary": "List districts of a state",
                "parameters": [
                    {"type": "string", "description": "State name", "name": "state", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DistrictsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/gazetteer/services": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Gazetteer"],
                "summary": "List services",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ServicesResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "handlers.QuickSignupResponse": {"type": "object"},
        "handlers.ProfileResponse": {"type": "object"},
        "handlers.LanguagesResponse": {
            "type": "object",
            "properties": {"languages": {"type": "array", "items": {"type": "string"}}}
        },
        "handlers.StatesResponse": {
            "type": "object",
            "properties": {"states": {"type": "array", "items": {"type": "string"}}}
        },
        "handlers.DistrictsResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string"},
                "districts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.ServicesResponse": {"type": "object"},
        "user.QuickSignupRequest": {"type": "object"},
        "jobposting.CreateJobPostingRequest": {"type": "object"},
        "jobposting.JobPosting": {"type": "object"},
        "voice.TranscribeRequest": {
            "type": "object",
            "required": ["audioData", "mimeType"],
            "properties": {
                "audioData": {"type": "string"},
                "mimeType": {"type": "string", "example": "audio/wav"}
            }
        },
        "voice.ExtractRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"},
                "detectedLanguage": {"type": "string", "example": "en"}
            }
        },
        "voice.Transcript": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "detectedLanguage": {"type": "string"}
            }
        },
        "voice.JobResult": {
            "type": "object",
            "properties": {
                "job": {"type": "object"},
                "source": {"type": "string", "enum": ["genuine", "demo"]}
            }
        },
        "voice.UserResult": {
            "type": "object",
            "properties": {
                "user": {"type": "object"},
                "source": {"type": "string", "enum": ["genuine", "demo"]}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "QuickPost API",
	Description:      "Voice intake for service job postings: transcription, field extraction, quick signup and posting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
