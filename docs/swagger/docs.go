// Package swagger registers the OpenAPI description of the HTTP API.
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
        "/collection/export": {
            "get": {
                "description": "Re-encodes the library document without changing its content",
                "produces": ["application/xml"],
                "tags": ["collection"],
                "summary": "Export Document",
                "responses": {
                    "200": {"description": "Library document", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/collection/integrity": {
            "get": {
                "description": "Checks declared entry counts, playlist references and track id uniqueness",
                "produces": ["application/json"],
                "tags": ["collection"],
                "summary": "Check Document",
                "responses": {
                    "200": {"description": "Document Report", "schema": {"$ref": "#/definitions/checks.DocumentReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/collection/plan": {
            "get": {
                "description": "Lists the follow-up actions suggested by a reconciliation",
                "produces": ["application/json"],
                "tags": ["collection"],
                "summary": "Plan Fixes",
                "responses": {
                    "200": {"description": "Plan", "schema": {"$ref": "#/definitions/reconcile.Plan"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/collection/publish": {
            "post": {
                "description": "Uploads the exported document and the reconciliation report to object storage",
                "produces": ["application/json"],
                "tags": ["collection"],
                "summary": "Publish Library",
                "responses": {
                    "200": {"description": "Publish Result", "schema": {"$ref": "#/definitions/collection.PublishResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Storage Not Configured", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/collection/reconcile": {
            "get": {
                "description": "Compares the library document with the music directory",
                "produces": ["application/json"],
                "tags": ["collection"],
                "summary": "Reconcile Library",
                "responses": {
                    "200": {"description": "Reconciliation Result", "schema": {"$ref": "#/definitions/collection.Result"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/collection/refresh": {
            "post": {
                "description": "Drops the cached library document so the next request reads it again",
                "produces": ["application/json"],
                "tags": ["collection"],
                "summary": "Refresh Document",
                "responses": {
                    "200": {"description": "Refreshed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/history": {
            "get": {
                "description": "Returns the latest recorded reconciliation runs, newest first",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Recent Runs",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of runs", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Runs", "schema": {"$ref": "#/definitions/history.RecentResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Database Not Configured", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/integrity": {
            "get": {
                "description": "Runs every integrity check and reports each one separately",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check All",
                "responses": {
                    "200": {"description": "Integrity Report", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/integrity/document": {
            "get": {
                "description": "Checks the library document for internal inconsistencies",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Document",
                "responses": {
                    "200": {"description": "Document Report", "schema": {"$ref": "#/definitions/checks.DocumentReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/integrity/published": {
            "get": {
                "description": "Verifies that the latest published export and report exist and parse",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Published",
                "responses": {
                    "200": {"description": "Publication Report", "schema": {"$ref": "#/definitions/checks.PublicationReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/integrity/server": {
            "get": {
                "description": "Checks the history table against the expected schema",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Server",
                "responses": {
                    "200": {"description": "Server Report", "schema": {"$ref": "#/definitions/checks.ServerReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/integrity/structure": {
            "get": {
                "description": "Checks that the publish folders exist in the bucket, optionally creating them",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Structure",
                "parameters": [
                    {"type": "boolean", "description": "Fix missing folders", "name": "fix", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Structure Report", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "checks.DocumentReport": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/checks.Issue"}},
                "references": {"type": "array", "items": {"$ref": "#/definitions/checks.Issue"}},
                "track_ids": {"type": "array", "items": {"$ref": "#/definitions/checks.Issue"}},
                "summary": {"$ref": "#/definitions/checks.DocumentSummary"}
            }
        },
        "checks.DocumentSummary": {
            "type": "object",
            "properties": {
                "tracks": {"type": "integer"},
                "folders": {"type": "integer"},
                "playlists": {"type": "integer"},
                "issues": {"type": "integer"}
            }
        },
        "checks.Issue": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "path": {"type": "string"},
                "track_id": {"type": "string"},
                "key": {"type": "string"},
                "declared": {"type": "string"},
                "actual": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "checks.ObjectStatus": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "present": {"type": "boolean"},
                "valid": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "checks.PublicationReport": {
            "type": "object",
            "properties": {
                "export": {"$ref": "#/definitions/checks.ObjectStatus"},
                "report": {"$ref": "#/definitions/checks.ObjectStatus"}
            }
        },
        "checks.ServerReport": {
            "type": "object",
            "properties": {
                "matched": {"type": "boolean"},
                "tables": {"type": "object", "additionalProperties": {"$ref": "#/definitions/checks.TableReport"}},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "checks.TableReport": {
            "type": "object",
            "properties": {
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "type_mismatches": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"}
            }
        },
        "collection.PublishResult": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "objects": {"type": "array", "items": {"type": "string"}},
                "pruned": {"type": "array", "items": {"type": "string"}},
                "summary": {"$ref": "#/definitions/reconcile.Summary"}
            }
        },
        "collection.Result": {
            "type": "object",
            "properties": {
                "run": {"$ref": "#/definitions/history.Run"},
                "report": {"$ref": "#/definitions/reconcile.Report"}
            }
        },
        "history.RecentResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "runs": {"type": "array", "items": {"$ref": "#/definitions/history.Run"}}
            }
        },
        "history.Run": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "source": {"type": "string"},
                "directory": {"type": "string"},
                "total_tracks": {"type": "integer"},
                "ok": {"type": "integer"},
                "missing": {"type": "integer"},
                "unresolvable": {"type": "integer"},
                "not_imported": {"type": "integer"},
                "duplicates": {"type": "integer"},
                "relocatable_unique": {"type": "integer"},
                "relocatable_ambiguous": {"type": "integer"},
                "duration_ms": {"type": "integer"}
            }
        },
        "reconcile.Action": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "track_id": {"type": "string"},
                "key": {"type": "string"},
                "reason": {"type": "string"},
                "candidates": {"type": "array", "items": {"type": "string"}},
                "location": {"type": "string"}
            }
        },
        "reconcile.MissingTrack": {
            "type": "object",
            "properties": {
                "track_id": {"type": "string"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "reconcile.Plan": {
            "type": "object",
            "properties": {
                "actions": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Action"}},
                "summary": {"$ref": "#/definitions/reconcile.PlanSummary"}
            }
        },
        "reconcile.PlanSummary": {
            "type": "object",
            "properties": {
                "relocate": {"type": "integer"},
                "choose": {"type": "integer"},
                "locate": {"type": "integer"},
                "import": {"type": "integer"}
            }
        },
        "reconcile.RelocationGroup": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "candidates": {"type": "array", "items": {"type": "string"}},
                "track_ids": {"type": "array", "items": {"type": "string"}},
                "suggested_location": {"type": "string"}
            }
        },
        "reconcile.Report": {
            "type": "object",
            "properties": {
                "missing": {"type": "array", "items": {"$ref": "#/definitions/reconcile.MissingTrack"}},
                "not_imported": {"type": "array", "items": {"type": "string"}},
                "duplicates": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "relocated": {"type": "object", "additionalProperties": {"$ref": "#/definitions/reconcile.RelocationGroup"}},
                "summary": {"$ref": "#/definitions/reconcile.Summary"}
            }
        },
        "reconcile.Summary": {
            "type": "object",
            "properties": {
                "total_tracks": {"type": "integer"},
                "ok": {"type": "integer"},
                "missing": {"type": "integer"},
                "unresolvable": {"type": "integer"},
                "not_imported": {"type": "integer"},
                "duplicates": {"type": "integer"},
                "relocatable_unique": {"type": "integer"},
                "relocatable_ambiguous": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Library Doctor API",
	Description:      "Reconciles a DJ library document with the music directory and publishes the results.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
