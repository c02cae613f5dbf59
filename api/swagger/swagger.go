package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Sensory Assessment API",
        "description": "CRUD backend for sensory-assessment tracking",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Users", "description": "Teacher accounts"},
        {"name": "Students", "description": "Student records"},
        {"name": "Assessments", "description": "Questionnaire instances and scoring"}
    ],
    "paths": {
        "/users": {
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/firebase/{firebaseUid}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user by firebase UID",
                "parameters": [
                    {"name": "firebaseUid", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assessments": {
            "post": {
                "tags": ["Assessments"],
                "summary": "Create assessment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssessmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Assessment"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assessments/{id}": {
            "get": {
                "tags": ["Assessments"],
                "summary": "Get assessment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Assessment"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "put": {
                "tags": ["Assessments"],
                "summary": "Update assessment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAssessmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Assessment"}},
                    "400": {"description": "Validation error or unknown assessment", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assessments/teacher/{teacherId}": {
            "get": {
                "tags": ["Assessments"],
                "summary": "List assessments by teacher",
                "parameters": [
                    {"name": "teacherId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Assessment"}}}
                }
            }
        },
        "/assessments/calculate-score": {
            "post": {
                "tags": ["Assessments"],
                "summary": "Compute sensory scores from questionnaire responses",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssessmentResponses"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AssessmentScores"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assessments/{id}/export": {
            "get": {
                "tags": ["Assessments"],
                "summary": "Export score report (csv or pdf)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered report"}
                }
            }
        }
    },
    "definitions": {
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "firebaseUid": {"type": "string"},
                "name": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "school": {"type": "string"},
                "class": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "Assessment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "studentId": {"type": "integer"},
                "teacherId": {"type": "integer"},
                "assessmentDate": {"type": "string"},
                "responses": {"$ref": "#/definitions/AssessmentResponses"},
                "scores": {"$ref": "#/definitions/AssessmentScores"},
                "status": {"type": "string", "enum": ["draft", "completed"]},
                "additionalNotes": {"type": "string"},
                "createdAt": {"type": "string"},
                "completedAt": {"type": "string"}
            }
        },
        "AssessmentResponses": {
            "type": "object",
            "properties": {
                "sections": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AssessmentSection"}
                }
            }
        },
        "AssessmentSection": {
            "type": "object",
            "properties": {
                "sectionId": {"type": "string"},
                "questions": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AssessmentQuestion"}
                }
            }
        },
        "AssessmentQuestion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "answer": {"type": "string", "enum": ["yes", "no"]},
                "frequency": {"type": "string", "enum": ["rarely", "sometimes", "often"]},
                "comments": {"type": "string"}
            }
        },
        "AssessmentScores": {
            "type": "object",
            "properties": {
                "auditorySeekingScore": {"type": "integer"},
                "auditoryAvoidingScore": {"type": "integer"},
                "visualSeekingScore": {"type": "integer"},
                "visualAvoidingScore": {"type": "integer"},
                "tactileSeekingScore": {"type": "integer"},
                "tactileAvoidingScore": {"type": "integer"},
                "vestibularSeekingScore": {"type": "integer"},
                "vestibularAvoidingScore": {"type": "integer"},
                "proprioceptionSeekingScore": {"type": "integer"},
                "proprioceptionAvoidingScore": {"type": "integer"},
                "oralSeekingScore": {"type": "integer"},
                "oralAvoidingScore": {"type": "integer"},
                "auditoryTotal": {"type": "integer"},
                "visualTotal": {"type": "integer"},
                "tactileTotal": {"type": "integer"},
                "vestibularTotal": {"type": "integer"},
                "proprioceptionTotal": {"type": "integer"},
                "oralTotal": {"type": "integer"},
                "auditoryPercentage": {"type": "number"},
                "visualPercentage": {"type": "number"},
                "tactilePercentage": {"type": "number"},
                "vestibularPercentage": {"type": "number"},
                "proprioceptionPercentage": {"type": "number"},
                "oralPercentage": {"type": "number"},
                "totalSeekingScore": {"type": "integer"},
                "totalAvoidingScore": {"type": "integer"},
                "overallScore": {"type": "integer"},
                "overallPercentage": {"type": "number"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "firebaseUid": {"type": "string"},
                "name": {"type": "string"}
            },
            "required": ["email", "firebaseUid", "name"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "school": {"type": "string"},
                "class": {"type": "string"}
            },
            "required": ["name", "school", "class"]
        },
        "CreateAssessmentRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "teacherId": {"type": "integer"},
                "assessmentDate": {"type": "string"},
                "responses": {"$ref": "#/definitions/AssessmentResponses"},
                "scores": {"$ref": "#/definitions/AssessmentScores"},
                "status": {"type": "string", "enum": ["draft", "completed"]},
                "additionalNotes": {"type": "string"}
            },
            "required": ["studentId", "teacherId", "assessmentDate"]
        },
        "UpdateAssessmentRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "teacherId": {"type": "integer"},
                "assessmentDate": {"type": "string"},
                "responses": {"$ref": "#/definitions/AssessmentResponses"},
                "scores": {"$ref": "#/definitions/AssessmentScores"},
                "status": {"type": "string", "enum": ["draft", "completed"]},
                "additionalNotes": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
