// Package docs Swagger文档
//
// 由handler上的swag注释生成(swag init -g cmd/api/main.go -o docs),
// 修改接口注释后重新生成。
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
        "/api/books": {
            "get": {
                "description": "返回全部图书(按ID升序)",
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书列表",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BookResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "post": {
                "description": "description为空时调用大模型生成摘要作为描述",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "新增图书",
                "parameters": [
                    {"description": "图书信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.BookResponse"}},
                    "400": {"description": "参数错误或ISBN重复", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/books/{id}": {
            "put": {
                "description": "只更新请求中出现的字段;available必须与当前借阅状态一致",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "更新图书",
                "parameters": [
                    {"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true},
                    {"description": "要更新的字段", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BookResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "delete": {
                "description": "不级联删除借阅记录,历史记录中的book快照变为null",
                "tags": ["图书"],
                "summary": "删除图书",
                "parameters": [
                    {"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/books/{id}/summary": {
            "get": {
                "description": "生成失败时summary为错误文本,状态码仍为200",
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书摘要",
                "parameters": [
                    {"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SummaryResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/search": {
            "post": {
                "description": "由大模型按相关度排序;query为空时返回全部图书",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["发现"],
                "summary": "智能搜索",
                "parameters": [
                    {"description": "搜索条件", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.SearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BookResponse"}}}
                }
            }
        },
        "/api/recommendations": {
            "post": {
                "description": "从可借图书中推荐最多3本",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["发现"],
                "summary": "图书推荐",
                "parameters": [
                    {"description": "阅读偏好", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.RecommendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecommendationsResponse"}},
                    "500": {"description": "模型调用或解析失败", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "用户列表",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.UserResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "新增用户",
                "parameters": [
                    {"description": "用户信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "400": {"description": "参数错误或邮箱重复", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/borrow": {
            "post": {
                "description": "创建借阅记录并把图书标记为不可借(同一事务)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "借书",
                "parameters": [
                    {"description": "借阅信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BorrowRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.RecordResponse"}},
                    "400": {"description": "图书不可借", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "图书或用户不存在", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/return": {
            "post": {
                "description": "关闭借阅记录并把图书标记为可借(同一事务)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "还书",
                "parameters": [
                    {"description": "借阅记录", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReturnRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecordResponse"}},
                    "400": {"description": "已归还", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "借阅记录不存在", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/borrow-records": {
            "get": {
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "借阅记录列表",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RecordResponse"}}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["系统"],
                "summary": "统计信息",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatsResponse"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "description": "检查数据库连接,并(可配置)实际调用一次大模型",
                "produces": ["application/json"],
                "tags": ["系统"],
                "summary": "健康检查",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.BookResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string", "example": "1984"},
                "author": {"type": "string", "example": "George Orwell"},
                "isbn": {"type": "string", "example": "978-0-452-28423-4"},
                "genre": {"type": "string", "example": "Dystopian Fiction"},
                "publication_year": {"type": "integer", "example": 1949},
                "description": {"type": "string", "example": "A dystopian social science fiction novel"},
                "available": {"type": "boolean", "example": true},
                "created_at": {"type": "string", "example": "2025-01-15T10:30:00Z"}
            }
        },
        "dto.CreateBookRequest": {
            "type": "object",
            "required": ["author", "isbn", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 200, "example": "1984"},
                "author": {"type": "string", "maxLength": 150, "example": "George Orwell"},
                "isbn": {"type": "string", "example": "978-0-452-28423-4"},
                "genre": {"type": "string", "maxLength": 100, "example": "Dystopian Fiction"},
                "publication_year": {"type": "integer", "maximum": 9999, "minimum": 0, "example": 1949},
                "description": {"type": "string", "example": "A dystopian social science fiction novel"}
            }
        },
        "dto.UpdateBookRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "author": {"type": "string", "maxLength": 150},
                "isbn": {"type": "string"},
                "genre": {"type": "string", "maxLength": 100},
                "publication_year": {"type": "integer", "maximum": 9999, "minimum": 0},
                "description": {"type": "string"},
                "available": {"type": "boolean"}
            }
        },
        "dto.SummaryResponse": {
            "type": "object",
            "properties": {
                "summary": {"type": "string", "example": "A chilling portrait of a totalitarian future."}
            }
        },
        "dto.SearchRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "classic dystopian novels"}
            }
        },
        "dto.RecommendRequest": {
            "type": "object",
            "properties": {
                "preferences": {"type": "string", "example": "I enjoy science fiction with political themes"}
            }
        },
        "dto.RecommendationResponse": {
            "type": "object",
            "properties": {
                "book_id": {"type": "integer", "example": 2},
                "reason": {"type": "string", "example": "Matches your interest in political fiction"},
                "rating": {"type": "integer", "example": 9},
                "book": {"$ref": "#/definitions/dto.BookResponse"}
            }
        },
        "dto.RecommendationsResponse": {
            "type": "object",
            "properties": {
                "recommendations": {"type": "array", "items": {"$ref": "#/definitions/dto.RecommendationResponse"}}
            }
        },
        "dto.CreateUserRequest": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "example": "John Doe"},
                "email": {"type": "string", "maxLength": 120, "example": "john@example.com"},
                "phone": {"type": "string", "maxLength": 20, "example": "555-0123"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "John Doe"},
                "email": {"type": "string", "example": "john@example.com"},
                "phone": {"type": "string", "example": "555-0123"},
                "created_at": {"type": "string", "example": "2025-01-15T10:30:00Z"}
            }
        },
        "dto.BorrowRequest": {
            "type": "object",
            "properties": {
                "book_id": {"type": "integer", "example": 1},
                "user_id": {"type": "integer", "example": 1}
            }
        },
        "dto.ReturnRequest": {
            "type": "object",
            "properties": {
                "record_id": {"type": "integer", "example": 1}
            }
        },
        "dto.RecordResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "book_id": {"type": "integer", "example": 1},
                "user_id": {"type": "integer", "example": 1},
                "borrow_date": {"type": "string", "example": "2025-01-15T10:30:00Z"},
                "return_date": {"type": "string"},
                "returned": {"type": "boolean", "example": false},
                "book": {"$ref": "#/definitions/dto.BookResponse"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.StatsResponse": {
            "type": "object",
            "properties": {
                "total_books": {"type": "integer", "example": 5},
                "available_books": {"type": "integer", "example": 4},
                "borrowed_books": {"type": "integer", "example": 1},
                "total_users": {"type": "integer", "example": 1},
                "active_borrows": {"type": "integer", "example": 1}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "database": {"type": "string", "example": "connected"},
                "ai_service": {"type": "string", "example": "working"},
                "error": {"type": "string"},
                "timestamp": {"type": "string", "example": "2025-01-15T10:30:00Z"}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Library Management API",
	Description:      "图书馆管理系统:图书、用户、借阅,以及基于大模型的摘要、搜索与推荐",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
