package controllers

import (
	"math"

	"github.com/gin-gonic/gin"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
}

type PaginationMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func NewPaginationMeta(page, limit int, total int64) *PaginationMeta {
	return &PaginationMeta{
		CurrentPage:  page,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, StandardResponse{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, message string, data interface{}, pagination *PaginationMeta) {
	c.JSON(200, StandardResponse{Success: true, Message: message, Data: data, Pagination: pagination})
}

func respondError(c *gin.Context, status int, errKind, message string) {
	c.JSON(status, StandardResponse{Success: false, Error: errKind, Message: message})
}
