package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TipSource interface {
	Current() string
}

type TipsHandler struct {
	tips TipSource
}

func NewTipsHandler(tips TipSource) *TipsHandler {
	return &TipsHandler{tips: tips}
}

func (h *TipsHandler) Register(router *gin.RouterGroup) {
	router.GET("/tips/current", h.current)
}

func (h *TipsHandler) current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tip": h.tips.Current()})
}
