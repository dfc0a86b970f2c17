package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/in"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
)

type AvailabilityController struct {
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewAvailabilityController(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) *AvailabilityController {
	return &AvailabilityController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("AvailabilityController"),
	}
}

func (c *AvailabilityController) RegisterRoutes(router *gin.Engine) {
	router.Use(c.requestID())
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/photographers/:photographerId/availability", c.getAvailability)
		api.POST("/availability/check", c.checkAvailability)
		api.POST("/availability/batch", c.checkBatchAvailability)
	}
}

type CheckAvailabilityRequest struct {
	PhotographerID   *domain.PhotographerID `json:"photographerId" binding:"required"`
	Date             string                 `json:"date" binding:"required"`
	Time             string                 `json:"time" binding:"required"`
	PhotographerName string                 `json:"photographerName"`
}

type CheckBatchAvailabilityRequest struct {
	PhotographerIDs []domain.PhotographerID          `json:"photographerIds" binding:"required"`
	Date            string                           `json:"date" binding:"required"`
	Time            string                           `json:"time" binding:"required"`
	Photographers   map[domain.PhotographerID]string `json:"photographers"`
}

func (c *AvailabilityController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

func (c *AvailabilityController) getAvailability(ctx *gin.Context) {
	photographerID, err := domain.ParsePhotographerID(ctx.Param("photographerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photographer ID format"})
		return
	}

	date, err := c.parseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	result := c.useCase.GetPhotographerAvailability(ctx.Request.Context(), photographerID, date, "")

	ctx.JSON(http.StatusOK, result)
}

func (c *AvailabilityController) checkAvailability(ctx *gin.Context) {
	var req CheckAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := c.parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	result := c.useCase.CheckPhotographerAvailabilityAtTime(ctx.Request.Context(), *req.PhotographerID, date, req.Time, req.PhotographerName)

	ctx.JSON(http.StatusOK, result)
}

func (c *AvailabilityController) checkBatchAvailability(ctx *gin.Context) {
	var req CheckBatchAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := c.parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	result := c.useCase.GetPhotographersAvailability(ctx.Request.Context(), req.PhotographerIDs, date, req.Time, req.Photographers)

	ctx.JSON(http.StatusOK, gin.H{"results": result})
}

// parseDate: дата без таймзоны считается датой в таймзоне приложения
func (c *AvailabilityController) parseDate(value string) (time.Time, error) {
	date, err := utils.ParseDate(value, c.cfg.Location())
	if err != nil {
		return time.Time{}, err
	}
	return date, nil
}

func (c *AvailabilityController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !c.isAllowedClient(username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}

func (c *AvailabilityController) isAllowedClient(username, password string) bool {
	for _, client := range c.cfg.Auth.BasicClients {
		if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
			subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
			return true
		}
	}
	return false
}
