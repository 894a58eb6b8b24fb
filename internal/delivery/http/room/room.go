package http_room

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	http_common "github.com/mustachio/server/internal/delivery/http/common"
	"github.com/mustachio/server/internal/store"
	usecase_room "github.com/mustachio/server/internal/usecase/room"
)

const qrSize = 256

type Controller struct {
	usecase *usecase_room.Usecase
	logger  *slog.Logger

	// publicBaseURL is the address players reach the app on, embedded in
	// the join QR code.
	publicBaseURL string
}

func New(usecase *usecase_room.Usecase, publicBaseURL string) *Controller {
	return &Controller{
		usecase:       usecase,
		logger:        slog.Default(),
		publicBaseURL: publicBaseURL,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:code", c.get)
		rooms.GET("/:code/qr", c.qr)
		rooms.POST("/:code/players", c.join)
		rooms.DELETE("/:code/players/:player_id", c.leave)
	}
}

type CreateRequestDTO struct {
	HostName string `json:"host_name" binding:"required"`
}

type CreateResponseDTO struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
}

func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code, hostID, err := c.usecase.Create(ctx.Request.Context(), req.HostName)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		RoomCode: code,
		PlayerID: hostID,
	})
}

func (c *Controller) get(ctx *gin.Context) {
	room, err := c.usecase.Get(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

type JoinRequestDTO struct {
	Name string `json:"name" binding:"required"`
}

type JoinResponseDTO struct {
	PlayerID string `json:"player_id"`
}

func (c *Controller) join(ctx *gin.Context) {
	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	playerID, err := c.usecase.Join(ctx.Request.Context(), ctx.Param("code"), req.Name)
	if err != nil {
		c.logger.Error("failed to join room",
			slog.String("room", ctx.Param("code")),
			slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, JoinResponseDTO{PlayerID: playerID})
}

func (c *Controller) leave(ctx *gin.Context) {
	err := c.usecase.Leave(ctx.Request.Context(), ctx.Param("code"), ctx.Param("player_id"))
	if err != nil {
		c.logger.Error("failed to leave room",
			slog.String("room", ctx.Param("code")),
			slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// qr renders the join link as a PNG so a phone can scan its way to the table.
func (c *Controller) qr(ctx *gin.Context) {
	code := ctx.Param("code")

	if _, err := c.usecase.Get(ctx.Request.Context(), code); err != nil {
		c.writeError(ctx, err)
		return
	}

	joinURL := fmt.Sprintf("%s/?room=%s", c.publicBaseURL, code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		c.logger.Error("failed to encode join QR", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

func (c *Controller) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_room.ErrEmptyName):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_room.ErrNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
	case errors.Is(err, usecase_room.ErrAlreadyStarted),
		errors.Is(err, usecase_room.ErrRoomFull),
		errors.Is(err, usecase_room.ErrNotInRoom):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{Message: "unavailable"})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}
