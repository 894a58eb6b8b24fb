package ws_room

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	http_common "github.com/mustachio/server/internal/delivery/http/common"
	usecase_room "github.com/mustachio/server/internal/usecase/room"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Controller struct {
	hub     *Hub
	usecase *usecase_room.Usecase
	logger  *slog.Logger
}

func NewController(hub *Hub, usecase *usecase_room.Usecase) *Controller {
	return &Controller{
		hub:     hub,
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/rooms/:code", c.roomWS)
}

// roomWS upgrades the connection and mirrors the room to it. The optional
// player_id query seats the connection: when it drops, that player leaves.
func (c *Controller) roomWS(ctx *gin.Context) {
	code := ctx.Param("code")

	if _, err := c.usecase.Get(ctx.Request.Context(), code); err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade to websocket",
			slog.String("error", err.Error()))
		return
	}

	client := &Client{
		Conn:     conn,
		Send:     make(chan []byte, 256),
		RoomCode: code,
		PlayerID: ctx.Query("player_id"),
	}

	if err := c.hub.RegisterClient(client); err != nil {
		c.logger.Error("failed to subscribe to room",
			slog.String("room", code),
			slog.String("error", err.Error()))
		conn.Close()
		return
	}

	go c.hub.StartClientWriting(client)
	go c.hub.StartClientReading(client)
}
