package http_game

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/mustachio/server/internal/delivery/http/common"
	"github.com/mustachio/server/internal/store"
	usecase_minigame "github.com/mustachio/server/internal/usecase/minigame"
	usecase_turn "github.com/mustachio/server/internal/usecase/turn"
)

// Controller exposes the turn state machine and the mini-game event feed.
// Every route requires the acting player's id in the X-Player-Id header.
type Controller struct {
	turns      *usecase_turn.Usecase
	dispatcher *usecase_minigame.Dispatcher
	logger     *slog.Logger
}

func New(turns *usecase_turn.Usecase, dispatcher *usecase_minigame.Dispatcher) *Controller {
	return &Controller{
		turns:      turns,
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	room := router.Group("/rooms/:code")
	{
		room.POST("/start", c.start)
		room.POST("/draw", c.draw)
		room.POST("/end-turn", c.endTurn)
		room.POST("/minigame/events", c.minigameEvent)
		room.GET("/rule", c.rule)
	}
}

func (c *Controller) start(ctx *gin.Context) {
	code, playerID, ok := c.identity(ctx)
	if !ok {
		return
	}

	room, err := c.turns.Start(ctx.Request.Context(), code, playerID)
	if err != nil {
		c.logger.Error("failed to start game",
			slog.String("room", code),
			slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

// draw reveals a card and immediately seeds its mini-game, so clients see the
// waiting phase (and its deadlines run) before any player event arrives.
func (c *Controller) draw(ctx *gin.Context) {
	code, playerID, ok := c.identity(ctx)
	if !ok {
		return
	}

	room, err := c.turns.Draw(ctx.Request.Context(), code, playerID)
	if err != nil {
		c.logger.Error("failed to draw card",
			slog.String("room", code),
			slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	c.dispatcher.CancelRoom(code)
	if room.ActiveCard != nil {
		primed, err := c.dispatcher.Prime(ctx.Request.Context(), code)
		if err != nil {
			c.logger.Error("failed to prime mini-game",
				slog.String("room", code),
				slog.String("error", err.Error()))
			c.writeError(ctx, err)
			return
		}
		room = primed
	}

	ctx.JSON(http.StatusOK, room)
}

func (c *Controller) endTurn(ctx *gin.Context) {
	code, playerID, ok := c.identity(ctx)
	if !ok {
		return
	}

	room, err := c.turns.EndTurn(ctx.Request.Context(), code, playerID)
	if err != nil {
		c.logger.Error("failed to end turn",
			slog.String("room", code),
			slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	// Pending follow-ups belong to the turn that just ended.
	c.dispatcher.CancelRoom(code)
	ctx.JSON(http.StatusOK, room)
}

func (c *Controller) minigameEvent(ctx *gin.Context) {
	code, playerID, ok := c.identity(ctx)
	if !ok {
		return
	}

	var ev usecase_minigame.Event
	if err := ctx.ShouldBindJSON(&ev); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}
	ev.Actor = playerID

	room, err := c.dispatcher.Handle(ctx.Request.Context(), code, ev)
	if err != nil {
		c.logger.Error("failed to apply mini-game event",
			slog.String("room", code),
			slog.String("event", string(ev.Type)),
			slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

// rule serves the human-readable rule of the revealed card, for the ranks
// played around the table as much as for the interactive ones.
func (c *Controller) rule(ctx *gin.Context) {
	rule, err := c.dispatcher.Rule(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rule)
}

func (c *Controller) identity(ctx *gin.Context) (code, playerID string, ok bool) {
	playerID = ctx.GetHeader(http_common.PlayerHeader)
	if playerID == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: http_common.PlayerHeader + " not found",
		})
		return "", "", false
	}
	return ctx.Param("code"), playerID, true
}

func (c *Controller) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_turn.ErrNotFound),
		errors.Is(err, usecase_minigame.ErrNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
	case errors.Is(err, usecase_turn.ErrNotHost),
		errors.Is(err, usecase_turn.ErrNotEnough),
		errors.Is(err, usecase_turn.ErrNotYourTurn),
		errors.Is(err, usecase_turn.ErrCardPending),
		errors.Is(err, usecase_turn.ErrNotPlaying),
		errors.Is(err, usecase_minigame.ErrNotPlaying),
		errors.Is(err, usecase_minigame.ErrNoActiveCard),
		errors.Is(err, usecase_minigame.ErrNoSuchGame),
		errors.Is(err, usecase_minigame.ErrNotAllowed):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_minigame.ErrInvalidEvent):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{Message: "unavailable"})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}
