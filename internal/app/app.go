package app

import (
	"log"

	"github.com/mustachio/server/internal/config"
	http_game "github.com/mustachio/server/internal/delivery/http/game"
	http_init "github.com/mustachio/server/internal/delivery/http/init"
	http_room "github.com/mustachio/server/internal/delivery/http/room"
	ws_room "github.com/mustachio/server/internal/delivery/ws/room"
	infra_redis_init "github.com/mustachio/server/internal/infra/redis/init"
	"github.com/mustachio/server/internal/store"
	store_memory "github.com/mustachio/server/internal/store/memory"
	store_redis "github.com/mustachio/server/internal/store/redis"
	usecase_minigame "github.com/mustachio/server/internal/usecase/minigame"
	usecase_room "github.com/mustachio/server/internal/usecase/room"
	usecase_turn "github.com/mustachio/server/internal/usecase/turn"
)

func Go(cfg *config.Config) {
	var roomStore store.Store
	switch cfg.Store.Backend {
	case "redis":
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		roomStore = store_redis.New(redisConn)
	case "memory":
		roomStore = store_memory.New()
	default:
		log.Fatalf("unknown store backend: %s", cfg.Store.Backend)
	}

	roomUC := usecase_room.New(roomStore)
	turnUC := usecase_turn.New(roomStore)
	dispatcher := usecase_minigame.NewDispatcher(roomStore, usecase_minigame.NewScheduler())

	hub := ws_room.NewHub(roomUC)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_room.New(roomUC, cfg.HTTP.PublicBaseURL))
	controllerPool.Add(http_game.New(turnUC, dispatcher))
	controllerPool.AddRoot(ws_room.NewController(hub, roomUC))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
