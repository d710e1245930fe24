package main

import (
	"flag"
	"log"

	"shufflechess-backend/internal/controller"
	"shufflechess-backend/internal/engine"
	"shufflechess-backend/internal/middleware"
	"shufflechess-backend/internal/rules"
	"shufflechess-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	origin := flag.String("origin", "http://localhost:5173", "allowed CORS origin")
	flag.Parse()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// One rule book serves every match; it holds no per-game state.
	ruleBook := rules.NewRuleBook(engine.Movement{}, engine.Checker{}, engine.NewArbiter(), nil)

	gameManager := service.NewGameManager(ruleBook)
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.WebSocketUpgrade(), middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{*origin},
	}))
	app.Get("/ws/matchmaking", websocket.New(wsController.HandleMatchmaking))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)

	log.Fatal(app.Listen(*addr))
}
