package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/backsoul/trivia-board/pkg/handlers"
	"github.com/backsoul/trivia-board/pkg/services"
	"github.com/backsoul/trivia-board/pkg/store"
	"github.com/backsoul/trivia-board/pkg/websocket"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"
)

var (
	redisStore      *store.RedisStore
	questionService *services.QuestionService
	teamService     *services.TeamService
	progressService *services.ProgressService
	gameService     *services.GameService
	teamHandler     *handlers.TeamHandler
	gameHandler     *handlers.GameHandler
	hub             *websocket.Hub
)

func main() {
	log.Println("🚀 Starting trivia board server")

	// .env is optional; real env vars win either way
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded configuration from .env")
	}

	initStore()
	initServices()

	server := &fasthttp.Server{
		Handler: requestHandler,
		Name:    "Trivia-Board/1.0",
	}

	addr := getEnv("LISTEN_ADDR", ":8080")
	log.Printf("🎮 Game board:  http://localhost%s", addr)
	log.Printf("🔔 Buzzer:      http://localhost%s/buzzer", addr)
	log.Printf("🎛️  Admin panel: http://localhost%s/admin", addr)

	if err := server.ListenAndServe(addr); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

func initStore() {
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := getEnv("REDIS_PASSWORD", "")

	log.Printf("🔌 Connecting to Redis at %s...", redisAddr)
	redisStore = store.NewRedisStore(redisAddr, redisPassword, 0)
}

func initServices() {
	log.Println("⚙️  Initializing services...")

	var err error
	questionService, err = services.NewQuestionServiceFromFile(getEnv("QUESTIONS_FILE", "questions.json"))
	if err != nil {
		log.Fatalf("❌ Error loading question bank: %v", err)
	}

	teamService = services.NewTeamService(redisStore)
	progressService = services.NewProgressService(redisStore)

	hub = websocket.NewHub()
	go hub.Run()

	// the hub doubles as the buzzer's sound collaborator: the buzz sound
	// plays on the board device, not on the server
	gameService = services.NewGameService(questionService, teamService, progressService, hub)

	teamHandler = handlers.NewTeamHandler(teamService, gameService, hub)
	gameHandler = handlers.NewGameHandler(gameService, hub, redisStore.HealthCheck)
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	log.Printf("📡 %s %s", method, path)

	ctx.Response.Header.Set("Server", "Trivia-Board/1.0")
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// CORS for development
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if method == "OPTIONS" {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	// view pages
	case path == "/":
		serveFile(ctx, "index.html")
	case path == "/admin":
		serveFile(ctx, "admin.html")
	case path == "/buzzer":
		serveFile(ctx, "buzzer.html")
	case path == "/favicon.ico":
		ctx.SetStatusCode(fasthttp.StatusNotFound)

	// health
	case path == "/api/health":
		gameHandler.HealthCheck(ctx)

	// game control
	case path == "/api/game/state" && method == "GET":
		gameHandler.GetState(ctx)
	case path == "/api/game/board" && method == "GET":
		gameHandler.GetBoard(ctx)
	case path == "/api/game/login" && method == "POST":
		gameHandler.Login(ctx)
	case path == "/api/game/mode" && method == "POST":
		gameHandler.SelectMode(ctx)
	case path == "/api/game/question" && method == "POST":
		gameHandler.OpenQuestion(ctx)
	case path == "/api/game/question/reveal" && method == "POST":
		gameHandler.RevealAnswer(ctx)
	case path == "/api/game/question/close" && method == "POST":
		gameHandler.CloseQuestion(ctx)
	case path == "/api/game/question/award" && method == "POST":
		gameHandler.AwardPoints(ctx)
	case path == "/api/game/round" && method == "POST":
		gameHandler.SetRound(ctx)
	case path == "/api/game/buzzer" && method == "POST":
		gameHandler.TriggerBuzzer(ctx)
	case path == "/api/game/reset" && method == "POST":
		gameHandler.ResetGame(ctx)
	case path == "/api/game/clear" && method == "POST":
		gameHandler.ClearAllData(ctx)

	// teams
	case path == "/api/teams" && method == "GET":
		teamHandler.GetTeams(ctx)
	case path == "/api/teams" && method == "POST":
		teamHandler.AddTeam(ctx)
	case path == "/api/teams/reset-scores" && method == "POST":
		teamHandler.ResetScores(ctx)
	case strings.HasPrefix(path, "/api/teams/"):
		handleTeamRoutes(ctx, path, method)

	// WebSocket feed
	case path == "/ws":
		gameHandler.HandleWebSocket(ctx)

	default:
		serve404(ctx)
	}
}

func handleTeamRoutes(ctx *fasthttp.RequestCtx, path, method string) {
	parts := strings.Split(path, "/")

	// /api/teams/{id}
	if len(parts) == 4 && method == "DELETE" {
		ctx.SetUserValue("id", parts[3])
		teamHandler.RemoveTeam(ctx)
		return
	}

	// /api/teams/{id}/score
	if len(parts) == 5 && parts[4] == "score" && method == "POST" {
		ctx.SetUserValue("id", parts[3])
		teamHandler.AdjustScore(ctx)
		return
	}

	serve404(ctx)
}

func serveFile(ctx *fasthttp.RequestCtx, filename string) {
	filePath := filepath.Join(".", filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBodyString(`<!DOCTYPE html>
<html>
<head><title>File not found</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
	<h1>⚠️ File not found</h1>
	<p>The file <strong>` + filename + `</strong> does not exist on the server.</p>
	<p>Place the view pages next to the binary, or use the JSON API directly.</p>
</body>
</html>`)
		return
	}

	if filepath.Ext(filename) == ".html" {
		ctx.SetContentType("text/html; charset=utf-8")
	}

	fasthttp.ServeFile(ctx, filePath)
}

func serve404(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBodyString(`<!DOCTYPE html>
<html>
<head><title>404 - Not found</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
	<h1>🎮 404 - Not found</h1>
	<p><a href="/">Game board</a> · <a href="/buzzer">Buzzer</a> · <a href="/admin">Admin panel</a></p>
	<div style="text-align: left; display: inline-block; font-family: monospace;">
		<h3>API endpoints:</h3>
		<div>GET  /api/health</div>
		<div>GET  /api/game/state</div>
		<div>GET  /api/game/board</div>
		<div>POST /api/game/login</div>
		<div>POST /api/game/mode</div>
		<div>POST /api/game/question</div>
		<div>POST /api/game/question/reveal</div>
		<div>POST /api/game/question/close</div>
		<div>POST /api/game/question/award</div>
		<div>POST /api/game/round</div>
		<div>POST /api/game/buzzer</div>
		<div>POST /api/game/reset</div>
		<div>POST /api/game/clear</div>
		<div>GET  /api/teams</div>
		<div>POST /api/teams</div>
		<div>DELETE /api/teams/{id}</div>
		<div>POST /api/teams/{id}/score</div>
		<div>POST /api/teams/reset-scores</div>
		<div>GET  /ws</div>
	</div>
</body>
</html>`)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
