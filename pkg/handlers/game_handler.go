package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/backsoul/trivia-board/pkg/models"
	"github.com/backsoul/trivia-board/pkg/services"
	websocketHub "github.com/backsoul/trivia-board/pkg/websocket"
	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// GameHandler handles the game-control API and the WebSocket feed.
type GameHandler struct {
	gameService *services.GameService
	hub         *websocketHub.Hub
	health      func() error
}

func NewGameHandler(gameService *services.GameService, hub *websocketHub.Hub, health func() error) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		hub:         hub,
		health:      health,
	}
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true // single-operator tool served on a trusted network
	},
}

// HandleWebSocket handles GET /ws. New clients receive the current snapshot
// as their first message so a freshly opened board is in sync. The snapshot
// goes through the hub rather than being written here: the hub's loop is the
// connection's only writer.
func (h *GameHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	err := upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
		defer ws.Close()

		snapshot := websocketHub.Message{
			Type: "state",
			Data: h.gameService.Snapshot(),
		}
		welcome, err := json.Marshal(snapshot)
		if err != nil {
			log.Printf("⚠️ Error serializing welcome snapshot: %v", err)
			welcome = nil
		}

		h.hub.Register(ws, welcome)
		defer h.hub.Unregister(ws)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
	})

	if err != nil {
		log.Printf("⚠️ Error upgrading to WebSocket: %v", err)
		ctx.Error("Error upgrading to WebSocket", fasthttp.StatusInternalServerError)
	}
}

// HealthCheck handles GET /api/health
func (h *GameHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	if err := h.health(); err != nil {
		respondWithError(ctx, fasthttp.StatusServiceUnavailable, fmt.Sprintf("storage unavailable: %v", err))
		return
	}
	respondWithSuccess(ctx, map[string]string{"status": "ok"}, "Service healthy")
}

// GetState handles GET /api/game/state
func (h *GameHandler) GetState(ctx *fasthttp.RequestCtx) {
	respondWithSuccess(ctx, h.gameService.Snapshot(), "Game state retrieved")
}

// GetBoard handles GET /api/game/board
func (h *GameHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	respondWithSuccess(ctx, map[string]interface{}{
		"round":      h.gameService.Snapshot().Round,
		"categories": h.gameService.Board(),
	}, "Board retrieved")
}

// Login handles POST /api/game/login
func (h *GameHandler) Login(ctx *fasthttp.RequestCtx) {
	var request models.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.gameService.Login(request.Username, request.Password); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, nil, "Login successful")
}

// SelectMode handles POST /api/game/mode
func (h *GameHandler) SelectMode(ctx *fasthttp.RequestCtx) {
	var request models.ModeRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.gameService.SelectMode(request.Mode); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, map[string]string{"mode": request.Mode}, "View mode switched")
}

// OpenQuestion handles POST /api/game/question
func (h *GameHandler) OpenQuestion(ctx *fasthttp.RequestCtx) {
	var request models.OpenQuestionRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	question, err := h.gameService.OpenQuestion(request.CategoryIndex, request.QuestionIndex)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, question, fmt.Sprintf("Question open for %d points", question.ActualPoints))
}

// RevealAnswer handles POST /api/game/question/reveal
func (h *GameHandler) RevealAnswer(ctx *fasthttp.RequestCtx) {
	h.gameService.RevealAnswer()
	h.broadcastState()
	respondWithSuccess(ctx, h.gameService.CurrentQuestion(), "Answer revealed")
}

// CloseQuestion handles POST /api/game/question/close
func (h *GameHandler) CloseQuestion(ctx *fasthttp.RequestCtx) {
	h.gameService.CloseQuestion()
	h.broadcastState()
	respondWithSuccess(ctx, nil, "Back to board")
}

// AwardPoints handles POST /api/game/question/award
func (h *GameHandler) AwardPoints(ctx *fasthttp.RequestCtx) {
	var request models.AwardRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	team, err := h.gameService.AwardPoints(request.TeamID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, models.TeamResponse{
		Team: &models.TeamView{Team: *team, ColorScheme: team.Colors()},
	}, fmt.Sprintf("Points awarded to %q", team.Name))
}

// SetRound handles POST /api/game/round
func (h *GameHandler) SetRound(ctx *fasthttp.RequestCtx) {
	var request models.RoundRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.gameService.SetRound(request.Round); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, map[string]int{"round": request.Round}, "Round switched")
}

// TriggerBuzzer handles POST /api/game/buzzer
func (h *GameHandler) TriggerBuzzer(ctx *fasthttp.RequestCtx) {
	h.gameService.TriggerBuzzer()
	h.broadcastState()
	respondWithSuccess(ctx, map[string]bool{"buzzerActive": true}, "Buzz!")
}

// ResetGame handles POST /api/game/reset
func (h *GameHandler) ResetGame(ctx *fasthttp.RequestCtx) {
	var request models.ConfirmRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	if !h.gameService.ResetGame(request.Confirmed) {
		respondWithSuccess(ctx, map[string]interface{}{"performed": false}, "Reset not confirmed, nothing changed")
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, map[string]interface{}{"performed": true}, "Game progress reset")
}

// ClearAllData handles POST /api/game/clear
func (h *GameHandler) ClearAllData(ctx *fasthttp.RequestCtx) {
	var request models.ConfirmRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	if !h.gameService.ClearAllData(request.Confirmed) {
		respondWithSuccess(ctx, map[string]interface{}{"performed": false}, "Clear not confirmed, nothing changed")
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, map[string]interface{}{"performed": true}, "All data cleared")
}

func (h *GameHandler) broadcastState() {
	h.hub.BroadcastMessage("state", h.gameService.Snapshot())
}
