package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/backsoul/trivia-board/pkg/models"
	"github.com/backsoul/trivia-board/pkg/services"
	websocketHub "github.com/backsoul/trivia-board/pkg/websocket"
	"github.com/valyala/fasthttp"
)

// TeamHandler handles the team roster API.
type TeamHandler struct {
	teamService *services.TeamService
	gameService *services.GameService
	hub         *websocketHub.Hub
}

func NewTeamHandler(teamService *services.TeamService, gameService *services.GameService, hub *websocketHub.Hub) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		gameService: gameService,
		hub:         hub,
	}
}

// GetTeams handles GET /api/teams
func (h *TeamHandler) GetTeams(ctx *fasthttp.RequestCtx) {
	views := h.teamService.TeamViews()
	respondWithSuccess(ctx, models.TeamResponse{
		Teams: views,
		Count: len(views),
	}, "Teams retrieved")
}

// AddTeam handles POST /api/teams
func (h *TeamHandler) AddTeam(ctx *fasthttp.RequestCtx) {
	var request models.AddTeamRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	team, err := h.teamService.AddTeam(request.Name)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, models.TeamResponse{
		Team: &models.TeamView{Team: *team, ColorScheme: team.Colors()},
	}, fmt.Sprintf("Team %q added", team.Name))
}

// RemoveTeam handles DELETE /api/teams/{id}
func (h *TeamHandler) RemoveTeam(ctx *fasthttp.RequestCtx) {
	id, ok := teamID(ctx)
	if !ok {
		return
	}

	h.teamService.RemoveTeam(id)
	h.broadcastState()
	respondWithSuccess(ctx, nil, "Team removed")
}

// AdjustScore handles POST /api/teams/{id}/score
func (h *TeamHandler) AdjustScore(ctx *fasthttp.RequestCtx) {
	id, ok := teamID(ctx)
	if !ok {
		return
	}

	var request models.ScoreAdjustRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	team, err := h.teamService.AdjustScore(id, request.Delta)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, models.TeamResponse{
		Team: &models.TeamView{Team: *team, ColorScheme: team.Colors()},
	}, fmt.Sprintf("Score of %q is now %d", team.Name, team.Score))
}

// ResetScores handles POST /api/teams/reset-scores
func (h *TeamHandler) ResetScores(ctx *fasthttp.RequestCtx) {
	var request models.ConfirmRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "invalid JSON")
		return
	}

	if !h.gameService.ResetAllScores(request.Confirmed) {
		respondWithSuccess(ctx, map[string]interface{}{"performed": false}, "Score reset not confirmed, nothing changed")
		return
	}

	h.broadcastState()
	respondWithSuccess(ctx, map[string]interface{}{"performed": true}, "All scores reset to zero")
}

func (h *TeamHandler) broadcastState() {
	h.hub.BroadcastMessage("state", h.gameService.Snapshot())
}

// teamID pulls the path id set by the router. Replies with 400 itself when
// the value is not numeric.
func teamID(ctx *fasthttp.RequestCtx) (int, bool) {
	idStr, _ := ctx.UserValue("id").(string)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("invalid team id %q", idStr))
		return 0, false
	}
	return id, true
}
