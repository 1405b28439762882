package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"io"

	"github.com/charmbracelet/log"
	"github.com/skovlund/birdieledger/internal/format"
	"github.com/skovlund/birdieledger/internal/pubsub"
	"github.com/skovlund/birdieledger/internal/scan"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		// Sessions reference players, so they go first.
		s.Sessions.Clear()
		s.Players.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

// CreateSessionHandler builds a session from roster players and the chosen
// format. Illegal format combinations are rejected before anything is stored.
func (s *Server) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CourseID  *string  `json:"course_id"`
			GameType  string   `json:"game_type"`
			GameMode  string   `json:"game_mode"`
			PlayerIDs []string `json:"player_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode create session request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		participants := make([]session.Participant, 0, len(req.PlayerIDs))
		for i, playerID := range req.PlayerIDs {
			player, err := s.Players.GetPlayer(playerID)
			if err != nil {
				log.Error("Unknown player on session create", "error", err, "player", playerID)
				http.Error(w, fmt.Sprintf("Unknown player %s", playerID), http.StatusBadRequest)
				return
			}
			participants = append(participants, session.Participant{
				PlayerID:      player.ID,
				Position:      i,
				Name:          player.Name,
				Aliases:       player.Aliases,
				HandicapIndex: player.HandicapIndex,
			})
		}

		sess, err := s.Sessions.CreateSession(session.CreateSessionParams{
			CourseID:     req.CourseID,
			GameType:     format.GameType(req.GameType),
			GameMode:     format.GameMode(req.GameMode),
			Participants: participants,
		})
		if err != nil {
			s.Metrics.IncFormatRejections()
			log.Warn("Rejected session create", "error", err, "game_type", req.GameType, "players", len(participants))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.Metrics.IncSessionsCreated()
		log.Info("Created session", "sessionID", sess.ID, "game_type", sess.GameType, "players", len(sess.Participants))
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sess); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) GetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionID")
		if sessionID == "" {
			http.Error(w, "sessionID is required", http.StatusBadRequest)
			return
		}
		sess, err := s.Sessions.GetSession(sessionID)
		if err != nil {
			log.Error("Failed to get session", "error", err, "sessionID", sessionID)
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sess); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

// GameModesHandler lists the legal modes and bet units for a game type and
// player count, so a client can grey out what the engine would reject anyway.
func (s *Server) GameModesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameType := format.GameType(r.URL.Query().Get("game_type"))
		if !format.KnownGameType(gameType) {
			http.Error(w, fmt.Sprintf("unknown game type %q", gameType), http.StatusBadRequest)
			return
		}
		playerCount, err := strconv.Atoi(r.URL.Query().Get("players"))
		if err != nil || playerCount < 1 {
			http.Error(w, "players must be a positive number", http.StatusBadRequest)
			return
		}

		resp := struct {
			GameType       format.GameType   `json:"game_type"`
			Modes          []format.GameMode `json:"modes"`
			BetUnits       []format.BetUnit  `json:"bet_units"`
			DefaultBetUnit format.BetUnit    `json:"default_bet_unit"`
		}{
			GameType:       gameType,
			Modes:          format.Modes(gameType, playerCount),
			BetUnits:       format.BetUnits(gameType),
			DefaultBetUnit: format.DefaultBetUnit(gameType),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

// SetGameTypeHandler changes the game on an existing session. The store
// re-validates the combination and normalizes the bet unit.
func (s *Server) SetGameTypeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id"`
			GameType  string `json:"game_type"`
			GameMode  string `json:"game_mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		err := s.Sessions.SetGameType(req.SessionID, format.GameType(req.GameType), format.GameMode(req.GameMode))
		if err != nil {
			s.Metrics.IncFormatRejections()
			log.Warn("Rejected game type change", "error", err, "sessionID", req.SessionID)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) UpdateHandicapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string  `json:"session_id"`
			PlayerID  string  `json:"player_id"`
			Value     float64 `json:"value"`
			// Persist also writes the value back to the roster record.
			Persist bool `json:"persist"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Sessions.UpdateParticipantHandicap(req.SessionID, req.PlayerID, req.Value); err != nil {
			log.Warn("Rejected handicap update", "error", err, "sessionID", req.SessionID, "player", req.PlayerID)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Persist {
			if err := s.Players.UpdateHandicap(req.PlayerID, req.Value); err != nil {
				log.Error("Failed to persist handicap to roster", "error", err, "player", req.PlayerID)
			}
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) UpdateTeeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id"`
			PlayerID  string `json:"player_id"`
			TeeName   string `json:"tee_name"`
			TeeGender string `json:"tee_gender"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Sessions.UpdateParticipantTee(req.SessionID, req.PlayerID, req.TeeName, req.TeeGender); err != nil {
			log.Error("Failed to update tee", "error", err, "sessionID", req.SessionID, "player", req.PlayerID)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write([]byte("OK"))
	}
}

// ScanUploadHandler accepts an OCR result and publishes it for asynchronous
// processing. With dry_run the scan is processed inline and nothing is
// persisted.
func (s *Server) ScanUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var result scan.Result
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			log.Error("Failed to decode scan upload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if result.SessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}

		if isDryRunFromContext(r) {
			if err := s.Processor.ProcessScan(result, true); err != nil {
				log.Error("Dry-run scan processing failed", "error", err, "sessionID", result.SessionID)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Write([]byte("OK"))
			return
		}

		if err := s.pubsub.SendMessage(pubsub.EventScanCompleted, result); err != nil {
			log.Error("Failed to publish scan", "error", err, "sessionID", result.SessionID)
			http.Error(w, "Failed to publish scan", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("OK"))
	}
}

// ScanCompletedHandler is the Pub/Sub push endpoint for finished scans.
func (s *Server) ScanCompletedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received scan completed message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		result := scan.Result{}
		if err := s.pubsub.ProcessMessage(rawData, &result); err != nil {
			log.Error("Failed to decode scan payload", "error", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := s.Processor.ProcessScan(result, isDryRun); err != nil {
			log.Error("Failed to process scan", "error", err, "sessionID", result.SessionID)
			http.Error(w, "Failed to process scan", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// ReassignHandler cycles a participant to the next scanned entry when the
// automatic match got it wrong.
func (s *Server) ReassignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionID")
		playerID := r.URL.Query().Get("playerID")
		if sessionID == "" || playerID == "" {
			http.Error(w, "sessionID and playerID are required", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		outcome, err := s.Processor.CycleAssignment(sessionID, playerID, isDryRun)
		if err != nil {
			log.Error("Failed to cycle assignment", "error", err, "sessionID", sessionID, "player", playerID)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(outcome); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) AllocationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionID")
		if sessionID == "" {
			http.Error(w, "sessionID is required", http.StatusBadRequest)
			return
		}
		sess, err := s.Sessions.GetSession(sessionID)
		if err != nil {
			log.Error("Failed to get session", "error", err, "sessionID", sessionID)
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		allocations, err := s.Processor.Allocations(sess)
		if err != nil {
			log.Error("Failed to compute allocations", "error", err, "sessionID", sessionID)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(allocations); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StrokeSheetCommandHandler returns a handler for the /stroke-sheet Slack command.
func (s *Server) StrokeSheetCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		sessionID := r.FormValue("text")
		if sessionID == "" {
			http.Error(w, "Session ID is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received stroke sheet command", "sessionID", sessionID)

		sess, err := s.Sessions.GetSession(sessionID)
		if err != nil {
			log.Warn("Could not find session for stroke sheet", "sessionID", sessionID, "error", err)
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		allocations, err := s.Processor.Allocations(sess)
		if err != nil {
			http.Error(w, "Failed to compute stroke sheet", http.StatusInternalServerError)
			log.Error("Failed to compute stroke sheet", "error", err, "sessionID", sessionID)
			return
		}

		msg, err := s.Notifier.FormatStrokeSheetResponse(sess, allocations)
		if err != nil {
			http.Error(w, "Failed to format stroke sheet", http.StatusInternalServerError)
			log.Error("Failed to format stroke sheet", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
