package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	id       string
	name     string
	handicap float64
	aliases  []string
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// A real course with its stroke index per hole.
	courseID := "seeded-oakmont-hills"
	_, err = db.Exec("INSERT OR IGNORE INTO courses (id, name) VALUES (?, ?)", courseID, "Oakmont Hills")
	if err != nil {
		log.Fatalf("Failed to insert course: %s", err)
	}

	strokeIndex := []int{5, 13, 1, 9, 17, 3, 15, 7, 11, 2, 14, 6, 18, 10, 4, 16, 8, 12}
	for hole, hcp := range strokeIndex {
		_, err := db.Exec("INSERT OR IGNORE INTO course_holes (course_id, hole_number, hcp) VALUES (?, ?, ?)",
			courseID, hole+1, hcp)
		if err != nil {
			log.Fatalf("Failed to insert hole %d: %s", hole+1, err)
		}
	}
	log.Info("Ensured seeded course exists.", "course", "Oakmont Hills")

	players := []seedPlayer{
		{id: "player-1", name: "Michael", handicap: 12.4, aliases: []string{"Mike"}},
		{id: "player-2", name: "Jonas", handicap: 18.0},
		{id: "player-3", name: "Sofie", handicap: 24.7, aliases: []string{"Sof"}},
		{id: "player-4", name: "Henrik", handicap: 9.1},
	}

	for _, p := range players {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, handicap_index) VALUES (?, ?, ?)",
			p.id, p.name, p.handicap)
		if err != nil {
			log.Fatalf("Failed to insert player %s: %s", p.name, err)
		}
		for _, alias := range p.aliases {
			_, err := db.Exec("INSERT OR IGNORE INTO player_aliases (player_id, alias, created_at) VALUES (?, ?, ?)",
				p.id, alias, time.Now().Unix())
			if err != nil {
				log.Fatalf("Failed to insert alias %s: %s", alias, err)
			}
		}
	}
	log.Info("Ensured seeded players exist.", "count", len(players))

	// One open demo session with the full foursome.
	sessionID := uuid.NewString()
	_, err = db.Exec(`INSERT INTO sessions (id, course_id, game_type, game_mode, bet_unit, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, courseID, "stroke_play", "individual", "winner", "OPEN", time.Now().Unix())
	if err != nil {
		log.Fatalf("Failed to insert session: %s", err)
	}

	for i, p := range players {
		_, err := db.Exec(`INSERT INTO session_participants (session_id, player_id, position, name, handicap_index)
			VALUES (?, ?, ?, ?, ?)`,
			sessionID, p.id, i, p.name, p.handicap)
		if err != nil {
			log.Fatalf("Failed to insert participant %s: %s", p.name, err)
		}
	}

	log.Info("Successfully seeded demo session.", "sessionID", sessionID)
}
