package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var db *sql.DB

// InitDB opens the Postgres connection backing the portal session store and
// creates the table if it is missing. Unlike a primary datastore this one is
// allowed to be down: the portal still serves public routes and simply treats
// every session as logged out, so failures here log and return nil instead of
// aborting startup.
func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment as-is")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Println("[storage] failed to open session database:", err)
		return nil
	}

	// Set connection pool settings optimized for light server load
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Println("[storage] session database unreachable:", err)
		db = nil
		return nil
	}

	createQuery := `CREATE TABLE IF NOT EXISTS portal_session (
		session_id TEXT PRIMARY KEY,
		auth_token TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.Exec(createQuery); err != nil {
		log.Println("[storage] failed to ensure portal_session table:", err)
		db = nil
		return nil
	}

	return db
}

func GetDB() *sql.DB {
	return db
}

// TokenStore is the per-session bearer token persistence the route guard and
// auth handlers use. Implementations never surface storage errors to callers:
// a broken store reads as "no token", which routes the browser to /login.
type TokenStore interface {
	Save(sessionID, token string)
	Read(sessionID string) string
	Clear(sessionID string)
}

// SessionStore is the Postgres TokenStore. A nil db is a valid (permanently
// empty) store.
type SessionStore struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{DB: db, TTL: 7 * 24 * time.Hour}
}

func (s *SessionStore) Save(sessionID, token string) {
	if s.DB == nil {
		log.Println("[storage] session store unavailable, token not persisted")
		return
	}
	query := `INSERT INTO portal_session (session_id, auth_token, created_at, expires_at)
	          VALUES ($1, $2, NOW(), $3)
	          ON CONFLICT (session_id) DO UPDATE SET auth_token = $2, expires_at = $3`
	if _, err := s.DB.Exec(query, sessionID, token, time.Now().Add(s.TTL)); err != nil {
		log.Println("[storage] failed to save session token:", err)
	}
}

func (s *SessionStore) Read(sessionID string) string {
	if s.DB == nil {
		return ""
	}
	var token string
	query := `SELECT auth_token FROM portal_session WHERE session_id = $1 AND expires_at > NOW()`
	err := s.DB.QueryRow(query, sessionID).Scan(&token)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Println("[storage] failed to read session token:", err)
		}
		return ""
	}
	return token
}

func (s *SessionStore) Clear(sessionID string) {
	if s.DB == nil {
		return
	}
	if _, err := s.DB.Exec(`DELETE FROM portal_session WHERE session_id = $1`, sessionID); err != nil {
		log.Println("[storage] failed to clear session:", err)
	}
}

// CleanupExpiredSessions removes sessions past their expiry. Run from cron.
func CleanupExpiredSessions(db *sql.DB) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`DELETE FROM portal_session WHERE expires_at < NOW()`)
	return err
}
