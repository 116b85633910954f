package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Models ──────────────────────────────────────────────────────────────────

// Plan is the persisted form of one planning run: the request essentials for
// listing, the full report as JSON, and the rendered PDF once generated.
type Plan struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Travelers   int       `json:"travelers"`
	Budget      float64   `json:"budget"`
	Currency    string    `json:"currency"`
	ReportJSON  string    `json:"report_json"`
	PDFData     []byte    `json:"pdf_data,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

func InitDB() {
	dsn := buildDSN()

	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Retry connection up to 10 times (the managed DB may take a moment)
	for i := 0; i < 10; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("❌ Failed to connect to database after retries: %v", err)
	}

	migrate()
	log.Println("✅ Database connected and migrated")
}

func buildDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	// Individual vars for local dev
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "wayplan")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslmode)
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id          TEXT PRIMARY KEY,
			destination TEXT NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			travelers   INTEGER DEFAULT 1,
			budget      NUMERIC(12,2) NOT NULL,
			currency    TEXT NOT NULL,
			report_json TEXT NOT NULL,
			pdf_data    BYTEA,
			created_at  TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_plans_created_at
			ON plans(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			log.Fatalf("❌ Migration failed: %v\nSQL: %s", err, m)
		}
	}
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func SavePlan(p *Plan) error {
	_, err := DB.Exec(`
		INSERT INTO plans (id, destination, start_date, end_date, travelers, budget, currency, report_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Destination, p.StartDate, p.EndDate, p.Travelers, p.Budget, p.Currency, p.ReportJSON)
	return err
}

func GetPlan(id string) (*Plan, error) {
	p := &Plan{}
	err := DB.QueryRow(`
		SELECT id, destination, start_date, end_date, travelers, budget, currency, report_json, pdf_data, created_at
		FROM plans WHERE id = $1`, id).
		Scan(&p.ID, &p.Destination, &p.StartDate, &p.EndDate, &p.Travelers,
			&p.Budget, &p.Currency, &p.ReportJSON, &p.PDFData, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func UpdatePlanPDF(id string, pdfData []byte) error {
	_, err := DB.Exec(`UPDATE plans SET pdf_data = $1 WHERE id = $2`, pdfData, id)
	return err
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
