package main

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/vfg2006/ads-manager-api/internal/config"
)

type statement struct {
	Description string
	SQL         string
}

var schema = []statement{
	{
		Description: "tabela ad_entities",
		SQL: `CREATE TABLE IF NOT EXISTS ad_entities (
			id VARCHAR(16) PRIMARY KEY,
			tier VARCHAR(16) NOT NULL,
			external_id VARCHAR(64) NOT NULL,
			account_id VARCHAR(64) NOT NULL,
			campaign_id VARCHAR(64),
			adset_id VARCHAR(64),
			name TEXT NOT NULL,
			status VARCHAR(16) NOT NULL,
			daily_budget NUMERIC(14, 2),
			lifetime_budget NUMERIC(14, 2),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		Description: "constraint UNIQUE (tier, external_id)",
		SQL: `DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE table_name = 'ad_entities'
				AND constraint_name = 'ad_entities_tier_external_id_unique'
			) THEN
				ALTER TABLE ad_entities ADD CONSTRAINT ad_entities_tier_external_id_unique UNIQUE (tier, external_id);
			END IF;
		END $$`,
	},
	{
		Description: "índice de listagem por conta",
		SQL:         `CREATE INDEX IF NOT EXISTS ad_entities_tier_account_idx ON ad_entities (tier, account_id)`,
	},
	{
		Description: "índice de drill-down por campanha",
		SQL:         `CREATE INDEX IF NOT EXISTS ad_entities_campaign_idx ON ad_entities (campaign_id) WHERE campaign_id IS NOT NULL`,
	},
	{
		Description: "índice de drill-down por conjunto",
		SQL:         `CREATE INDEX IF NOT EXISTS ad_entities_adset_idx ON ad_entities (adset_id) WHERE adset_id IS NOT NULL`,
	},
}

func setupLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func apply(tx *sql.Tx, statements []statement) {
	for i, s := range statements {
		startTime := time.Now()
		if _, err := tx.Exec(s.SQL); err != nil {
			log.Fatalf("ERRO ao aplicar [%d/%d] %s: %v", i+1, len(statements), s.Description, err)
		}
		log.Printf("Aplicado [%d/%d] %s em %v", i+1, len(statements), s.Description, time.Since(startTime))
	}
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	log.Println("Conectando ao banco de dados...")

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ERRO ao verificar conexão com o banco: %v", err)
	}
	log.Println("Conexão com o banco de dados estabelecida com sucesso")

	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("ERRO ao iniciar transação: %v", err)
	}

	apply(tx, schema)

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		log.Fatalf("ERRO ao confirmar transação: %v", err)
	}

	log.Printf("Migração concluída em %v!", time.Since(startTime))
}
