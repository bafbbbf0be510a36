package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

//go:embed site_config_snapshot.json
var snapshotBytes []byte

// ConfigRepository manages the single shared site-config document. The
// document lives in one JSONB row; the bundled snapshot is both the
// fallback when the store is unreachable and the lazy seed for an empty
// store.
type ConfigRepository struct {
	db *sql.DB

	// SnapshotPath optionally points at an on-disk snapshot that
	// overrides the embedded one.
	SnapshotPath string
}

func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Snapshot decodes the bundled configuration snapshot. The embedded copy
// is used unless SnapshotPath is set and readable.
func (r *ConfigRepository) Snapshot() *model.SiteConfig {
	raw := snapshotBytes
	if r.SnapshotPath != "" {
		if data, err := os.ReadFile(r.SnapshotPath); err == nil {
			raw = data
		} else {
			log.Warn().Err(err).Str("path", r.SnapshotPath).Msg("snapshot file unreadable, using embedded copy")
		}
	}
	cfg := &model.SiteConfig{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		// The embedded snapshot is validated by tests; an unparseable
		// override falls back to the embedded bytes.
		log.Error().Err(err).Msg("snapshot decode failed, using embedded copy")
		cfg = &model.SiteConfig{}
		_ = json.Unmarshal(snapshotBytes, cfg)
	}
	return cfg
}

// Read returns the current configuration and never fails: a missing row
// is seeded from the snapshot, and a transport failure degrades to the
// snapshot for that call.
func (r *ConfigRepository) Read(ctx context.Context) *model.SiteConfig {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM site_config WHERE id = true`).Scan(&data)
	if err == sql.ErrNoRows {
		snap := r.Snapshot()
		if seedErr := r.Seed(ctx, snap); seedErr != nil {
			log.Warn().Err(seedErr).Msg("config seed failed")
		}
		return snap
	}
	if err != nil {
		log.Warn().Err(err).Msg("config fetch failed, serving snapshot")
		return r.Snapshot()
	}

	cfg := &model.SiteConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Warn().Err(err).Msg("stored config undecodable, serving snapshot")
		return r.Snapshot()
	}
	return cfg
}

// Seed writes the given configuration wholesale, replacing whatever the
// row held. Used for lazy initialization and by the provisioning command.
func (r *ConfigRepository) Seed(ctx context.Context, cfg *model.SiteConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	query := `INSERT INTO site_config (id, data, updated_at) VALUES (true, $1, $2)
              ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	_, err = r.db.ExecContext(ctx, query, data, time.Now())
	return err
}

// Update merge-writes the given top-level fields into the document.
// Fields absent from partial keep their stored values.
func (r *ConfigRepository) Update(ctx context.Context, partial map[string]interface{}) error {
	data, err := json.Marshal(partial)
	if err != nil {
		return err
	}
	query := `INSERT INTO site_config (id, data, updated_at) VALUES (true, $1, $2)
              ON CONFLICT (id) DO UPDATE SET data = site_config.data || EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	_, err = r.db.ExecContext(ctx, query, data, time.Now())
	return err
}
