package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	_ "modernc.org/sqlite"
)

// SnapshotStore persists the cart to a local sqlite file, the desktop
// equivalent of the browser-local storage the cart survives reloads in.
// A single row holds the latest snapshot.
type SnapshotStore struct {
	db *sql.DB
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS cart_snapshot (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    mode TEXT NOT NULL,
    remote_cart_id TEXT NOT NULL DEFAULT '',
    owner_id TEXT NOT NULL DEFAULT '',
    items TEXT NOT NULL DEFAULT '[]'
);
`

// OpenSnapshotStore opens (creating if needed) the snapshot file at path.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	if _, err := db.Exec(snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure snapshot table: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

func (s *SnapshotStore) Save(cart domain.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	_, err = s.db.Exec(`
INSERT INTO cart_snapshot (id, mode, remote_cart_id, owner_id, items)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    mode = excluded.mode,
    remote_cart_id = excluded.remote_cart_id,
    owner_id = excluded.owner_id,
    items = excluded.items`,
		string(cart.Mode), cart.RemoteCartID, cart.OwnerID, string(items))
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

// Load returns the persisted cart, reporting false when no snapshot exists.
func (s *SnapshotStore) Load() (domain.Cart, bool, error) {
	var (
		mode, remoteCartID, ownerID, itemsJSON string
	)

	row := s.db.QueryRow(`SELECT mode, remote_cart_id, owner_id, items FROM cart_snapshot WHERE id = 1`)
	if err := row.Scan(&mode, &remoteCartID, &ownerID, &itemsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, false, nil
		}
		return domain.Cart{}, false, fmt.Errorf("row.Scan: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return domain.Cart{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return domain.Cart{
		Mode:         domain.Mode(mode),
		RemoteCartID: remoteCartID,
		OwnerID:      ownerID,
		Items:        items,
	}, true, nil
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
