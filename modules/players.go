package modules

import (
	"context"
	"database/sql"
	"errors"

	"github.com/patrickmn/go-cache"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"detector-go/database/schemas"
)

// PlayerDirectory owns the canonical-name to player-id mapping. Ids are
// immutable once assigned so they are safe to cache; ban flags are not,
// since the moderation pipeline mutates them out of band.
type PlayerDirectory struct {
	db    bun.IDB
	cache *cache.Cache
}

func NewPlayerDirectory(db bun.IDB, c *cache.Cache) *PlayerDirectory {
	return &PlayerDirectory{db: db, cache: c}
}

// WithDB returns a directory bound to another session, typically a
// transaction. The id cache is dropped: a rolled-back transaction must not
// leave ids of never-committed players behind.
func (d *PlayerDirectory) WithDB(db bun.IDB) *PlayerDirectory {
	return &PlayerDirectory{db: db}
}

// Lookup returns the id for a canonical name, or false when no such player
// exists. Read-only.
func (d *PlayerDirectory) Lookup(ctx context.Context, name string) (int64, bool, error) {
	if d.cache != nil {
		if id, found := d.cache.Get(name); found {
			return id.(int64), true, nil
		}
	}

	var id int64
	err := d.db.NewSelect().
		Model((*schemas.Player)(nil)).
		Column("id").
		Where("name = ?", name).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	if d.cache != nil {
		d.cache.Set(name, id, cache.DefaultExpiration)
	}
	return id, true, nil
}

// ResolveOrCreate returns the id for a canonical name, creating the player on
// first sight. The unique constraint on players.name plus the insert with
// ON CONFLICT DO NOTHING and re-select keeps concurrent calls for the same
// new name from creating two rows.
func (d *PlayerDirectory) ResolveOrCreate(ctx context.Context, name string) (int64, error) {
	if id, found, err := d.Lookup(ctx, name); err != nil {
		return 0, err
	} else if found {
		return id, nil
	}
	return d.create(ctx, name)
}

// create inserts the player row, falling back to a re-select when a
// concurrent insert won the unique-constraint race.
func (d *PlayerDirectory) create(ctx context.Context, name string) (int64, error) {
	player := &schemas.Player{Name: name}
	_, err := d.db.NewInsert().
		Model(player).
		On("CONFLICT (name) DO NOTHING").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	// DO NOTHING returns no row on conflict, so a zero id means we lost
	if player.ID != 0 {
		zap.S().Infow("created player", "name", name, "id", player.ID)
		if d.cache != nil {
			d.cache.Set(name, player.ID, cache.DefaultExpiration)
		}
		return player.ID, nil
	}

	// the winner's row is there now
	id, found, err := d.Lookup(ctx, name)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, sql.ErrNoRows
	}
	return id, nil
}

// Exists reports whether a player row with the given id is present.
func (d *PlayerDirectory) Exists(ctx context.Context, id int64) (bool, error) {
	return d.db.NewSelect().
		Model((*schemas.Player)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}
