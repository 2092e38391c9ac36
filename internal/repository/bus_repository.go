package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rayhank/busflow/internal/model"
)

// BusRepo provides fleet persistence. Routes are stored as a JSON array of
// stop names so the ordered-subsequence trip check stays in Go.
type BusRepo struct{ DB *sql.DB }

func NewBusRepo(db *sql.DB) *BusRepo { return &BusRepo{DB: db} }

const busColumns = "id,name,route,driver_id,price,status,created_at,updated_at"

// Create inserts a bus and returns the stored record.
func (r *BusRepo) Create(ctx context.Context, b *model.Bus) (model.Bus, error) {
	routeJSON, err := json.Marshal(b.Route)
	if err != nil {
		return model.Bus{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO buses (name, route, driver_id, price, status) VALUES (?,?,?,?,?)",
		b.Name, routeJSON, b.DriverID, b.Price, b.Status)
	if err != nil {
		return model.Bus{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Bus{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces the mutable fields of a bus and returns the new record.
// ErrBusNotFound is returned when the id matches no row.
func (r *BusRepo) Update(ctx context.Context, b *model.Bus) (model.Bus, error) {
	routeJSON, err := json.Marshal(b.Route)
	if err != nil {
		return model.Bus{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE buses SET name=?, route=?, driver_id=?, price=?, status=? WHERE id=?",
		b.Name, routeJSON, b.DriverID, b.Price, b.Status, b.ID)
	if err != nil {
		return model.Bus{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero rows can also mean an identical update; confirm existence.
		if _, err := r.GetByID(ctx, b.ID); err != nil {
			return model.Bus{}, err
		}
	}
	return r.GetByID(ctx, b.ID)
}

// Delete removes a bus. ErrBusNotFound is returned when nothing was deleted.
func (r *BusRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM buses WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBusNotFound
	}
	return nil
}

// GetByID fetches one bus. ErrBusNotFound is returned when no row matches.
func (r *BusRepo) GetByID(ctx context.Context, id uint64) (model.Bus, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+busColumns+" FROM buses WHERE id=? LIMIT 1", id)
	b, err := scanBus(row.Scan)
	if err == sql.ErrNoRows {
		return model.Bus{}, ErrBusNotFound
	}
	return b, err
}

// ListAll returns the whole fleet ordered by name.
func (r *BusRepo) ListAll(ctx context.Context) ([]model.Bus, error) {
	return r.list(ctx, "SELECT "+busColumns+" FROM buses ORDER BY name")
}

// ListActive returns only buses passengers can book.
func (r *BusRepo) ListActive(ctx context.Context) ([]model.Bus, error) {
	return r.list(ctx,
		"SELECT "+busColumns+" FROM buses WHERE status=? ORDER BY name",
		model.BusStatusActive)
}

// ListByDriver returns the buses assigned to one driver.
func (r *BusRepo) ListByDriver(ctx context.Context, driverID uint64) ([]model.Bus, error) {
	return r.list(ctx,
		"SELECT "+busColumns+" FROM buses WHERE driver_id=? ORDER BY name",
		driverID)
}

// AssignDriver sets or clears (driverID == nil) the driver of a bus.
func (r *BusRepo) AssignDriver(ctx context.Context, busID uint64, driverID *uint64) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE buses SET driver_id=? WHERE id=?", driverID, busID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, busID); err != nil {
			return err
		}
	}
	return nil
}

func (r *BusRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Bus, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	buses := make([]model.Bus, 0)
	for rows.Next() {
		b, err := scanBus(rows.Scan)
		if err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}

// scanBus decodes one bus row, unpacking the JSON route column.
func scanBus(scan func(dest ...interface{}) error) (model.Bus, error) {
	var (
		b         model.Bus
		routeJSON []byte
		driverID  sql.NullInt64
	)
	if err := scan(&b.ID, &b.Name, &routeJSON, &driverID, &b.Price, &b.Status,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return model.Bus{}, err
	}
	if len(routeJSON) > 0 {
		if err := json.Unmarshal(routeJSON, &b.Route); err != nil {
			return model.Bus{}, err
		}
	}
	if driverID.Valid {
		id := uint64(driverID.Int64)
		b.DriverID = &id
	}
	return b, nil
}
