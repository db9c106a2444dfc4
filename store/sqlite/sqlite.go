/*
Package sqlite provides a SQLite-backed implementation of the storage interface.

PURPOSE:
  Implements planner.CatalogStore using SQLite: the three master catalogs
  (venues, staff, inventory), their occupancy records, and the quote
  history. In production the same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

KEY TABLES:
  venues:     Catalog of event spaces (price stored as TEXT decimal)
  staff:      Catalog of hireable workers
  inventory:  Stocked items with current stock level
  occupancy:  Committed bookings, keyed by owner kind + id
  quotes:     Finalized quote history (bundle detail as JSON)

WRITE MODEL:
  SaveCatalog replaces the catalog tables wholesale inside one database
  transaction. The engine runs one allocation session at a time, so the
  store needs durability, not fine-grained concurrency control; a process
  extending this to concurrent sessions must move the §commit mutations
  into per-entity optimistic transactions instead.

DECIMALS:
  Money is stored as TEXT and parsed with decimal.NewFromString. REAL
  columns would reintroduce the binary-float drift the engine avoids.

WAL MODE:
  The database is opened with WAL journaling for better read concurrency
  and crash recovery.

USAGE:
  st, err := sqlite.New("./data/planner.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()
  catalog, err := st.LoadCatalog(ctx)

SEE ALSO:
  - planner/store.go: Interface definition
  - planner/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/nathfher/planificador-evento/planner"
)

// Store implements planner.CatalogStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS venues (
		id        TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		capacity  INTEGER NOT NULL,
		price     TEXT NOT NULL,
		services  TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS staff (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		trade TEXT NOT NULL,
		wage  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS inventory (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		stock      INTEGER NOT NULL,
		category   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS occupancy (
		owner_kind TEXT NOT NULL,
		owner_id   TEXT NOT NULL,
		date       TEXT NOT NULL,
		start_min  INTEGER NOT NULL,
		end_min    INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_occupancy_owner ON occupancy(owner_kind, owner_id);

	CREATE TABLE IF NOT EXISTS quotes (
		id         TEXT PRIMARY KEY,
		seq        INTEGER,
		venue_id   TEXT NOT NULL,
		date       TEXT NOT NULL,
		subtotal   TEXT NOT NULL,
		commission TEXT NOT NULL,
		total      TEXT NOT NULL,
		status     TEXT NOT NULL,
		detail     TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	// Older databases predate the seq column.
	_, _ = s.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_quotes_seq ON quotes(seq)`)
	return nil
}

// =============================================================================
// CATALOG LOAD
// =============================================================================

func (s *Store) LoadCatalog(ctx context.Context) (*planner.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := &planner.Catalog{}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, capacity, price, services FROM venues ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			v        planner.Venue
			price    string
			services string
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.Capacity, &price, &services); err != nil {
			return nil, err
		}
		if v.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("venue %s: bad price %q: %w", v.ID, price, err)
		}
		if err := json.Unmarshal([]byte(services), &v.IncludedServices); err != nil {
			return nil, fmt.Errorf("venue %s: bad services: %w", v.ID, err)
		}
		catalog.Venues = append(catalog.Venues, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	staffRows, err := s.db.QueryContext(ctx, `SELECT id, name, trade, wage FROM staff ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer staffRows.Close()
	for staffRows.Next() {
		var (
			m    planner.StaffMember
			wage string
		)
		if err := staffRows.Scan(&m.ID, &m.Name, &m.Trade, &wage); err != nil {
			return nil, err
		}
		if m.Wage, err = decimal.NewFromString(wage); err != nil {
			return nil, fmt.Errorf("staff %s: bad wage %q: %w", m.ID, wage, err)
		}
		catalog.Staff = append(catalog.Staff, &m)
	}
	if err := staffRows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := s.db.QueryContext(ctx, `SELECT id, name, unit_price, stock, category FROM inventory ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var (
			i     planner.InventoryItem
			price string
		)
		if err := itemRows.Scan(&i.ID, &i.Name, &price, &i.Stock, &i.Category); err != nil {
			return nil, err
		}
		if i.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("item %s: bad unit price %q: %w", i.ID, price, err)
		}
		catalog.Inventory = append(catalog.Inventory, &i)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadOccupancy(ctx, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *Store) loadOccupancy(ctx context.Context, catalog *planner.Catalog) error {
	rows, err := s.db.QueryContext(ctx, `SELECT owner_kind, owner_id, date, start_min, end_min FROM occupancy ORDER BY rowid`)
	if err != nil {
		return err
	}
	defer rows.Close()

	venues := map[planner.VenueID]*planner.Venue{}
	for _, v := range catalog.Venues {
		venues[v.ID] = v
	}
	staff := map[planner.StaffID]*planner.StaffMember{}
	for _, m := range catalog.Staff {
		staff[m.ID] = m
	}

	for rows.Next() {
		var (
			kind, owner, date string
			start, end        int
		)
		if err := rows.Scan(&kind, &owner, &date, &start, &end); err != nil {
			return err
		}
		d, err := parseDate(date)
		if err != nil {
			return fmt.Errorf("occupancy for %s %s: %w", kind, owner, err)
		}
		record := planner.OccupancyRecord{Window: planner.TimeWindow{
			Date:  d,
			Start: planner.ClockTime(start),
			End:   planner.ClockTime(end),
		}}
		switch kind {
		case "venue":
			if v, ok := venues[planner.VenueID(owner)]; ok {
				v.Occupancy = append(v.Occupancy, record)
			}
		case "staff":
			if m, ok := staff[planner.StaffID(owner)]; ok {
				m.Occupancy = append(m.Occupancy, record)
			}
		}
	}
	return rows.Err()
}

// =============================================================================
// CATALOG SAVE - Wholesale replace inside one transaction
// =============================================================================

func (s *Store) SaveCatalog(ctx context.Context, c *planner.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"venues", "staff", "inventory", "occupancy"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, v := range c.Venues {
		services, err := json.Marshal(v.IncludedServices)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO venues (id, name, capacity, price, services) VALUES (?, ?, ?, ?, ?)`,
			v.ID, v.Name, v.Capacity, v.Price.String(), string(services)); err != nil {
			return err
		}
		if err := insertOccupancy(ctx, tx, "venue", string(v.ID), v.Occupancy); err != nil {
			return err
		}
	}

	for _, m := range c.Staff {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO staff (id, name, trade, wage) VALUES (?, ?, ?, ?)`,
			m.ID, m.Name, m.Trade, m.Wage.String()); err != nil {
			return err
		}
		if err := insertOccupancy(ctx, tx, "staff", string(m.ID), m.Occupancy); err != nil {
			return err
		}
	}

	for _, i := range c.Inventory {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (id, name, unit_price, stock, category) VALUES (?, ?, ?, ?, ?)`,
			i.ID, i.Name, i.UnitPrice.String(), i.Stock, i.Category); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertOccupancy(ctx context.Context, tx *sql.Tx, kind, owner string, records []planner.OccupancyRecord) error {
	for _, r := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO occupancy (owner_kind, owner_id, date, start_min, end_min) VALUES (?, ?, ?, ?, ?)`,
			kind, owner, r.Window.Date.String(), int(r.Window.Start), int(r.Window.End)); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// QUOTE HISTORY
// =============================================================================

// quoteDetail is the JSON shape of the bundle detail stored per quote.
type quoteDetail struct {
	VenueName  string           `json:"venue_name"`
	GuestCount int              `json:"guest_count"`
	StartMin   int              `json:"start_min"`
	EndMin     int              `json:"end_min"`
	Staff      []detailStaff    `json:"staff"`
	LineItems  []detailLineItem `json:"line_items"`
}

type detailStaff struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Trade string `json:"trade"`
	Wage  string `json:"wage"`
}

type detailLineItem struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (s *Store) AppendQuote(ctx context.Context, q *planner.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail := quoteDetail{
		VenueName:  q.Venue.Name,
		GuestCount: q.GuestCount,
		StartMin:   int(q.Window.Start),
		EndMin:     int(q.Window.End),
	}
	for _, m := range q.Staff {
		detail.Staff = append(detail.Staff, detailStaff{
			ID: string(m.ID), Name: m.Name, Trade: m.Trade, Wage: m.Wage.String(),
		})
	}
	for _, li := range q.LineItems {
		detail.LineItems = append(detail.LineItems, detailLineItem{
			ItemID: string(li.ItemID), Name: li.Name, UnitPrice: li.UnitPrice.String(), Quantity: li.Quantity,
		})
	}
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quotes (id, seq, venue_id, date, subtotal, commission, total, status, detail)
		 VALUES (?, (SELECT IFNULL(MAX(seq), 0) + 1 FROM quotes), ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Venue.ID, q.Window.Date.String(),
		q.Subtotal.String(), q.Commission.String(), q.Total.String(), string(q.Status), string(payload))
	return err
}

func (s *Store) Quotes(ctx context.Context) ([]*planner.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, venue_id, date, subtotal, commission, total, status, detail FROM quotes ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*planner.Quote
	for rows.Next() {
		var (
			q                           planner.Quote
			venueID, date               string
			subtotal, commission, total string
			status, detailJSON          string
		)
		if err := rows.Scan(&q.ID, &venueID, &date, &subtotal, &commission, &total, &status, &detailJSON); err != nil {
			return nil, err
		}

		var detail quoteDetail
		if err := json.Unmarshal([]byte(detailJSON), &detail); err != nil {
			return nil, fmt.Errorf("quote %s: bad detail: %w", q.ID, err)
		}
		d, err := parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("quote %s: %w", q.ID, err)
		}

		q.Window = planner.TimeWindow{
			Date:  d,
			Start: planner.ClockTime(detail.StartMin),
			End:   planner.ClockTime(detail.EndMin),
		}
		q.GuestCount = detail.GuestCount
		q.Status = planner.QuoteStatus(status)
		q.Venue = &planner.Venue{ID: planner.VenueID(venueID), Name: detail.VenueName}
		if q.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, err
		}
		if q.Commission, err = decimal.NewFromString(commission); err != nil {
			return nil, err
		}
		if q.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		for _, m := range detail.Staff {
			wage, err := decimal.NewFromString(m.Wage)
			if err != nil {
				return nil, err
			}
			q.Staff = append(q.Staff, &planner.StaffMember{
				ID: planner.StaffID(m.ID), Name: m.Name, Trade: m.Trade, Wage: wage,
			})
		}
		for _, li := range detail.LineItems {
			price, err := decimal.NewFromString(li.UnitPrice)
			if err != nil {
				return nil, err
			}
			q.LineItems = append(q.LineItems, planner.LineItem{
				ItemID: planner.ItemID(li.ItemID), Name: li.Name, UnitPrice: price, Quantity: li.Quantity,
			})
		}
		quotes = append(quotes, &q)
	}
	return quotes, rows.Err()
}

// parseDate parses the DD/MM/YYYY form written by Date.String.
func parseDate(s string) (planner.Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return planner.Date{}, fmt.Errorf("bad date %q", s)
	}
	var day, month, year int
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &day, &month, &year); err != nil {
		return planner.Date{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return planner.NewDate(year, time.Month(month), day), nil
}
