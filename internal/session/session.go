// Package session holds the log currently open in the viewer.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/dashdaq"
	"github.com/OpenTraceLab/OpenTraceDAQ/pkg/plotplan"
)

// ErrNoData is returned by Plot before any log has been opened.
var ErrNoData = errors.New("session: no log loaded")

// Session owns the loaded table and catalog. A successful Open replaces
// both at once; a failed Open or Plot leaves the session as it was.
//
// Session is not safe for concurrent use; the viewer drives it from its
// event loop only.
type Session struct {
	name    string
	catalog *dashdaq.Catalog
	table   *dashdaq.Table
	plan    *plotplan.Plan
}

// New returns an empty session.
func New() *Session { return &Session{} }

// Open loads the log read from r. name is used for display only.
func (s *Session) Open(name string, r io.Reader) error {
	catalog, table, err := dashdaq.Load(r)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	s.name, s.catalog, s.table, s.plan = name, catalog, table, nil
	return nil
}

// OpenFile loads the log at path.
func (s *Session) OpenFile(path string) error {
	catalog, table, err := dashdaq.LoadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	s.name, s.catalog, s.table, s.plan = path, catalog, table, nil
	return nil
}

// Loaded reports whether a log is open.
func (s *Session) Loaded() bool { return s.table != nil }

// Name returns the display name of the open log.
func (s *Session) Name() string { return s.name }

// Catalog returns the signals of the open log, or nil.
func (s *Session) Catalog() *dashdaq.Catalog { return s.catalog }

// Table returns the open log's table, or nil.
func (s *Session) Table() *dashdaq.Table { return s.table }

// FullWindow returns the complete time span of the open log.
func (s *Session) FullWindow() plotplan.Window {
	if s.table == nil {
		return plotplan.Window{}
	}
	return plotplan.FullWindow(s.table)
}

// Plot resolves a plot request against the open log and remembers the
// result as the current plan.
func (s *Session) Plot(names []string, window plotplan.Window, mode plotplan.Mode) (*plotplan.Plan, error) {
	if s.table == nil {
		return nil, ErrNoData
	}
	plan, err := plotplan.Resolve(s.table, s.catalog, names, window, mode)
	if err != nil {
		return nil, err
	}
	s.plan = plan
	return plan, nil
}

// Plan returns the last successful plan, or nil.
func (s *Session) Plan() *plotplan.Plan { return s.plan }

// ClearPlot forgets the current plan; the log stays open.
func (s *Session) ClearPlot() { s.plan = nil }
