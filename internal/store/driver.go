package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/argand-io/argand/internal/cplx"
)

// DriverName is the database/sql driver that carries the complex-type
// extension: the COMPLEX_MAG collation plus the SQL functions below.
const DriverName = "sqlite3_complex"

var registerDriver sync.Once

// ensureDriver registers the extended driver exactly once per process.
// database/sql panics on duplicate registration, hence the Once.
func ensureDriver() {
	registerDriver.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if err := conn.RegisterCollation("COMPLEX_MAG", collateMagnitude); err != nil {
					return fmt.Errorf("register collation: %w", err)
				}
				// The final true marks each function pure, the engine-side
				// spelling of the catalog's IMMUTABLE flag.
				if err := conn.RegisterFunc("complex_add", sqlAdd, true); err != nil {
					return fmt.Errorf("register complex_add: %w", err)
				}
				if err := conn.RegisterFunc("complex_abs", sqlAbs, true); err != nil {
					return fmt.Errorf("register complex_abs: %w", err)
				}
				if err := conn.RegisterFunc("complex_cmp", sqlCmp, true); err != nil {
					return fmt.Errorf("register complex_cmp: %w", err)
				}
				return nil
			},
		})
	})
}

// collateMagnitude orders canonical text forms by the type's comparator.
// SQLite collations cannot report errors; text that does not parse sorts
// after every valid value, ties broken bytewise, so the order stays total
// even over corrupt rows.
func collateMagnitude(a, b string) int {
	va, errA := cplx.Parse(a)
	vb, errB := cplx.Parse(b)
	switch {
	case errA == nil && errB == nil:
		return cplx.Compare(va, vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// sqlAdd exposes the arithmetic operator over text forms:
// complex_add('(1,2)','(3,4)') = '(4,6)'.
func sqlAdd(a, b string) (string, error) {
	va, err := cplx.Parse(a)
	if err != nil {
		return "", err
	}
	vb, err := cplx.Parse(b)
	if err != nil {
		return "", err
	}
	return cplx.Format(cplx.Add(va, vb)), nil
}

// sqlAbs exposes the magnitude: complex_abs('(3,4)') = 5.
func sqlAbs(s string) (float64, error) {
	v, err := cplx.Parse(s)
	if err != nil {
		return 0, err
	}
	return cplx.Mag(v), nil
}

// sqlCmp exposes the three-way comparator for diagnostics.
func sqlCmp(a, b string) (int64, error) {
	va, err := cplx.Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := cplx.Parse(b)
	if err != nil {
		return 0, err
	}
	return int64(cplx.Compare(va, vb)), nil
}
