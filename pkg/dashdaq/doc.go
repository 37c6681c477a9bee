// Package dashdaq loads DashDAQ-style CSV log exports into a column-oriented
// table of numeric signals.
//
// # File layout
//
// A DashDAQ export starts with free-form metadata lines ("DashDAQ Log File",
// "Format", vehicle information and so on), followed by a header row whose
// first cell is "Time", a units row, and the data rows:
//
//	"DashDAQ Log File"
//	"Format","2.0"
//	"Time","Speed","RPM","ECT",
//	"ms","kph","RPM","°C",
//	0,0,900,81,
//	100,1,950,81,
//
// # Normalization
//
// Load locates the header row, aligns the units row to it by position,
// drops unnamed trailing columns and coerces every remaining cell to a
// float64. Cells that do not parse become a missing Value rather than zero,
// so scales computed downstream are not distorted. The time column is
// rewritten as elapsed seconds from the first sample.
//
// Only two conditions are fatal, both reported as *MalformedLogError: no
// header row, and a time column without a single numeric value. Everything
// else degrades: missing units default to "", bad cells become missing and
// rows without a usable timestamp are dropped.
//
// # Usage
//
//	catalog, table, err := dashdaq.LoadFile("Pajero_Run1.csv")
//	if err != nil {
//		return err
//	}
//	for _, sig := range catalog.Signals() {
//		series, _ := table.Series(sig.Name)
//		fmt.Println(sig.Name, sig.Unit, len(series))
//	}
package dashdaq
