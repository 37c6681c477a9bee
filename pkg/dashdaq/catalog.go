package dashdaq

// Signal names one catalogued column and its unit of measure. Unit is ""
// when the log does not say.
type Signal struct {
	Name string
	Unit string
}

// Catalog is the ordered set of signals found in a log, in source column
// order with the time column excluded. It is not modified after Load.
type Catalog struct {
	signals []Signal
	index   map[string]int
}

func newCatalog(signals []Signal) *Catalog {
	c := &Catalog{
		signals: signals,
		index:   make(map[string]int, len(signals)),
	}
	for i, s := range signals {
		c.index[s.Name] = i
	}
	return c
}

// Len returns the number of signals.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.signals)
}

// Signals returns a copy of the catalog entries in column order.
func (c *Catalog) Signals() []Signal {
	if c == nil {
		return nil
	}
	return append([]Signal(nil), c.signals...)
}

// Names returns the signal names in column order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.signals))
	for i, s := range c.signals {
		names[i] = s.Name
	}
	return names
}

// Has reports whether name is a catalogued signal.
func (c *Catalog) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[name]
	return ok
}

// Unit returns the unit of the named signal.
func (c *Catalog) Unit(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	i, ok := c.index[name]
	if !ok {
		return "", false
	}
	return c.signals[i].Unit, true
}
