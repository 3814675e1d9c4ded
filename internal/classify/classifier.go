package classify

import (
	"path/filepath"
	"strings"
)

// Classifier routes file names to categories using a fixed Table.
type Classifier struct {
	table *Table
}

// New returns a Classifier over table. A nil table uses DefaultTable.
func New(table *Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return &Classifier{table: table}
}

// Table returns the classifier's table.
func (c *Classifier) Table() *Table {
	return c.table
}

// Classify returns the category for fileName, or false when the file is
// uncategorized.
func (c *Classifier) Classify(fileName string) (string, bool) {
	return c.table.Lookup(Extension(fileName))
}

// Extension returns the lowercase extension of name including the dot. Names
// without a dot, ending in a dot, or whose only dot is the leading one (as in
// ".bashrc") have no extension.
func Extension(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i:])
}
