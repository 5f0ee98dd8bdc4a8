// internal/pkg/idgen/idgen.go
package idgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator produces the opaque unique identifiers the order and invoice
// records carry. The domain services treat these as pre-assigned strings and
// never parse them.
type Generator struct{}

// New creates a new identifier generator
func New() *Generator {
	return &Generator{}
}

// OrderNumber returns a unique order number, e.g. ORD-20250114-1A2B3C4D
func (g *Generator) OrderNumber() string {
	return g.numbered("ORD")
}

// InvoiceNumber returns a unique invoice number, e.g. INV-20250114-1A2B3C4D
func (g *Generator) InvoiceNumber() string {
	return g.numbered("INV")
}

func (g *Generator) numbered(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), suffix)
}
