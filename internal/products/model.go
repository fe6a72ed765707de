package products

import (
	"strings"
	"time"
)

// Product is a master-data record carrying the manufacturing duration the
// planner derives mixer reservations from.
type Product struct {
	ID                       string
	Name                     string
	ArticleNumber            string
	ManufacturingDurationMin int
	CreatedAt                time.Time
}

// NormalizeArticleNumber canonicalizes an article number for uniqueness checks.
func NormalizeArticleNumber(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
