package pkg

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// reservedParams lists query parameter names used for pagination/search, not for filtering.
var reservedParams = map[string]bool{
	"page":   true,
	"limit":  true,
	"search": true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageRequest extracts pagination, search, and filtering parameters from
// query params. The wire format is the one the table clients send:
// page (1-based), limit, search, plus discrete filter params such as isActive.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	search := strings.TrimSpace(c.Query("search"))

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" && values[0] != "null" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		Page:   page,
		Limit:  limit,
		Search: search,
		Filter: filter,
	}
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET based on the page request.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.Limit)
	}
}

// Search returns a GORM scope that applies a LIKE condition across the given
// columns. Column names are validated against a strict pattern; an empty
// search term leaves the query untouched.
func Search(req domain.PageRequest, columns []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if req.Search == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + req.Search + "%"

		var conds []string
		var args []any
		for _, col := range columns {
			if !validFieldName.MatchString(col) {
				continue
			}
			conds = append(conds, col+" LIKE ?")
			args = append(args, pattern)
		}
		if len(conds) == 0 {
			return db
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Filter returns a GORM scope that applies WHERE conditions based on the page
// request filters. Only filter keys present in the allowed list are applied;
// others are silently ignored. The wire keys are camelCase (isActive) and are
// mapped to snake_case columns; "true"/"false" values compare as booleans.
func Filter(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range req.Filter {
			if !isAllowed(key, allowed) {
				continue
			}
			col := toSnake(key)
			if !validFieldName.MatchString(col) {
				continue
			}

			switch value {
			case "true":
				db = db.Where(col+" = ?", true)
			case "false":
				db = db.Where(col+" = ?", false)
			default:
				db = db.Where(col+" = ?", value)
			}
		}
		return db
	}
}

// NewPageResult creates a PageResult with server-computed metadata. The meta
// block is what clients treat as the single source of truth for pagination.
func NewPageResult[T any](items []T, total int64, req domain.PageRequest) *domain.PageResult[T] {
	pageCount := 0
	if req.Limit > 0 {
		pageCount = int(math.Ceil(float64(total) / float64(req.Limit)))
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items: items,
		Meta: domain.PageMeta{
			Page:            req.Page,
			Limit:           req.Limit,
			Total:           total,
			PageCount:       pageCount,
			HasPreviousPage: req.Page > 1,
			HasNextPage:     req.Page < pageCount,
		},
	}
}

// isAllowed checks if a field name is in the allowed list.
func isAllowed(field string, allowed []string) bool {
	return slices.Contains(allowed, field)
}

// toSnake converts a camelCase wire key to its snake_case column name.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
