package queryfeatures

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// control keys are never treated as filters.
var controlKeys = map[string]bool{
	"page":    true,
	"limit":   true,
	"sort":    true,
	"fields":  true,
	"keyword": true,
}

// filterableFields whitelists filter params and maps them to columns.
// Numeric fields get their values parsed so the driver compares numbers,
// not text.
var filterableFields = map[string]struct {
	column  string
	numeric bool
}{
	"price":    {"price", true},
	"area":     {"area", true},
	"bedrooms": {"bedrooms", true},
	"city":     {"city", false},
	"type":     {"type", false},
	"category": {"category", false},
	"status":   {"status", false},
}

// searchFields are matched case-insensitively by the keyword stage.
var searchFields = []string{"title", "description", "city", "address"}

var sortableFields = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
	"views":     "views",
	"area":      "area",
	"bedrooms":  "bedrooms",
	"title":     "title",
}

var projectableFields = map[string]string{
	"title":       "title",
	"description": "description",
	"price":       "price",
	"city":        "city",
	"address":     "address",
	"type":        "type",
	"category":    "category",
	"area":        "area",
	"bedrooms":    "bedrooms",
	"status":      "status",
	"views":       "views",
}

var rangeOps = map[string]string{
	"gte": ">=",
	"lte": "<=",
	"gt":  ">",
	"lt":  "<",
}

type condition struct {
	query string
	args  []interface{}
}

// Features translates request parameters into a composed GORM query.
// Each stage records itself in the applied set, so re-invoking a stage is a
// no-op: the pipeline is idempotent per stage by construction.
type Features struct {
	db      *gorm.DB
	params  url.Values
	applied map[string]bool

	// filter+search predicates, shared between the data and count queries
	conds []condition

	sortExpr   string
	selectCols []string
	page       int
	limit      int
	paginated  bool
}

func New(db *gorm.DB, params url.Values) *Features {
	return &Features{
		db:      db,
		params:  params,
		applied: make(map[string]bool),
		page:    DefaultPage,
		limit:   DefaultLimit,
	}
}

// Filter applies equality and range constraints on whitelisted fields.
// Range operators use the bracket syntax: price[gte]=1000.
func (f *Features) Filter() *Features {
	if f.applied["filter"] {
		return f
	}
	f.applied["filter"] = true

	for key, values := range f.params {
		if controlKeys[key] || len(values) == 0 {
			continue
		}

		name, op := splitBracketKey(key)
		field, ok := filterableFields[name]
		if !ok {
			continue
		}

		value := values[0]
		var arg interface{} = value
		if field.numeric {
			num, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			arg = num
		}

		if op == "" {
			f.conds = append(f.conds, condition{fmt.Sprintf("%s = ?", field.column), []interface{}{arg}})
			continue
		}
		if sqlOp, ok := rangeOps[op]; ok {
			f.conds = append(f.conds, condition{fmt.Sprintf("%s %s ?", field.column, sqlOp), []interface{}{arg}})
		}
	}
	return f
}

// Search applies a case-insensitive substring match over the textual fields
// when the keyword parameter is present.
func (f *Features) Search() *Features {
	if f.applied["search"] {
		return f
	}
	f.applied["search"] = true

	keyword := strings.TrimSpace(f.params.Get("keyword"))
	if keyword == "" {
		return f
	}

	pattern := "%" + keyword + "%"
	clauses := make([]string, 0, len(searchFields))
	args := make([]interface{}, 0, len(searchFields))
	for _, field := range searchFields {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", field))
		args = append(args, pattern)
	}
	f.conds = append(f.conds, condition{"(" + strings.Join(clauses, " OR ") + ")", args})
	return f
}

// Sort orders by the requested fields (-price,createdAt syntax), defaulting
// to newest first.
func (f *Features) Sort() *Features {
	if f.applied["sort"] {
		return f
	}
	f.applied["sort"] = true

	sortParam := f.params.Get("sort")
	if sortParam == "" {
		f.sortExpr = "created_at DESC"
		return f
	}

	var parts []string
	for _, field := range strings.Split(sortParam, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		}
		column, ok := sortableFields[field]
		if !ok {
			continue
		}
		parts = append(parts, column+" "+direction)
	}

	if len(parts) == 0 {
		f.sortExpr = "created_at DESC"
	} else {
		f.sortExpr = strings.Join(parts, ", ")
	}
	return f
}

// LimitFields projects to a whitelisted field subset when requested.
func (f *Features) LimitFields() *Features {
	if f.applied["fields"] {
		return f
	}
	f.applied["fields"] = true

	fieldsParam := f.params.Get("fields")
	if fieldsParam == "" {
		return f
	}

	var cols []string
	for _, field := range strings.Split(fieldsParam, ",") {
		if column, ok := projectableFields[strings.TrimSpace(field)]; ok {
			cols = append(cols, column)
		}
	}
	if len(cols) > 0 {
		// id is always needed for relations and links
		f.selectCols = append([]string{"id"}, cols...)
	}
	return f
}

// Paginate computes page/limit with defaults and bounds.
func (f *Features) Paginate() *Features {
	if f.applied["paginate"] {
		return f
	}
	f.applied["paginate"] = true
	f.paginated = true

	if pageParam := f.params.Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil && page >= 1 {
			f.page = page
		}
	}
	if limitParam := f.params.Get("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil && limit >= 1 {
			f.limit = limit
		}
	}
	if f.limit > MaxLimit {
		f.limit = MaxLimit
	}
	return f
}

// Query assembles the data query with all applied stages.
func (f *Features) Query() *gorm.DB {
	q := f.db
	for _, cond := range f.conds {
		q = q.Where(cond.query, cond.args...)
	}
	if len(f.selectCols) > 0 {
		q = q.Select(f.selectCols)
	}
	if f.sortExpr != "" {
		q = q.Order(f.sortExpr)
	}
	if f.paginated {
		q = q.Offset((f.page - 1) * f.limit).Limit(f.limit)
	}
	return q
}

// CountQuery carries exactly the filter+search predicates of the data query,
// without sort, projection or pagination, so totals stay consistent with the
// returned pages.
func (f *Features) CountQuery() *gorm.DB {
	q := f.db
	for _, cond := range f.conds {
		q = q.Where(cond.query, cond.args...)
	}
	return q
}

func (f *Features) Page() int  { return f.page }
func (f *Features) Limit() int { return f.limit }

// splitBracketKey turns "price[gte]" into ("price", "gte"). A key without
// brackets yields an empty operator.
func splitBracketKey(key string) (name, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}
