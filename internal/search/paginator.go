package search

import "fmt"

// Query pairs SQL text with its positional arguments.
type Query struct {
	SQL  string
	Args []any
}

// Queries holds the two statements a paged search executes: a count over
// the full predicate and a bounded, ordered page. Both share the identical
// WHERE clause and parameter list. They run as separate round trips, so the
// total may drift slightly under concurrent writes; search results are not
// used for billing or allocation, and the drift is accepted.
type Queries struct {
	Page  Query
	Count Query
}

// Paginate combines a compiled predicate with ordering and bounds.
// selectList and table are fixed strings supplied by the repository, never
// user input. Limit and offset ride as bound parameters after the predicate
// args.
func Paginate(selectList, table string, pred *Predicate, orderBy string, limit, offset int) Queries {
	where := pred.Where()
	baseArgs := pred.Args()

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)

	pageArgs := make([]any, 0, len(baseArgs)+2)
	pageArgs = append(pageArgs, baseArgs...)
	pageArgs = append(pageArgs, limit, offset)
	pageSQL := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		selectList, table, where, orderBy, len(baseArgs)+1, len(baseArgs)+2)

	return Queries{
		Page:  Query{SQL: pageSQL, Args: pageArgs},
		Count: Query{SQL: countSQL, Args: baseArgs},
	}
}

// PageMeta reports pagination state alongside a result page.
type PageMeta struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// NewPageMeta computes has_more purely from the already-known total; it
// never re-queries.
func NewPageMeta(total int64, limit, offset int) PageMeta {
	return PageMeta{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}
}
