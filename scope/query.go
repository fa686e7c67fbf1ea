package scope

import (
	"net/url"

	"github.com/pellucid-io/scopes/filters"
)

// CannedQuery captures everything needed to re-run a search: the target
// scope, the query text, the active department and the filter state.
type CannedQuery struct {
	scopeID      string
	queryString  string
	departmentID string
	filterState  filters.State
}

// NewCannedQuery creates a canned query for the given scope.
func NewCannedQuery(scopeID, queryString, departmentID string) *CannedQuery {
	return &CannedQuery{
		scopeID:      scopeID,
		queryString:  queryString,
		departmentID: departmentID,
		filterState:  filters.NewState(),
	}
}

// ScopeID returns the target scope id.
func (q *CannedQuery) ScopeID() string { return q.scopeID }

// QueryString returns the query text.
func (q *CannedQuery) QueryString() string { return q.queryString }

// SetQueryString replaces the query text.
func (q *CannedQuery) SetQueryString(s string) { q.queryString = s }

// DepartmentID returns the active department id ("" for the root).
func (q *CannedQuery) DepartmentID() string { return q.departmentID }

// SetDepartmentID sets the active department id.
func (q *CannedQuery) SetDepartmentID(id string) { q.departmentID = id }

// FilterState returns the active filter state. The returned map is live;
// filters update it in place.
func (q *CannedQuery) FilterState() filters.State { return q.filterState }

// SetFilterState replaces the filter state.
func (q *CannedQuery) SetFilterState(state filters.State) {
	if state == nil {
		state = filters.NewState()
	}
	q.filterState = state
}

// ToURI renders the query as a scope:// URI.
func (q *CannedQuery) ToURI() string {
	v := url.Values{}
	if q.queryString != "" {
		v.Set("q", q.queryString)
	}
	if q.departmentID != "" {
		v.Set("dep", q.departmentID)
	}
	u := url.URL{
		Scheme:   "scope",
		Opaque:   "//" + url.PathEscape(q.scopeID),
		RawQuery: v.Encode(),
	}
	return u.String()
}
