package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query describes a filtered read or write against one table or view.
type Query struct {
	table  string
	params url.Values
	orders []string
}

func From(table string) *Query {
	return &Query{table: table, params: url.Values{}}
}

func (q *Query) Table() string {
	return q.table
}

func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

func (q *Query) filter(column, operator, value string) *Query {
	q.params.Add(column, operator+"."+value)
	return q
}

func (q *Query) Eq(column, value string) *Query { return q.filter(column, "eq", value) }
func (q *Query) Neq(column, value string) *Query { return q.filter(column, "neq", value) }
func (q *Query) Gte(column, value string) *Query { return q.filter(column, "gte", value) }
func (q *Query) Lte(column, value string) *Query { return q.filter(column, "lte", value) }
func (q *Query) Lt(column, value string) *Query { return q.filter(column, "lt", value) }

// Not negates operator, as in user_type=not.eq.admin.
func (q *Query) Not(column, operator, value string) *Query {
	return q.filter(column, "not."+operator, value)
}

// In matches any of values. An empty list matches nothing.
func (q *Query) In(column string, values []string) *Query {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quote(v))
	}
	return q.filter(column, "in", "("+strings.Join(quoted, ",")+")")
}

// Or joins conditions built with Condition or ILikeCondition.
func (q *Query) Or(conditions ...string) *Query {
	q.params.Add("or", "("+strings.Join(conditions, ",")+")")
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	q.orders = append(q.orders, column+"."+direction)
	return q
}

func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

func (q *Query) OnConflict(columns string) *Query {
	q.params.Set("on_conflict", columns)
	return q
}

func (q *Query) Encode() string {
	params := url.Values{}
	for k, v := range q.params {
		params[k] = append([]string(nil), v...)
	}
	if len(q.orders) > 0 {
		params.Set("order", strings.Join(q.orders, ","))
	}
	return params.Encode()
}

// Condition builds an or= member such as status.eq.confirmed.
func Condition(column, operator, value string) string {
	return fmt.Sprintf("%s.%s.%s", column, operator, quote(value))
}

// ILikeCondition matches value anywhere in column, case-insensitively.
func ILikeCondition(column, value string) string {
	return fmt.Sprintf("%s.ilike.%s", column, quote("*"+value+"*"))
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
