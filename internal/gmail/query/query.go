// Package query assembles Gmail search query strings.
//
// Gmail's search grammar groups AND terms with parentheses and OR terms
// with braces. Builders in this package return plain strings so they can
// be nested freely:
//
//	query.And(query.Or(query.From("a@b.com"), query.From("c@d.com")), query.Subject("hi"))
package query

import (
	"fmt"
	"strings"
)

// TimeUnit is the unit for NewerThan/OlderThan relative date terms.
type TimeUnit string

const (
	Day   TimeUnit = "d"
	Month TimeUnit = "m"
	Year  TimeUnit = "y"
)

// And groups queries so that all of them must match.
func And(queries ...string) string {
	return "(" + strings.Join(queries, " ") + ")"
}

// Or groups queries so that at least one of them must match.
func Or(queries ...string) string {
	return "{" + strings.Join(queries, " ") + "}"
}

// Exclude negates a query term.
func Exclude(query string) string {
	return "-" + query
}

// From matches messages sent by any of the given addresses.
func From(senders ...string) string {
	return orTerms("from", senders)
}

// To matches messages addressed to any of the given recipients.
func To(recipients ...string) string {
	return orTerms("to", recipients)
}

// Cc matches messages cc'd to any of the given recipients.
func Cc(recipients ...string) string {
	return orTerms("cc", recipients)
}

// Bcc matches messages bcc'd to any of the given recipients.
func Bcc(recipients ...string) string {
	return orTerms("bcc", recipients)
}

// Subject matches messages whose subject contains any of the given words.
func Subject(subjects ...string) string {
	return orTerms("subject", subjects)
}

// Labels matches messages carrying all of the given labels.
func Labels(labels ...string) string {
	if len(labels) == 1 {
		return Label(labels[0])
	}
	terms := make([]string, len(labels))
	for i, l := range labels {
		terms[i] = Label(l)
	}
	return And(terms...)
}

// Label matches messages carrying the given label.
func Label(label string) string {
	return "label:" + label
}

// Unread matches unread messages.
func Unread() string {
	return "is:unread"
}

// Read matches read messages.
func Read() string {
	return "is:read"
}

// Starred matches starred messages.
func Starred() string {
	return "is:starred"
}

// Snoozed matches snoozed messages.
func Snoozed() string {
	return "is:snoozed"
}

// Important matches messages marked important.
func Important() string {
	return "is:important"
}

// HasAttachment matches messages with attachments.
func HasAttachment() string {
	return "has:attachment"
}

// InSpam matches messages in the spam folder.
func InSpam() string {
	return "in:spam"
}

// InTrash matches messages in the trash folder.
func InTrash() string {
	return "in:trash"
}

// NewerThan matches messages newer than the given period, e.g. NewerThan(1, Day) -> newer_than:1d.
func NewerThan(n int, unit TimeUnit) string {
	return fmt.Sprintf("newer_than:%d%s", n, unit)
}

// OlderThan matches messages older than the given period.
func OlderThan(n int, unit TimeUnit) string {
	return fmt.Sprintf("older_than:%d%s", n, unit)
}

// Before matches messages sent before the given date (YYYY/MM/DD).
func Before(date string) string {
	return "before:" + date
}

// After matches messages sent after the given date (YYYY/MM/DD).
func After(date string) string {
	return "after:" + date
}

// NearWords matches messages where two words occur within distance words of
// each other. With exact set, the order of the words is enforced.
func NearWords(first, second string, distance int, exact bool) string {
	term := fmt.Sprintf("%s AROUND %d %s", first, distance, second)
	if exact {
		term = `"` + term + `"`
	}
	return term
}

func orTerms(field string, values []string) string {
	if len(values) == 1 {
		return field + ":" + values[0]
	}
	terms := make([]string, len(values))
	for i, v := range values {
		terms[i] = field + ":" + v
	}
	return Or(terms...)
}

// Options selects query terms for Construct. Zero values are omitted.
// Multiple values within a field are OR'd; distinct fields are AND'd.
type Options struct {
	From    []string
	To      []string
	Cc      []string
	Bcc     []string
	Subject []string

	// Labels is a list of label sets. Labels within a set are AND'd,
	// the sets themselves are OR'd.
	Labels [][]string

	Unread        bool
	Read          bool
	Starred       bool
	Snoozed       bool
	Important     bool
	HasAttachment bool
	InSpam        bool
	InTrash       bool

	NewerThan Period
	OlderThan Period

	Before string
	After  string

	Near *Proximity

	ExcludeFrom    []string
	ExcludeTo      []string
	ExcludeSubject []string
	ExcludeLabels  [][]string

	ExcludeUnread        bool
	ExcludeStarred       bool
	ExcludeSnoozed       bool
	ExcludeImportant     bool
	ExcludeHasAttachment bool
}

// Period is a relative date expression, e.g. {1, Day}.
type Period struct {
	N    int
	Unit TimeUnit
}

// Proximity is an AROUND expression.
type Proximity struct {
	First    string
	Second   string
	Distance int
	Exact    bool
}

// Construct builds a query from one or more option sets.
// A single set AND's its terms; multiple sets are OR'd together.
func Construct(opts ...Options) string {
	if len(opts) == 0 {
		return ""
	}
	if len(opts) == 1 {
		return And(terms(opts[0])...)
	}
	groups := make([]string, len(opts))
	for i, o := range opts {
		groups[i] = And(terms(o)...)
	}
	return Or(groups...)
}

func terms(o Options) []string {
	var ts []string

	if len(o.From) > 0 {
		ts = append(ts, From(o.From...))
	}
	if len(o.To) > 0 {
		ts = append(ts, To(o.To...))
	}
	if len(o.Cc) > 0 {
		ts = append(ts, Cc(o.Cc...))
	}
	if len(o.Bcc) > 0 {
		ts = append(ts, Bcc(o.Bcc...))
	}
	if len(o.Subject) > 0 {
		ts = append(ts, Subject(o.Subject...))
	}
	if len(o.Labels) > 0 {
		ts = append(ts, labelSets(o.Labels))
	}
	if o.Unread {
		ts = append(ts, Unread())
	}
	if o.Read {
		ts = append(ts, Read())
	}
	if o.Starred {
		ts = append(ts, Starred())
	}
	if o.Snoozed {
		ts = append(ts, Snoozed())
	}
	if o.Important {
		ts = append(ts, Important())
	}
	if o.HasAttachment {
		ts = append(ts, HasAttachment())
	}
	if o.InSpam {
		ts = append(ts, InSpam())
	}
	if o.InTrash {
		ts = append(ts, InTrash())
	}
	if o.NewerThan.N > 0 {
		ts = append(ts, NewerThan(o.NewerThan.N, o.NewerThan.Unit))
	}
	if o.OlderThan.N > 0 {
		ts = append(ts, OlderThan(o.OlderThan.N, o.OlderThan.Unit))
	}
	if o.Before != "" {
		ts = append(ts, Before(o.Before))
	}
	if o.After != "" {
		ts = append(ts, After(o.After))
	}
	if o.Near != nil {
		ts = append(ts, NearWords(o.Near.First, o.Near.Second, o.Near.Distance, o.Near.Exact))
	}
	if len(o.ExcludeFrom) > 0 {
		ts = append(ts, Exclude(From(o.ExcludeFrom...)))
	}
	if len(o.ExcludeTo) > 0 {
		ts = append(ts, Exclude(To(o.ExcludeTo...)))
	}
	if len(o.ExcludeSubject) > 0 {
		ts = append(ts, Exclude(Subject(o.ExcludeSubject...)))
	}
	if len(o.ExcludeLabels) > 0 {
		ts = append(ts, Exclude(labelSets(o.ExcludeLabels)))
	}
	if o.ExcludeUnread {
		ts = append(ts, Exclude(Unread()))
	}
	if o.ExcludeStarred {
		ts = append(ts, Exclude(Starred()))
	}
	if o.ExcludeSnoozed {
		ts = append(ts, Exclude(Snoozed()))
	}
	if o.ExcludeImportant {
		ts = append(ts, Exclude(Important()))
	}
	if o.ExcludeHasAttachment {
		ts = append(ts, Exclude(HasAttachment()))
	}

	return ts
}

func labelSets(sets [][]string) string {
	if len(sets) == 1 {
		return Labels(sets[0]...)
	}
	groups := make([]string, len(sets))
	for i, set := range sets {
		groups[i] = Labels(set...)
	}
	return Or(groups...)
}
