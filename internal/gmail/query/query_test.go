package query

import "testing"

func TestAnd(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "flat",
			got:  And("a", "b", "c"),
			want: "(a b c)",
		},
		{
			name: "nested",
			got: And(
				And(And("a", "b", "c"), And("d", "e", "f")),
				And(And("g", "h", "i"), "j"),
			),
			want: "(((a b c) (d e f)) ((g h i) j))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("And() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestOr(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "flat",
			got:  Or("a", "b", "c"),
			want: "{a b c}",
		},
		{
			name: "nested",
			got: Or(
				Or(Or("a", "b", "c"), Or("d", "e", "f")),
				Or(Or("g", "h", "i"), "j"),
			),
			want: "{{{a b c} {d e f}} {{g h i} j}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Or() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestExclude(t *testing.T) {
	if got := Exclude("a"); got != "-a" {
		t.Errorf("Exclude() = %q, want -a", got)
	}
	if got := Exclude(From("spam@example.com")); got != "-from:spam@example.com" {
		t.Errorf("Exclude(From()) = %q, want -from:spam@example.com", got)
	}
}

func TestKeywordBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"from single", From("john@doe.com"), "from:john@doe.com"},
		{"from multiple", From("john@doe.com", "jane@doe.com"), "{from:john@doe.com from:jane@doe.com}"},
		{"to single", To("john@doe.com"), "to:john@doe.com"},
		{"subject", Subject("meeting"), "subject:meeting"},
		{"subject multiple", Subject("meeting", "HR"), "{subject:meeting subject:HR}"},
		{"label", Label("work"), "label:work"},
		{"labels single", Labels("work"), "label:work"},
		{"labels multiple", Labels("work", "urgent"), "(label:work label:urgent)"},
		{"unread", Unread(), "is:unread"},
		{"starred", Starred(), "is:starred"},
		{"has attachment", HasAttachment(), "has:attachment"},
		{"newer than day", NewerThan(1, Day), "newer_than:1d"},
		{"newer than months", NewerThan(3, Month), "newer_than:3m"},
		{"older than year", OlderThan(1, Year), "older_than:1y"},
		{"before", Before("2024/01/01"), "before:2024/01/01"},
		{"after", After("2024/01/01"), "after:2024/01/01"},
		{"near words", NearWords("invoice", "overdue", 5, false), "invoice AROUND 5 overdue"},
		{"near words exact", NearWords("invoice", "overdue", 5, true), `"invoice AROUND 5 overdue"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestConstruct(t *testing.T) {
	tests := []struct {
		name string
		opts []Options
		want string
	}{
		{
			name: "empty",
			opts: nil,
			want: "",
		},
		{
			name: "from and subject",
			opts: []Options{{
				From:    []string{"john@doe.com", "jane@doe.com"},
				Subject: []string{"meeting"},
			}},
			want: "({from:john@doe.com from:jane@doe.com} subject:meeting)",
		},
		{
			name: "subjects are OR'd",
			opts: []Options{{
				From:      []string{"john@doe.com"},
				Subject:   []string{"meeting", "HR"},
				NewerThan: Period{1, Day},
			}},
			want: "(from:john@doe.com {subject:meeting subject:HR} newer_than:1d)",
		},
		{
			name: "label set and flags",
			opts: []Options{{
				Labels: [][]string{{"work", "urgent"}},
				Unread: true,
			}},
			want: "((label:work label:urgent) is:unread)",
		},
		{
			name: "label sets are OR'd",
			opts: []Options{{
				Labels: [][]string{{"work"}, {"personal", "urgent"}},
			}},
			want: "({label:work (label:personal label:urgent)})",
		},
		{
			name: "relative dates",
			opts: []Options{{
				From:      []string{"news@example.com"},
				NewerThan: Period{1, Day},
			}},
			want: "(from:news@example.com newer_than:1d)",
		},
		{
			name: "excludes",
			opts: []Options{{
				Subject:     []string{"report"},
				ExcludeFrom: []string{"noreply@example.com"},
			}},
			want: "(subject:report -from:noreply@example.com)",
		},
		{
			name: "exclude starred with labels",
			opts: []Options{{
				Labels:         [][]string{{"work", "HR"}},
				ExcludeStarred: true,
			}},
			want: "((label:work label:HR) -is:starred)",
		},
		{
			name: "exclude flags",
			opts: []Options{{
				Unread:               true,
				ExcludeSnoozed:       true,
				ExcludeImportant:     true,
				ExcludeHasAttachment: true,
			}},
			want: "(is:unread -is:snoozed -is:important -has:attachment)",
		},
		{
			name: "exclude unread",
			opts: []Options{{
				From:          []string{"news@example.com"},
				ExcludeUnread: true,
			}},
			want: "(from:news@example.com -is:unread)",
		},
		{
			name: "multiple option sets OR together",
			opts: []Options{
				{From: []string{"john@doe.com"}},
				{Subject: []string{"meeting"}, Starred: true},
			},
			want: "{(from:john@doe.com) (subject:meeting is:starred)}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Construct(tt.opts...); got != tt.want {
				t.Errorf("Construct() = %q, want %q", got, tt.want)
			}
		})
	}
}
