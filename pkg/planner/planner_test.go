package planner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authzed/graphexec/pkg/exec"
	"github.com/authzed/graphexec/pkg/graph"
)

const testGraph = `
nodes:
  - {id: 1, labels: [Person], properties: {name: alice, country: NL}}
  - {id: 2, labels: [Person], properties: {name: bob, country: NL}}
  - {id: 3, labels: [Person], properties: {name: carol, country: DE}}
  - {id: 4, labels: [Person], properties: {name: dave, country: NL}}
  - {id: 5, labels: [Robot], properties: {name: erin}}
edges:
  - {type: KNOWS, src: 1, dst: 2}
  - {type: KNOWS, src: 1, dst: 3}
  - {type: KNOWS, src: 3, dst: 4}
  - {type: KNOWS, src: 4, dst: 5}
  - {type: KNOWS, src: 2, dst: 4}
  - {type: BLOCKED, src: 4, dst: 1}
`

func run(t *testing.T, query string) ([]string, *Result) {
	t.Helper()
	require := require.New(t)

	store, err := graph.LoadYAML(strings.NewReader(testGraph))
	require.NoError(err)

	q, err := ParseQuery(strings.NewReader(query))
	require.NoError(err)

	result, err := Build(q)
	require.NoError(err)

	ctx := exec.NewLocalContext(t.Context(), exec.WithGraph(store))
	records, err := result.Plan.Execute(ctx)
	require.NoError(err)

	out := make([]string, 0, len(records))
	for _, r := range records {
		var cells []string
		for _, v := range result.Project(r) {
			cells = append(cells, v.(graph.Node).Properties["name"].(string))
		}
		out = append(out, strings.Join(cells, ","))
		r.Release()
	}

	result.Plan.Free()
	require.Zero(ctx.Records.Live())
	return out, result
}

func TestBuild(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		query    string
		expected []string
		explain  string
	}{
		{
			name:     "match only",
			query:    `match: {alias: p, label: Person}`,
			expected: []string{"alice", "bob", "carol", "dave"},
			explain:  "NodeScan(p:Person)",
		},
		{
			name:     "match with properties",
			query:    `match: {alias: p, label: Person, properties: {country: NL}}`,
			expected: []string{"alice", "bob", "dave"},
			explain:  "Filter(p:Person {country: NL})\n└─ NodeScan(p:Person)",
		},
		{
			name: "exists",
			query: `
match: {alias: p, label: Person}
where:
  - exists: {from: p, hops: [{edge: KNOWS, to: {alias: f, label: Person}}]}
`,
			expected: []string{"alice", "bob", "carol"},
			explain: `SemiApply
├─ NodeScan(p:Person)
└─ Filter(f:Person)
   └─ ConditionalTraverse([0]-[:KNOWS]->[1])
      └─ Argument`,
		},
		{
			name: "not exists",
			query: `
match: {alias: p, label: Person}
where:
  - not_exists: {from: p, hops: [{edge: KNOWS, to: {label: Person}}]}
`,
			expected: []string{"dave"},
		},
		{
			name: "multiple hops",
			query: `
match: {alias: p}
where:
  - exists:
      from: p
      hops:
        - {edge: KNOWS}
        - {edge: KNOWS, to: {label: Robot}}
`,
			expected: []string{"bob", "carol"},
		},
		{
			name: "conjunction of conditions",
			query: `
match: {alias: p, label: Person}
where:
  - exists: {from: p, hops: [{edge: KNOWS}]}
  - not_exists: {from: p, hops: [{edge: BLOCKED}]}
`,
			expected: []string{"alice", "bob", "carol"},
		},
		{
			name: "nested condition",
			query: `
match: {alias: p, label: Person}
where:
  - exists:
      from: p
      hops:
        - {edge: KNOWS, to: {alias: f, label: Person}}
      where:
        - not_exists: {from: f, hops: [{edge: BLOCKED}]}
return: [p]
`,
			// bob and carol only know dave, who blocks alice.
			expected: []string{"alice"},
			explain: `SemiApply
├─ NodeScan(p:Person)
└─ AntiSemiApply
   ├─ Filter(f:Person)
   │  └─ ConditionalTraverse([0]-[:KNOWS]->[1])
   │     └─ Argument
   └─ ConditionalTraverse([1]-[:BLOCKED]->[2])
      └─ Argument`,
		},
		{
			name: "nested condition on the outer alias",
			query: `
match: {alias: p, label: Person}
where:
  - exists:
      from: p
      hops:
        - {edge: KNOWS, to: {alias: f, properties: {country: NL}}}
      where:
        - exists: {from: p, hops: [{edge: KNOWS, to: {properties: {country: DE}}}]}
`,
			expected: []string{"alice"},
		},
		{
			name: "any edge type",
			query: `
match: {alias: p, label: Person}
where:
  - exists: {from: p, hops: [{to: {alias: x, properties: {name: alice}}}]}
`,
			expected: []string{"dave"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, result := run(t, tc.query)
			require.Equal(t, tc.expected, out)
			if tc.explain != "" {
				require.Equal(t, tc.explain, result.Plan.Explain().String())
			}
		})
	}
}

func TestBuildReturnColumns(t *testing.T) {
	t.Parallel()

	out, result := run(t, `
match: {alias: p, label: Person, properties: {name: alice}}
return: [p, p]
`)
	require.Equal(t, []string{"alice,alice"}, out)
	require.Equal(t, []string{"p", "p"}, result.Columns)
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		query string
		err   error
	}{
		{"missing alias", `match: {label: Person}`, ErrMissingAlias},
		{"unknown from", `
match: {alias: p}
where: [{exists: {from: q, hops: [{edge: KNOWS}]}}]`, ErrUnknownAlias},
		{"pattern alias out of scope", `
match: {alias: p}
where:
  - exists: {from: p, hops: [{edge: KNOWS, to: {alias: f}}]}
  - exists: {from: f, hops: [{edge: KNOWS}]}`, ErrUnknownAlias},
		{"duplicate alias", `
match: {alias: p}
where: [{exists: {from: p, hops: [{edge: KNOWS, to: {alias: p}}]}}]`, ErrDuplicateAlias},
		{"empty hops", `
match: {alias: p}
where: [{exists: {from: p}}]`, ErrEmptyPattern},
		{"both conditions", `
match: {alias: p}
where: [{exists: {from: p, hops: [{edge: A}]}, not_exists: {from: p, hops: [{edge: A}]}}]`, ErrInvalidCondition},
		{"no condition", `
match: {alias: p}
where: [{}]`, ErrInvalidCondition},
		{"nested error", `
match: {alias: p}
where:
  - exists:
      from: p
      hops: [{edge: KNOWS}]
      where: [{not_exists: {from: nope, hops: [{edge: KNOWS}]}}]`, ErrUnknownAlias},
		{"unknown return", `
match: {alias: p}
return: [f]`, ErrUnknownAlias},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q, err := ParseQuery(strings.NewReader(tc.query))
			require.NoError(t, err)

			_, err = Build(q)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	_, err := ParseQuery(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyQuery)

	_, err = ParseQuery(strings.NewReader("match: {alias: p, colour: red}"))
	require.ErrorContains(t, err, "colour")

	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte("match: {alias: p}\nreturn: [p]\n"), 0o600))
	q, err := LoadQueryFile(path)
	require.NoError(t, err)
	require.Equal(t, "p", q.Match.Alias)

	_, err = LoadQueryFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
