package stripper_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackvity/export-fixer/pkg/stripper"
)

func TestStripLine(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		mode   stripper.MissingKeyMode
		want   string
		wantOK bool
	}{
		{
			name:   "ObjectIDWithSpaces",
			line:   `{"_id": {"$oid": "abc123"}, "name": "Alice"}`,
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"name": "Alice"}`,
			wantOK: true,
		},
		{
			name:   "CompactMongoexport",
			line:   `{"_id":{"$oid":"5f1b2c"},"name":"Bob","age":3}`,
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"name":"Bob","age":3}`,
			wantOK: true,
		},
		{
			name:   "StringID",
			line:   `{"_id": "x-1", "tags": ["a", "b"]}`,
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"tags": ["a", "b"]}`,
			wantOK: true,
		},
		{
			name:   "KeyNotFirst",
			line:   `{"a": 1, "_id": 7, "b": 2}`,
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"a": 1, "b": 2}`,
			wantOK: true,
		},
		{
			name:   "OnlyFirstOccurrence",
			line:   `{"_id": 1, "ref": {"_id": 2, "x": 1}}`,
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"ref": {"_id": 2, "x": 1}}`,
			wantOK: true,
		},
		{
			name:   "MissingKeyPassthrough",
			line:   `{"name": "Carol", "age": 4}`,
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"name": "Carol", "age": 4}`,
			wantOK: false,
		},
		{
			name:   "MissingKeyLegacyTruncatesToFirstComma",
			line:   `{"name": "Carol", "age": 4}`,
			mode:   stripper.MissingKeyLegacy,
			want:   ` "age": 4}`,
			wantOK: false,
		},
		{
			name:   "MissingKeyLegacyNoComma",
			line:   `{"name": "Carol"}`,
			mode:   stripper.MissingKeyLegacy,
			want:   `{"name": "Carol"}`,
			wantOK: false,
		},
		{
			name:   "KeyWithoutSeparatorPassthrough",
			line:   `{"name": "Dan", "_id": 9}`,
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"name": "Dan", "_id": 9}`,
			wantOK: false,
		},
		{
			name:   "KeyWithoutSeparatorLegacy",
			line:   `{"name": "Dan", "_id": 9}`,
			mode:   stripper.MissingKeyLegacy,
			want:   `{"name": "Dan", {"name": "Dan", "_id": 9}`,
			wantOK: false,
		},
		{
			name:   "TabAfterSeparator",
			line:   "{\"_id\": 1,\t\"k\": true}",
			mode:   stripper.MissingKeyPassthrough,
			want:   `{"k": true}`,
			wantOK: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := stripper.StripLine(tc.line, tc.mode)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestBuildArray(t *testing.T) {
	assert.Equal(t, "[]", stripper.BuildArray(nil))
	assert.Equal(t, "[]", stripper.BuildArray([]string{}))
	assert.Equal(t, `[{"a":1}]`, stripper.BuildArray([]string{`{"a":1}`}))
	assert.Equal(t, `[{"a":1},{"b":2},{"c":3}]`, stripper.BuildArray([]string{`{"a":1}`, `{"b":2}`, `{"c":3}`}))
}

func TestBuildArray_SingleEntryHasNoSeparator(t *testing.T) {
	entry, ok := stripper.StripLine(`{"_id": 1, "name": "x"}`, stripper.MissingKeyPassthrough)
	require.True(t, ok)

	doc := stripper.BuildArray([]string{entry})
	inner := strings.TrimSuffix(strings.TrimPrefix(doc, "["), "]")
	assert.Equal(t, entry, inner)
	assert.Equal(t, `[{"name": "x"}]`, doc)
}

func TestStripAndBuild_RoundTrip(t *testing.T) {
	lines := []string{
		`{"_id": {"$oid": "a1"}, "name": "Alice", "age": 30}`,
		`{"_id": {"$oid": "b2"}, "name": "Bob", "age": 31}`,
		`{"_id": {"$oid": "c3"}, "name": "Carol", "nested": {"k": [1, 2]}}`,
	}

	entries := make([]string, 0, len(lines))
	for _, l := range lines {
		out, ok := stripper.StripLine(l, stripper.MissingKeyPassthrough)
		require.True(t, ok)
		entries = append(entries, out)
	}
	doc := stripper.BuildArray(entries)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed), "output must be valid JSON: %s", doc)
	require.Len(t, parsed, len(lines))

	for i, obj := range parsed {
		assert.NotContains(t, obj, "_id")
		obj["_id"] = "placeholder"
		assert.Contains(t, obj, "name", "entry %d lost its fields", i)
	}
	assert.Equal(t, "Alice", parsed[0]["name"])
	assert.Equal(t, float64(31), parsed[1]["age"])
}
