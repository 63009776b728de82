package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimFence(t *testing.T) {
	t.Parallel()
	type testCase struct {
		name string
		in   string
		want string
	}
	testCases := []testCase{
		{
			name: "plain json untouched",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "fenced with language tag",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "fenced without language tag",
			in:   "```\n[1, 2]\n```",
			want: `[1, 2]`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```\n  ",
			want: `{}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc := tc
			t.Parallel()
			assert.Equal(t, tc.want, TrimFence(tc.in))
		})
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()
	type testCase struct {
		name string
		in   string
		want string
	}
	testCases := []testCase{
		{
			name: "object inside prose",
			in:   `Here you go: {"a": 1} hope that helps!`,
			want: `{"a": 1}`,
		},
		{
			name: "array inside prose",
			in:   `The list is [1, 2, 3]. Anything else?`,
			want: `[1, 2, 3]`,
		},
		{
			name: "nested braces",
			in:   `{"a": {"b": [1, {"c": 2}]}} trailing`,
			want: `{"a": {"b": [1, {"c": 2}]}}`,
		},
		{
			name: "braces inside strings",
			in:   `{"a": "closing } inside"} rest`,
			want: `{"a": "closing } inside"}`,
		},
		{
			name: "no json",
			in:   `sorry, I cannot help with that`,
			want: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc := tc
			t.Parallel()
			assert.Equal(t, tc.want, Extract(tc.in))
		})
	}
}

func TestUnmarshalClean(t *testing.T) {
	t.Parallel()

	var payload struct {
		Destinations []struct {
			Name string `json:"name"`
		} `json:"destinations"`
	}
	raw := "Sure! Here are my picks:\n```json\n{\"destinations\": [{\"name\": \"Lisbon\"}]}\n```\nEnjoy your trip."
	require.NoError(t, UnmarshalClean(raw, &payload))
	require.Len(t, payload.Destinations, 1)
	assert.Equal(t, "Lisbon", payload.Destinations[0].Name)
}
