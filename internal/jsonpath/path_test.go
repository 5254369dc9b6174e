package jsonpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/hearth/internal/jsonpath"
)

func TestParse(t *testing.T) {
	t.Run("should parse dotted property path", func(t *testing.T) {
		path, err := jsonpath.Parse("a.b.c")
		require.NoError(t, err)

		segs := path.Segments()
		require.Len(t, segs, 3)
		require.Equal(t, "a", segs[0].Property)
		require.Equal(t, "b", segs[1].Property)
		require.Equal(t, "c", segs[2].Property)
	})

	t.Run("should parse indexed path into three segments", func(t *testing.T) {
		path, err := jsonpath.Parse("messages[0].content")
		require.NoError(t, err)

		segs := path.Segments()
		require.Len(t, segs, 3)
		require.Equal(t, "messages", segs[0].Property)
		require.False(t, segs[0].IsIndex)
		require.True(t, segs[1].IsIndex)
		require.Equal(t, 0, segs[1].Index)
		require.Equal(t, "content", segs[2].Property)
	})

	t.Run("should preserve source string", func(t *testing.T) {
		path, err := jsonpath.Parse("choices[0].message.content")
		require.NoError(t, err)
		require.Equal(t, "choices[0].message.content", path.String())
	})

	t.Run("should return same cached instance for same source", func(t *testing.T) {
		first, err := jsonpath.Parse("contents[0].parts[0].text")
		require.NoError(t, err)

		second, err := jsonpath.Parse("contents[0].parts[0].text")
		require.NoError(t, err)
		require.Same(t, first, second)
	})

	t.Run("should panic on malformed path in MustParse", func(t *testing.T) {
		require.NotNil(t, jsonpath.MustParse("choices[0].message.content"))
		require.Panics(t, func() { jsonpath.MustParse("choices[") })
	})

	t.Run("should reject malformed paths", func(t *testing.T) {
		malformed := []string{
			"",
			"a[",
			"a[x]",
			"a[-1]",
			"a[0",
			"a]0[",
			"[0]",
			"a[0][1]",
			"a..b",
			".a",
			"a.",
		}

		for _, path := range malformed {
			_, err := jsonpath.Parse(path)
			require.Error(t, err, "expected %q to be rejected", path)

			var malformedErr *jsonpath.MalformedPathError
			require.ErrorAs(t, err, &malformedErr, "expected MalformedPathError for %q", path)
		}
	})
}
