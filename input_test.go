package cmdtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagParse(t *testing.T) {
	t.Parallel()

	t.Run("bool long form", func(t *testing.T) {
		t.Parallel()
		f := BoolFlag("create")
		ok, err := f.Parse("--create")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, f.Parsed())
		assert.True(t, f.Get())
	})
	t.Run("bool with value", func(t *testing.T) {
		t.Parallel()
		f := BoolFlag("create")
		ok, err := f.Parse("--create=false")
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, f.Get())
	})
	t.Run("short alias either case", func(t *testing.T) {
		t.Parallel()
		for _, token := range []string{"-c", "-C"} {
			f := BoolFlag("create")
			ok, err := f.Parse(token)
			require.NoError(t, err)
			require.True(t, ok, token)
			assert.True(t, f.Get())
		}
	})
	t.Run("short alias only for bool flags", func(t *testing.T) {
		t.Parallel()
		f := NewFlag[string]("format")
		ok, err := f.Parse("-f")
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("value flag", func(t *testing.T) {
		t.Parallel()
		f := NewFlag[int]("count")
		ok, err := f.Parse("--count=3")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 3, f.Get())
	})
	t.Run("value flag without value is not claimed", func(t *testing.T) {
		t.Parallel()
		f := NewFlag[int]("count")
		ok, err := f.Parse("--count")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, f.Parsed())
	})
	t.Run("empty value", func(t *testing.T) {
		t.Parallel()
		f := NewFlag[string]("message").Default("hi")
		ok, err := f.Parse("--message=")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "", f.Get())
	})
	t.Run("value containing equals", func(t *testing.T) {
		t.Parallel()
		f := NewFlag[string]("env")
		ok, err := f.Parse("--env=KEY=value")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "KEY=value", f.Get())
	})
	t.Run("not mine", func(t *testing.T) {
		t.Parallel()
		f := BoolFlag("create")
		for _, token := range []string{"--created", "--creat", "-x", "-cr", "-", "--", "create", "--other=1"} {
			ok, err := f.Parse(token)
			require.NoError(t, err, token)
			assert.False(t, ok, token)
		}
		assert.False(t, f.Parsed())
	})
	t.Run("conversion failure", func(t *testing.T) {
		t.Parallel()
		f := NewFlag[int]("count")
		ok, err := f.Parse("--count=many")
		require.Error(t, err)
		assert.False(t, ok)
		var cliErr *Error
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, ErrInvalidValue, cliErr.Code())
		assert.Equal(t, "count", cliErr.Input())
		assert.Equal(t, "--count=many", cliErr.Token())
		assert.EqualError(t, err, `invalid value "many" for flag --count: invalid syntax`)
	})
	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		b := BoolFlag("create")
		assert.True(t, b.HasDefault())
		assert.True(t, b.IsBoolFlag())
		assert.False(t, b.Get())

		s := NewFlag[string]("format")
		assert.False(t, s.HasDefault())
		assert.False(t, s.IsBoolFlag())
		_, ok := s.Lookup()
		assert.False(t, ok)

		s.Default("md")
		v, ok := s.Lookup()
		assert.True(t, ok)
		assert.Equal(t, "md", v)
		assert.Equal(t, "md", s.DefaultString())
	})
}

func TestArgParse(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		a := NewArg[string]("name")
		ok, err := a.Parse("todo.md")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "todo.md", a.Get())
		assert.Equal(t, KindArg, a.Kind())
		assert.False(t, a.IsBoolFlag())
	})
	t.Run("single dash is a value", func(t *testing.T) {
		t.Parallel()
		a := NewArg[int]("offset")
		ok, err := a.Parse("-3")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, -3, a.Get())
	})
	t.Run("flag-shaped token", func(t *testing.T) {
		t.Parallel()
		a := NewArg[string]("name")
		_, err := a.Parse("--name")
		require.Error(t, err)
		var cliErr *Error
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, ErrInvalidValue, cliErr.Code())
		assert.False(t, a.Parsed())
	})
	t.Run("conversion failure", func(t *testing.T) {
		t.Parallel()
		a := NewArg[Shell]("shell")
		_, err := a.Parse("powershell")
		require.Error(t, err)
		assert.ErrorContains(t, err, `invalid value "powershell" for argument "shell"`)
		assert.False(t, a.Parsed())
	})
	t.Run("default", func(t *testing.T) {
		t.Parallel()
		a := NewArg[int]("count").Default(10)
		assert.True(t, a.HasDefault())
		assert.Equal(t, 10, a.Get())
		assert.Equal(t, "10", a.DefaultString())
		_, err := a.Parse("3")
		require.NoError(t, err)
		assert.Equal(t, 3, a.Get())
		a.reset()
		assert.False(t, a.Parsed())
		assert.Equal(t, 10, a.Get())
	})
}

func TestInputComplete(t *testing.T) {
	t.Parallel()

	t.Run("bool values", func(t *testing.T) {
		t.Parallel()
		got, err := BoolFlag("create").Complete("t")
		require.NoError(t, err)
		assert.Equal(t, []string{"true"}, got)
	})
	t.Run("self-completing type", func(t *testing.T) {
		t.Parallel()
		got, err := NewArg[Shell]("shell").Complete("")
		require.NoError(t, err)
		assert.Equal(t, []string{"bash", "zsh", "fish"}, got)
	})
	t.Run("no completor", func(t *testing.T) {
		t.Parallel()
		got, err := NewArg[string]("name").Complete("x")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("custom completor", func(t *testing.T) {
		t.Parallel()
		a := NewArg[string]("name").Completor(CompleteFrom("todo.md", "today.md", "notes.md"))
		got, err := a.Complete("to")
		require.NoError(t, err)
		assert.Equal(t, []string{"todo.md", "today.md"}, got)
	})
	t.Run("completor error", func(t *testing.T) {
		t.Parallel()
		a := NewArg[string]("name").Completor(func(string) ([]string, error) {
			return nil, errors.New("boom")
		})
		_, err := a.Complete("")
		require.Error(t, err)
		assert.EqualError(t, err, `complete "name": boom`)
	})
}

func TestInputDescribe(t *testing.T) {
	t.Parallel()

	f := NewFlag[string]("format").Describe("output format")
	assert.Equal(t, "format", f.DisplayName())
	assert.Equal(t, "output format", f.Description())
	assert.Equal(t, "string", f.TypeName())
	assert.Equal(t, KindFlag, f.Kind())
	assert.Equal(t, "flag", f.Kind().String())
	assert.Equal(t, "argument", KindArg.String())
}
