package cmdtree

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip[T comparable](t *testing.T, values ...T) {
	t.Helper()
	for _, v := range values {
		s := formatValue(v)
		got, err := parseValue[T](s)
		require.NoError(t, err, "parse %q as %s", s, typeName[T]())
		assert.Equal(t, v, got, "round trip through %q", s)
	}
}

func TestValueRoundTrip(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		roundTrip(t, "", "todo.md", "with space", "--not-a-flag", "ünïcode")
	})
	t.Run("bool", func(t *testing.T) {
		t.Parallel()
		roundTrip(t, true, false)
	})
	t.Run("signed", func(t *testing.T) {
		t.Parallel()
		roundTrip(t, 0, -1, math.MaxInt, math.MinInt)
		roundTrip(t, int8(math.MinInt8), int8(math.MaxInt8))
		roundTrip(t, int16(math.MinInt16), int16(math.MaxInt16))
		roundTrip(t, int32(math.MinInt32), int32(math.MaxInt32))
		for range 100 {
			roundTrip(t, r.Int64(), -r.Int64())
		}
	})
	t.Run("unsigned", func(t *testing.T) {
		t.Parallel()
		roundTrip(t, uint(0), uint(math.MaxUint))
		roundTrip(t, uint8(math.MaxUint8))
		roundTrip(t, uint16(math.MaxUint16))
		roundTrip(t, uint32(math.MaxUint32))
		for range 100 {
			roundTrip(t, r.Uint64())
		}
	})
	t.Run("float", func(t *testing.T) {
		t.Parallel()
		roundTrip(t, 0.0, -1.5, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1))
		roundTrip(t, float32(0.1), float32(math.MaxFloat32))
		for range 100 {
			roundTrip(t, r.NormFloat64()*1e6, float64(r.Float32()))
			roundTrip(t, r.Float32())
		}
	})
	t.Run("duration", func(t *testing.T) {
		t.Parallel()
		roundTrip(t, time.Duration(0), time.Second, 90*time.Minute, -time.Millisecond)
		for range 100 {
			roundTrip(t, time.Duration(r.Int64()))
		}
	})
	t.Run("text unmarshaler", func(t *testing.T) {
		t.Parallel()
		roundTrip(t, Bash, Zsh, Fish)
	})
}

func TestParseValueErrors(t *testing.T) {
	t.Parallel()

	_, err := parseValue[int]("x")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid syntax")

	_, err = parseValue[int8]("300")
	require.Error(t, err)
	assert.EqualError(t, err, "value out of range")

	_, err = parseValue[uint]("-1")
	require.Error(t, err)

	_, err = parseValue[bool]("maybe")
	require.Error(t, err)

	_, err = parseValue[time.Duration]("5 minutes")
	require.Error(t, err)

	_, err = parseValue[Shell]("powershell")
	require.Error(t, err)
	assert.ErrorContains(t, err, `unsupported shell "powershell"`)

	_, err = parseValue[[]string]("a,b")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported value type")
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", typeName[string]())
	assert.Equal(t, "int", typeName[int]())
	assert.Equal(t, "duration", typeName[time.Duration]())
	assert.Equal(t, "Shell", typeName[Shell]())
	assert.Equal(t, "[]string", typeName[[]string]())
}
