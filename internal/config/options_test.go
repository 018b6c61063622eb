package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterIdempotent(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(TypeBool, OptionConfirmOnOverwrite, true))
	require.NoError(t, reg.Register(TypeBool, OptionConfirmOnOverwrite, true), "same type and default must not error")

	opt, ok := reg.Get(OptionConfirmOnOverwrite)
	require.True(t, ok)
	assert.Equal(t, true, opt.Default)
	assert.Equal(t, true, opt.Value)
}

func TestRegistry_RegisterKeepsValueOnRepeat(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(TypeBool, "FLAG", false))
	require.NoError(t, reg.Set("FLAG", "yes"))

	require.NoError(t, reg.Register(TypeBool, "FLAG", false))

	b, err := reg.Bool("FLAG")
	require.NoError(t, err)
	assert.True(t, b, "re-registration must not reset the value")
}

func TestRegistry_RegisterConflict(t *testing.T) {
	tests := []struct {
		name string
		typ  OptionType
		def  interface{}
	}{
		{name: "different default", typ: TypeBool, def: false},
		{name: "different type", typ: TypeString, def: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			require.NoError(t, reg.Register(TypeBool, "FLAG", true))

			err := reg.Register(tt.typ, "FLAG", tt.def)
			require.Error(t, err)

			var conflict *OptionConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, "FLAG", conflict.Name)
			assert.Contains(t, err.Error(), "already registered")
		})
	}
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Register(TypeBool, "", true))
	assert.Error(t, reg.Register(TypeInt, "N", "many"))
	assert.Error(t, reg.Register(OptionType(99), "X", 1))
}

func TestRegistry_Set(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(
		Definition{Type: TypeBool, Name: "B", Default: false},
		Definition{Type: TypeInt, Name: "I", Default: 1},
		Definition{Type: TypeFloat, Name: "F", Default: 1.5},
		Definition{Type: TypeString, Name: "S", Default: ""},
	))

	require.NoError(t, reg.Set("B", "TRUE"))
	require.NoError(t, reg.Set("I", " 42 "))
	require.NoError(t, reg.Set("F", "2.25"))
	require.NoError(t, reg.Set("S", `"/home/user/phoebe"`))

	values := reg.Values()
	assert.Equal(t, true, values["B"])
	assert.Equal(t, 42, values["I"])
	assert.Equal(t, 2.25, values["F"])
	assert.Equal(t, "/home/user/phoebe", values["S"])

	assert.Error(t, reg.Set("B", "maybe"))
	assert.Error(t, reg.Set("I", "4.5"))
	assert.Error(t, reg.Set("F", "pi"))
	assert.Error(t, reg.Set("MISSING", "1"))
}

func TestRegistry_SetValueCoercesNumbers(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(TypeFloat, "F", 0.0))
	require.NoError(t, reg.Register(TypeInt, "I", 0))

	require.NoError(t, reg.SetValue("F", 3))
	require.NoError(t, reg.SetValue("I", 7.0))

	opt, _ := reg.Get("F")
	assert.Equal(t, 3.0, opt.Value)
	opt, _ = reg.Get("I")
	assert.Equal(t, 7, opt.Value)

	assert.Error(t, reg.SetValue("I", 7.5))
}

func TestRegistry_ApplyAllOrNothing(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(TypeBool, "A", false))
	require.NoError(t, reg.Register(TypeInt, "B", 1))

	_, err := reg.Apply(map[string]interface{}{"A": true, "B": "not a number"})
	require.Error(t, err)

	a, _ := reg.Bool("A")
	assert.False(t, a, "a failed apply must not leave partial values")

	skipped, err := reg.Apply(map[string]interface{}{"A": true, "Z": 1, "Y": 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Y", "Z"}, skipped)
	a, _ = reg.Bool("A")
	assert.True(t, a)
}

func TestRegistry_NamesAndReset(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(GUIOptions...))
	assert.Equal(t, []string{OptionBeepAfterPlotAndFit, OptionConfirmOnOverwrite}, reg.Names())

	require.NoError(t, reg.Set(OptionBeepAfterPlotAndFit, "on"))
	reg.Reset()

	beep, err := reg.Bool(OptionBeepAfterPlotAndFit)
	require.NoError(t, err)
	assert.False(t, beep)
}

func TestRegistry_TypedGetters(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(TypeString, "S", "x"))

	s, err := reg.String("S")
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = reg.Bool("S")
	assert.Error(t, err)
	_, err = reg.String("MISSING")
	assert.Error(t, err)
}
