package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/cyclegrid/internal/units"
)

// newEvalContext exposes every offset-free unit as a scale variable and the
// unit(value, name) function for the rest (temperatures in C, for example).
func newEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for name, factor := range units.Scales() {
		vars[name] = cty.NumberFloatVal(factor)
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{
			"unit": unitFunc,
		},
	}
}

var unitFunc = function.New(&function.Spec{
	Description: "Converts a value in the named unit to SI.",
	Params: []function.Parameter{
		{Name: "value", Type: cty.Number},
		{Name: "unit", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var value float64
		if err := gocty.FromCtyValue(args[0], &value); err != nil {
			return cty.UnknownVal(cty.Number), function.NewArgError(0, err)
		}
		si, err := units.Convert(value, args[1].AsString())
		if err != nil {
			return cty.UnknownVal(cty.Number), function.NewArgError(1, err)
		}
		return cty.NumberFloatVal(si), nil
	},
})
