package extract

import "gettext-extractor/internal/jsast"

// deferArguments wraps each argument of a keyword call in a zero-argument
// arrow function. For fn.apply(this, [a, b]) the receiver and every element
// of the argument array are wrapped instead of the array itself.
func deferArguments(t *jsast.Tree, id jsast.NodeID) {
	args := t.Elements(t.Field(id, jsast.FieldArguments))

	if isApply(t, id) && len(args) == 2 {
		wrap(t, args[0])
		if t.Is(args[1], jsast.KindArrayExpression) {
			for _, el := range t.Elements(args[1]) {
				wrap(t, el)
			}
		}
		return
	}

	for _, arg := range args {
		wrap(t, arg)
	}
}

// wrap leaves spread elements alone; a thunk cannot be spread.
func wrap(t *jsast.Tree, id jsast.NodeID) {
	if t.Is(id, jsast.KindSpreadElement) {
		return
	}
	t.Update(id, thunk(t.Source(id)))
}

func thunk(expr string) string {
	return "() => (" + expr + ")"
}
