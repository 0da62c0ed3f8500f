package exec

// Walk visits an operator tree depth-first, parents before children. If fn
// returns false the children of that operator are skipped.
func Walk(root Operator, fn func(Operator) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children() {
		Walk(child, fn)
	}
}

// Contains reports whether target is root or one of its descendants.
func Contains(root, target Operator) bool {
	found := false
	Walk(root, func(op Operator) bool {
		if op == target {
			found = true
		}
		return !found
	})
	return found
}

// counterpart finds the operator in clone standing at the same position as
// target stands in original. Both trees must have the same shape.
func counterpart(original, clone, target Operator) Operator {
	if original == target {
		return clone
	}

	originalChildren := original.Children()
	cloneChildren := clone.Children()
	if len(originalChildren) != len(cloneChildren) {
		return nil
	}
	for i, child := range originalChildren {
		if found := counterpart(child, cloneChildren[i], target); found != nil {
			return found
		}
	}
	return nil
}
