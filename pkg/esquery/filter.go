package esquery

// TakeNestedFilter extracts the inner query of the first `nested` clause
// whose path equals the argument and removes that clause from the tree.
// Postcondition: on ok=true the returned subtree is no longer reachable
// from the prepared query. A second call for the same path returns
// ok=false unless the tree contains another matching clause.
func (p *Prepared) TakeNestedFilter(path string) (map[string]any, bool) {
	if p.dsl == nil {
		return nil, false
	}
	if isNestedClause(p.dsl, path) {
		inner := innerQuery(p.dsl)
		p.dsl = map[string]any{"match_all": map[string]any{}}
		return inner, true
	}
	return removeNested(p.dsl, path)
}

// removeNested walks maps and clause arrays looking for a nested clause
// with the given path, detaching it from its parent when found.
func removeNested(node map[string]any, path string) (map[string]any, bool) {
	for key, value := range node {
		switch child := value.(type) {
		case map[string]any:
			if isNestedClause(child, path) {
				delete(node, key)
				return innerQuery(child), true
			}
			if filter, ok := removeNested(child, path); ok {
				return filter, true
			}
		case []any:
			for i, element := range child {
				clause, ok := element.(map[string]any)
				if !ok {
					continue
				}
				if isNestedClause(clause, path) {
					node[key] = append(child[:i:i], child[i+1:]...)
					return innerQuery(clause), true
				}
				if filter, ok := removeNested(clause, path); ok {
					return filter, true
				}
			}
		}
	}
	return nil, false
}

// isNestedClause reports whether the map is exactly a `nested` clause
// scoped to path.
func isNestedClause(clause map[string]any, path string) bool {
	if len(clause) != 1 {
		return false
	}
	nested, ok := clause["nested"].(map[string]any)
	if !ok {
		return false
	}
	clausePath, ok := nested["path"].(string)
	return ok && clausePath == path
}

func innerQuery(clause map[string]any) map[string]any {
	nested := clause["nested"].(map[string]any)
	if query, ok := nested["query"].(map[string]any); ok {
		return query
	}
	return map[string]any{"match_all": map[string]any{}}
}
