package wire

// Tolerant read-path accessors. The registry's scan and point-query results
// omit attributes freely; an absent key, an absent tag, or an unexpected
// payload shape all yield the zero reading rather than an error.

// String returns the S payload of the named attribute, or nil when the
// attribute is absent or not a string node.
func (i Item) String(key string) *string {
	v, ok := i[key]
	if !ok {
		return nil
	}
	s, ok := v[TagString].(string)
	if !ok {
		return nil
	}
	return &s
}

// Bool returns the BOOL payload of the named attribute, or nil when absent.
func (i Item) Bool(key string) *bool {
	v, ok := i[key]
	if !ok {
		return nil
	}
	b, ok := v[TagBool].(bool)
	if !ok {
		return nil
	}
	return &b
}

// List returns the elements of the named L attribute as wire nodes.
func (i Item) List(key string) []Value {
	v, ok := i[key]
	if !ok {
		return nil
	}
	return v.AsList()
}

// AsList returns the L payload of a list node; nil when the node carries no
// list.
func (v Value) AsList() []Value {
	elems, ok := asList(v[TagList])
	if !ok {
		return nil
	}
	out := make([]Value, 0, len(elems))
	for _, elem := range elems {
		if node, ok := asValue(elem); ok {
			out = append(out, node)
		}
	}
	return out
}

// Strings returns the named L attribute flattened to the S payloads of its
// elements. Elements without a string payload contribute an empty string.
func (i Item) Strings(key string) []string {
	nodes := i.List(key)
	if nodes == nil {
		return []string{}
	}
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		s, _ := node[TagString].(string)
		out = append(out, s)
	}
	return out
}

// Map returns the M payload of the named attribute as a nested item, or nil
// when absent.
func (i Item) Map(key string) Item {
	v, ok := i[key]
	if !ok {
		return nil
	}
	return v.AsItem()
}

// AsItem returns the M payload of a map node as a nested item; nil when the
// node carries no mapping.
func (v Value) AsItem() Item {
	entries, ok := asMap(v[TagMap])
	if !ok {
		return nil
	}
	out := make(Item, len(entries))
	for k, elem := range entries {
		if node, ok := asValue(elem); ok {
			out[k] = node
		}
	}
	return out
}
