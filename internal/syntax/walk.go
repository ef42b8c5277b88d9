package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, visiting children in source
// order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *DeclStmt:
		for i, name := range n.Names {
			Walk(name, v)
			if i < len(n.Values) {
				Walk(n.Values[i], v)
			}
		}

	case *AssignStmt:
		Walk(n.Target, v)
		Walk(n.X, v)

	case *PrintStmt:
		Walk(n.X, v)

	case *IfStmt:
		for i, cond := range n.Conds {
			Walk(cond, v)
			walkBody(n.Bodies[i], v)
		}
		if n.HasElse() {
			walkBody(n.Bodies[len(n.Conds)], v)
		}

	case *LoopStmt:
		Walk(n.Cond, v)
		walkBody(n.Body, v)

	case *Operation:
		Walk(n.X, v)
		Walk(n.Y, v)

	// Leaf nodes: Name, BasicLit
	}
}

func walkBody(list []*AssignStmt, v Visitor) {
	for _, s := range list {
		Walk(s, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
