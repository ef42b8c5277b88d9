package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":  "Program",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *DeclStmt:
		return map[string]interface{}{
			"type":   "DeclStmt",
			"pos":    n.pos.String(),
			"names":  mapSlice(n.Names, func(x *Name) interface{} { return x.Value }),
			"values": mapSlice(n.Values, func(x Expr) interface{} { return toJSON(x) }),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":   "AssignStmt",
			"pos":    n.pos.String(),
			"target": n.Target.Value,
			"op":     n.Op.String(),
			"value":  toJSON(n.X),
		}

	case *PrintStmt:
		return map[string]interface{}{
			"type":  "PrintStmt",
			"pos":   n.pos.String(),
			"value": toJSON(n.X),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type":  "IfStmt",
			"pos":   n.pos.String(),
			"conds": mapSlice(n.Conds, func(x Expr) interface{} { return toJSON(x) }),
			"then":  mapSlice(n.Bodies[:len(n.Conds)], bodyJSON),
		}
		if n.HasElse() {
			m["else"] = bodyJSON(n.Bodies[len(n.Conds)])
		}
		return m

	case *LoopStmt:
		return map[string]interface{}{
			"type": "LoopStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": bodyJSON(n.Body),
		}

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *Operation:
		return map[string]interface{}{
			"type": "BinaryOp",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func bodyJSON(list []*AssignStmt) interface{} {
	return mapSlice(list, func(s *AssignStmt) interface{} { return toJSON(s) })
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
