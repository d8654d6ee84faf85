package config

import (
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDL overlays a .ztags.kdl document onto cfg. Unknown nodes are
// ignored so older binaries tolerate newer config files.
func parseKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return err
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "output":
			if s, ok := firstStringArg(n); ok {
				cfg.Output = s
			}
		case "sort":
			if b, ok := firstBoolArg(n); ok {
				cfg.Sort = b
			}
		case "recurse":
			if b, ok := firstBoolArg(n); ok {
				cfg.Recurse = b
			}
		case "include":
			if patterns := collectStringArgs(n); len(patterns) > 0 {
				cfg.Include = patterns
			}
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		}
	}
	return nil
}

// Typed accessors over kdl-go's document model. Each returns false when
// the node has no argument of the wanted type, so callers can leave the
// default in place.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstArg(n *document.Node) (interface{}, bool) {
	if len(n.Arguments) == 0 {
		return nil, false
	}
	return n.Arguments[0].Value, true
}

func firstStringArg(n *document.Node) (string, bool) {
	v, ok := firstArg(n)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func firstBoolArg(n *document.Node) (bool, bool) {
	v, ok := firstArg(n)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func firstIntArg(n *document.Node) (int, bool) {
	v, ok := firstArg(n)
	if !ok {
		return 0, false
	}
	switch v := v.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// collectStringArgs accepts both spellings of a string list: inline
// arguments on the node itself, or a child block where each entry is its
// own node (string-named or single-argument).
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}

	var values []string
	for _, arg := range n.Arguments {
		if s, ok := arg.Value.(string); ok {
			values = append(values, s)
		}
	}
	if len(values) > 0 {
		return values
	}

	for _, child := range n.Children {
		if s, ok := firstStringArg(child); ok {
			values = append(values, s)
			continue
		}
		if child.Name != nil {
			if s, ok := child.Name.Value.(string); ok {
				values = append(values, s)
			}
		}
	}
	return values
}
