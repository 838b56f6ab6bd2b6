package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDL reads a document such as
//
//	precision 12
//	angle_mode "deg"
//	history { limit 100; path "~/.gocalc/storage.json" }
//	server { port 9090 }
func parseKDL(content string) (*Config, error) {
	cfg := Default()
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "precision":
			if v, ok := firstIntArg(n); ok {
				cfg.Precision = v
			}
		case "angle_mode":
			assignString(n, &cfg.AngleMode)
		case "theme":
			assignString(n, &cfg.Theme)
		case "history":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "limit":
					if v, ok := firstIntArg(cn); ok {
						cfg.History.Limit = v
					}
				case "path":
					assignString(cn, &cfg.History.Path)
				}
			}
		case "server":
			for _, cn := range n.Children {
				v, ok := firstIntArg(cn)
				if !ok {
					continue
				}
				switch nodeName(cn) {
				case "port":
					cfg.Server.Port = v
				case "read_timeout_sec":
					cfg.Server.ReadTimeoutSec = v
				case "write_timeout_sec":
					cfg.Server.WriteTimeoutSec = v
				}
			}
		case "mcp":
			for _, cn := range n.Children {
				if nodeName(cn) == "name" {
					assignString(cn, &cfg.MCP.Name)
				}
			}
		}
	}
	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func assignString(n *document.Node, dst *string) {
	if len(n.Arguments) == 0 {
		return
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		*dst = s
	}
}
