// Package steam finds the game inside local Steam libraries and hands
// launches to the Steam client.
package steam

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// KeyValues is a parsed Valve KeyValues (VDF) block. Values are either
// strings or nested KeyValues.
type KeyValues map[string]interface{}

// Block returns the nested block stored under key
func (kv KeyValues) Block(key string) (KeyValues, bool) {
	v, ok := kv[key].(KeyValues)
	return v, ok
}

// String returns the string stored under key ("" if absent)
func (kv KeyValues) String(key string) string {
	v, _ := kv[key].(string)
	return v
}

// ParseVDF reads Valve KeyValues text from r
func ParseVDF(r io.Reader) (KeyValues, error) {
	p := &vdfParser{r: bufio.NewReader(r)}
	return p.parseBlock(true)
}

type vdfParser struct {
	r *bufio.Reader
}

// parseBlock reads key/value pairs until "}" or, at top level, EOF
func (p *vdfParser) parseBlock(top bool) (KeyValues, error) {
	out := make(KeyValues)
	for {
		key, quoted, err := p.next()
		if err == io.EOF {
			if top {
				return out, nil
			}
			return nil, fmt.Errorf("vdf: unexpected end of input in block")
		}
		if err != nil {
			return nil, err
		}
		if !quoted && key == "}" {
			if top {
				return nil, fmt.Errorf("vdf: unexpected }")
			}
			return out, nil
		}
		if !quoted && key == "{" {
			return nil, fmt.Errorf("vdf: unexpected {")
		}

		val, quoted, err := p.next()
		if err == io.EOF {
			return nil, fmt.Errorf("vdf: unexpected end after key %q", key)
		}
		if err != nil {
			return nil, err
		}
		if !quoted && val == "{" {
			inner, err := p.parseBlock(false)
			if err != nil {
				return nil, err
			}
			out[key] = inner
			continue
		}
		if !quoted && val == "}" {
			return nil, fmt.Errorf("vdf: missing value for key %q", key)
		}
		out[key] = val
	}
}

// next returns the next token and whether it was quoted. Comments
// starting with // run to the end of the line.
func (p *vdfParser) next() (string, bool, error) {
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			return "", false, err
		}
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c == '/':
			if n, _ := p.r.Peek(1); len(n) == 1 && n[0] == '/' {
				if _, err := p.r.ReadString('\n'); err != nil && err != io.EOF {
					return "", false, err
				}
				continue
			}
			return p.bare(c)
		case c == '{' || c == '}':
			return string(c), false, nil
		case c == '"':
			return p.quoted()
		default:
			return p.bare(c)
		}
	}
}

func (p *vdfParser) quoted() (string, bool, error) {
	var sb strings.Builder
	for {
		c, err := p.r.ReadByte()
		if err == io.EOF {
			return "", false, fmt.Errorf("vdf: unclosed quote")
		}
		if err != nil {
			return "", false, err
		}
		switch c {
		case '"':
			return sb.String(), true, nil
		case '\\':
			esc, err := p.r.ReadByte()
			if err != nil {
				return "", false, fmt.Errorf("vdf: unclosed quote")
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(c)
		}
	}
}

func (p *vdfParser) bare(first byte) (string, bool, error) {
	var sb strings.Builder
	sb.WriteByte(first)
	for {
		c, err := p.r.ReadByte()
		if err == io.EOF {
			return sb.String(), false, nil
		}
		if err != nil {
			return "", false, err
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '"' || c == '{' || c == '}' {
			_ = p.r.UnreadByte()
			return sb.String(), false, nil
		}
		sb.WriteByte(c)
	}
}

// AppManifest holds the fields of an appmanifest_<id>.acf file we use
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses appmanifest_*.acf content
func ParseAppManifest(r io.Reader) (AppManifest, error) {
	root, err := ParseVDF(r)
	if err != nil {
		return AppManifest{}, err
	}
	state, ok := root.Block("AppState")
	if !ok {
		return AppManifest{}, fmt.Errorf("vdf: missing AppState")
	}
	return AppManifest{
		AppID:      state.String("appid"),
		Name:       state.String("name"),
		InstallDir: state.String("installdir"),
	}, nil
}

// libraryPaths lists the "path" of every entry of a libraryfolders.vdf,
// in index order
func libraryPaths(root KeyValues) []string {
	folders, ok := root.Block("libraryfolders")
	if !ok {
		return nil
	}
	var paths []string
	for i := 0; ; i++ {
		entry, ok := folders.Block(fmt.Sprint(i))
		if !ok {
			break
		}
		if p := entry.String("path"); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
