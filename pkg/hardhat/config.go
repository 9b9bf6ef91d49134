// Package hardhat reads the two inputs of a hardhat project that this
// tool reconciles: the TypeScript config declaring target networks and
// the on-disk deployment store written by hardhat-deploy.
package hardhat

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/evmtools/evm-deployment-info/pkg/errors"
)

// ConfigFileName is the hardhat configuration file this tool expects
// at the project root.
const ConfigFileName = "hardhat.config.ts"

// ValidateProject checks that root contains a hardhat config file.
func ValidateProject(root string) error {
	if _, err := os.Stat(filepath.Join(root, ConfigFileName)); err != nil {
		if os.IsNotExist(err) {
			return apperrors.NewConfigNotFoundError(root)
		}
		return err
	}
	return nil
}

// LoadNetworks reads the hardhat config at root and extracts the
// declared network name to chain id mapping.
func LoadNetworks(root string) (map[string]uint64, error) {
	path := filepath.Join(root, ConfigFileName)
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewConfigNotFoundError(root)
		}
		return nil, err
	}
	return ExtractNetworks(string(src))
}

// ExtractNetworks scans configuration source text for blocks shaped as
//
//	<identifier>: { ... chainId: <integer> ... }
//
// and returns the network name to chain id mapping. Blocks are
// tokenized by brace depth, so the chainId field of one block never
// leaks into a sibling; string literals and comments are skipped at
// every level, so a commented-out block is never extracted. A chainId
// nested deeper than the block's own level belongs to an inner block
// and is ignored at the outer level.
//
// Duplicate network names overwrite earlier entries. Zero matches is
// valid and yields an empty mapping.
func ExtractNetworks(src string) (map[string]uint64, error) {
	networks := make(map[string]uint64)

	n := len(src)
	for i := 0; i < n; {
		switch src[i] {
		case '\'', '"', '`':
			i = skipString(src, i)
			continue
		case '/':
			if next := skipComment(src, i); next > i {
				i = next
				continue
			}
		}
		if !isIdentStart(src[i]) {
			i++
			continue
		}
		// Only match identifiers at a token boundary, never the tail
		// of a longer identifier.
		if i > 0 && isIdentPart(src[i-1]) {
			i++
			continue
		}
		start := i
		for i < n && isIdentPart(src[i]) {
			i++
		}
		name := src[start:i]

		j := skipSpace(src, i)
		if j >= n || src[j] != ':' {
			continue
		}
		j = skipSpace(src, j+1)
		if j >= n || src[j] != '{' {
			continue
		}
		body, ok := blockBody(src, j)
		if !ok {
			continue
		}
		// Scanning resumes inside the block, so nested network blocks
		// are matched on their own.
		raw, found := chainIDValue(body)
		if !found {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, apperrors.NewConfigParseError(name, raw)
		}
		networks[name] = id
	}

	return networks, nil
}

// blockBody returns the text between the brace at open and its
// balancing close brace, exclusive of both.
func blockBody(src string, open int) (string, bool) {
	depth := 0
	n := len(src)
	for i := open; i < n; {
		switch c := src[i]; c {
		case '\'', '"', '`':
			i = skipString(src, i)
			continue
		case '/':
			if next := skipComment(src, i); next > i {
				i = next
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i], true
			}
		}
		i++
	}
	return "", false
}

// chainIDValue finds the first chainId field at the top level of a
// block body and returns its raw value token.
func chainIDValue(body string) (string, bool) {
	depth := 0
	n := len(body)
	for i := 0; i < n; {
		switch c := body[i]; c {
		case '\'', '"', '`':
			i = skipString(body, i)
			continue
		case '/':
			if next := skipComment(body, i); next > i {
				i = next
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
		default:
			if depth == 0 && isIdentStart(c) && (i == 0 || !isIdentPart(body[i-1])) {
				start := i
				for i < n && isIdentPart(body[i]) {
					i++
				}
				if body[start:i] != "chainId" {
					continue
				}
				j := skipSpace(body, i)
				if j >= n || body[j] != ':' {
					continue
				}
				j = skipSpace(body, j+1)
				end := j
				for end < n && body[end] != ',' && body[end] != '}' && body[end] != '\n' && body[end] != '\r' {
					end++
				}
				raw := strings.TrimSpace(body[j:end])
				if raw == "" {
					continue
				}
				return raw, true
			}
		}
		i++
	}
	return "", false
}

// skipString advances past a quoted literal starting at i, honoring
// backslash escapes. Returns the index just past the closing quote.
func skipString(src string, i int) int {
	quote := src[i]
	n := len(src)
	for i++; i < n; i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return n
}

// skipComment advances past a // or /* comment starting at i. Returns
// i unchanged when i does not start a comment.
func skipComment(src string, i int) int {
	n := len(src)
	if i+1 >= n || src[i] != '/' {
		return i
	}
	switch src[i+1] {
	case '/':
		for i < n && src[i] != '\n' {
			i++
		}
		return i
	case '*':
		for i += 2; i+1 < n; i++ {
			if src[i] == '*' && src[i+1] == '/' {
				return i + 2
			}
		}
		return n
	}
	return i
}

func skipSpace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
