package hardhat

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	apperrors "github.com/evmtools/evm-deployment-info/pkg/errors"
)

// StoreDirName is the deployment store directory written by
// hardhat-deploy under the project root.
const StoreDirName = "deployments"

// chainIDMarker is the per-record file naming the record's chain id.
const chainIDMarker = ".chainId"

// Store reads the on-disk deployment store. Each record is a
// subdirectory holding a .chainId marker and one JSON artifact per
// deployed contract. Records and artifact keys are always enumerated
// in sorted, document order, so the "first address" of a record is
// deterministic.
type Store struct {
	dir string
}

// NewStore creates a store reader rooted at a hardhat project root.
func NewStore(root string) *Store {
	return &Store{dir: filepath.Join(root, StoreDirName)}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Count returns the number of record directories in the store. A
// missing store directory counts as zero records.
func (s *Store) Count() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, apperrors.NewStoreReadError(s.dir, err)
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			count++
		}
	}
	return count, nil
}

// ChainIDs returns the chain ids of all records, ascending and
// deduplicated.
func (s *Store) ChainIDs() ([]uint64, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]struct{}, len(records))
	ids := make([]uint64, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.chainID]; ok {
			continue
		}
		seen[rec.chainID] = struct{}{}
		ids = append(ids, rec.chainID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Address resolves zero-or-one deployment address for a chain id. An
// absent record yields ok=false, not an error. When a record exists,
// its artifacts are enumerated in sorted filename order and the first
// address-valued entry wins; a record with no resolvable address also
// yields ok=false.
func (s *Store) Address(chainID uint64) (string, bool, error) {
	records, err := s.records()
	if err != nil {
		return "", false, err
	}
	for _, rec := range records {
		if rec.chainID != chainID {
			continue
		}
		addr, ok, err := firstRecordAddress(rec.path)
		if err != nil || ok {
			return addr, ok, err
		}
		// A record dir with no address keeps the chain classified as
		// missing, but another dir for the same chain may still hold one.
	}
	return "", false, nil
}

type record struct {
	chainID uint64
	path    string
}

// records enumerates the store's record directories in sorted order.
// Directories without a chain id marker are not records and are
// skipped; a marker that exists but does not parse is a malformed
// record.
func (s *Store) records() ([]record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewStoreReadError(s.dir, err)
	}

	var records []record
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.dir, entry.Name())
		marker := filepath.Join(dir, chainIDMarker)
		raw, err := os.ReadFile(marker)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, apperrors.NewStoreReadError(marker, err)
		}
		id, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			return nil, apperrors.NewStoreParseError(marker, err)
		}
		records = append(records, record{chainID: id, path: dir})
	}
	return records, nil
}

// firstRecordAddress scans a record directory's artifacts in sorted
// filename order and returns the first address found.
func firstRecordAddress(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, apperrors.NewStoreReadError(dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return "", false, apperrors.NewStoreReadError(path, err)
		}
		addr, ok, err := firstArtifactAddress(f)
		f.Close()
		if err != nil {
			return "", false, apperrors.NewStoreParseError(path, err)
		}
		if ok {
			return normalizeAddress(addr), true, nil
		}
	}
	return "", false, nil
}

// firstArtifactAddress scans an artifact document's top-level entries
// in document order and returns the first string value. The token
// stream is used instead of a map decode so enumeration order matches
// the document.
func firstArtifactAddress(r io.Reader) (string, bool, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return "", false, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false, fmt.Errorf("expected top-level object, got %v", tok)
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return "", false, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return "", false, err
		}
		var addr string
		if err := json.Unmarshal(value, &addr); err != nil {
			continue
		}
		if addr != "" {
			return addr, true, nil
		}
	}
	return "", false, nil
}

// normalizeAddress returns the EIP-55 checksummed form of a canonical
// hex address and leaves any other value untouched.
func normalizeAddress(addr string) string {
	if common.IsHexAddress(addr) {
		return common.HexToAddress(addr).Hex()
	}
	return addr
}
