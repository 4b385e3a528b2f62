package reprise

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Record is the storable, non-generic form of a Capture. The snapshot and
// arguments are already encoded with the codec named in Codec, so a Record
// renders without touching the original values again. Records are what the
// capture store persists.
type Record struct {
	ID          string    `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	FullPath    string    `json:"fullPath"`
	Description string    `json:"description"`
	Error       string    `json:"error"`
	Codec       string    `json:"codec"`
	Snapshot    string    `json:"snapshot"`
	Args        string    `json:"args"`
	ArgsType    string    `json:"argsType"`
	Time        time.Time `json:"time"`
}

// Record converts the capture to its storable form, encoding the snapshot
// and the arguments with enc. An encoding failure for either payload is
// fatal: no partial record is returned.
func (c *Capture[A, R]) Record(enc Codec) (Record, error) {
	fullPath := c.Snapshot.FullPath()

	snapshotText, err := enc.Encode(c.Snapshot)
	if err != nil {
		return Record{}, fmt.Errorf("encode snapshot of %s: %w", fullPath, err)
	}

	argsText, err := enc.Encode(c.Args)
	if err != nil {
		return Record{}, fmt.Errorf("encode arguments of %s: %w", fullPath, err)
	}

	argsType := reflect.TypeOf(c.Args)
	if argsType == nil {
		return Record{}, fmt.Errorf("cannot determine argument type of %s", fullPath)
	}

	rec := Record{
		ID:          recordID(fullPath, c.Time),
		FullPath:    fullPath,
		Description: c.Snapshot.Description(),
		Error:       c.Err.Error(),
		Codec:       enc.Name(),
		Snapshot:    snapshotText,
		Args:        argsText,
		ArgsType:    argsType.String(),
		Time:        c.Time,
	}
	rec.Fingerprint = rec.fingerprint()
	return rec, nil
}

// Verify recomputes the record's fingerprint and reports whether it matches
// the stored one. A mismatch means the record was edited after capture.
func (r Record) Verify() bool {
	return r.Fingerprint == r.fingerprint()
}

// fingerprint hashes the record's reproducibility-relevant fields in a fixed
// order. Null byte separators keep the concatenation unambiguous.
func (r Record) fingerprint() string {
	parts := []string{
		r.FullPath,
		r.Description,
		r.Error,
		r.Codec,
		r.Snapshot,
		r.Args,
		r.ArgsType,
		strconv.FormatInt(r.Time.UnixMilli(), 10),
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "sha256:" + hex.EncodeToString(hash[:])
}

// recordID derives a filesystem-friendly identifier from the operation's
// full path and the capture time at millisecond resolution.
func recordID(fullPath string, at time.Time) string {
	sanitized := strings.NewReplacer("/", "_", ":", "_", "*", "").Replace(fullPath)
	return sanitized + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}
