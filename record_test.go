package reprise

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// opaqueAction carries state no codec can express.
type opaqueAction struct {
	Ch chan int `json:"ch"`
}

func (o *opaqueAction) FullPath() string    { return "reprisetest.opaqueAction" }
func (o *opaqueAction) Description() string { return "Holds unencodable state." }

func (o *opaqueAction) Clone() Executable[int, struct{}] {
	cp := *o
	return &cp
}

func (o *opaqueAction) Execute(int) (struct{}, error) {
	return struct{}{}, errors.New("boom")
}

// chanArgAction is encodable itself but takes an unencodable argument.
type chanArgAction struct {
	N int `json:"n"`
}

func (x *chanArgAction) FullPath() string    { return "reprisetest.chanArgAction" }
func (x *chanArgAction) Description() string { return "Takes unencodable arguments." }

func (x *chanArgAction) Clone() Executable[chan int, struct{}] {
	cp := *x
	return &cp
}

func (x *chanArgAction) Execute(chan int) (struct{}, error) {
	return struct{}{}, errors.New("boom")
}

func testCapture(t *testing.T) *Capture[int, int] {
	t.Helper()
	_, c := Run[int, int](&counterAction{Total: 4}, -3)
	require.NotNil(t, c)
	return c
}

func TestCapture_Record_Fields(t *testing.T) {
	c := testCapture(t)
	c.Time = time.UnixMilli(1700000000123).UTC()

	rec, err := c.Record(JSON)
	require.NoError(t, err)

	require.Equal(t, "reprisetest.counterAction-1700000000123", rec.ID)
	require.Equal(t, "reprisetest.counterAction", rec.FullPath)
	require.Equal(t, "Accumulates non-negative deltas.", rec.Description)
	require.Equal(t, "negative delta", rec.Error)
	require.Equal(t, "JSON", rec.Codec)
	require.Equal(t, "{\n  \"total\": 4\n}", rec.Snapshot)
	require.Equal(t, "-3", rec.Args)
	require.Equal(t, "int", rec.ArgsType)
	require.Equal(t, c.Time, rec.Time)
	require.True(t, strings.HasPrefix(rec.Fingerprint, "sha256:"))
}

func TestRecord_VerifyDetectsTampering(t *testing.T) {
	rec, err := testCapture(t).Record(JSON)
	require.NoError(t, err)
	require.True(t, rec.Verify())

	tampered := rec
	tampered.Error = "some other failure"
	require.False(t, tampered.Verify())

	tampered = rec
	tampered.Snapshot = "{\n  \"total\": 99\n}"
	require.False(t, tampered.Verify())
}

func TestRecord_SnapshotEncodingFailureIsFatal(t *testing.T) {
	_, c := Run[int, struct{}](&opaqueAction{Ch: make(chan int)}, 1)
	require.NotNil(t, c)

	_, err := c.Record(JSON)
	require.Error(t, err)
	require.Contains(t, err.Error(), "encode snapshot of reprisetest.opaqueAction")
}

func TestRecord_ArgumentEncodingFailureIsFatal(t *testing.T) {
	_, c := Run[chan int, struct{}](&chanArgAction{N: 1}, make(chan int))
	require.NotNil(t, c)

	_, err := c.Record(JSON)
	require.Error(t, err)
	require.Contains(t, err.Error(), "encode arguments of reprisetest.chanArgAction")
}

func TestRecordID_FilesystemSafe(t *testing.T) {
	at := time.UnixMilli(1700000000123).UTC()
	id := recordID("pkg/sub.Type", at)
	require.Equal(t, "pkg_sub.Type-1700000000123", id)
	require.NotContains(t, id, "/")
	require.NotContains(t, id, ":")
}
