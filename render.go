package reprise

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Render converts the capture to a self-contained Go test function,
// encoding the snapshot and arguments with enc. The output is deterministic
// for a given capture, timestamp included. An encoding failure aborts: no
// partial test text is ever produced.
func (c *Capture[A, R]) Render(enc Codec) (string, error) {
	rec, err := c.Record(enc)
	if err != nil {
		return "", err
	}
	return rec.Render()
}

// AppendToFile renders the capture and appends it to the test file at path,
// creating the file when absent. Existing content is never truncated, so
// repeated failures accumulate as independent test functions.
//
// There is no internal locking; concurrent writers to the same path must be
// serialized by the caller.
func (c *Capture[A, R]) AppendToFile(enc Codec, path string) error {
	text, err := c.Render(enc)
	if err != nil {
		return err
	}
	return appendText(path, text)
}

// Render emits the record as a complete Go test function.
//
// The generated block assumes the target file already imports "testing",
// "reprise", and the package that FullPath refers to; appended text cannot
// add imports to a Go file. The test name embeds the capture's millisecond
// timestamp, so distinct captures never collide in one file.
func (r Record) Render() (string, error) {
	if _, ok := CodecByName(r.Codec); !ok {
		return "", fmt.Errorf("record %s: unknown codec %q", r.ID, r.Codec)
	}

	codecRef := "reprise." + r.Codec

	var b strings.Builder
	b.WriteString("\n// Automatically generated regression test for an Executable.\n")
	for _, line := range strings.Split(r.Description, "\n") {
		b.WriteString("// " + line + "\n")
	}
	b.WriteString("// generated at " + r.Time.Format("Mon, 02 Jan 2006 15:04:05 -0700") + "\n")
	b.WriteString("//\n")
	fmt.Fprintf(&b, "// failure was %q\n", r.Error)

	fmt.Fprintf(&b, "func TestRegression_%d(t *testing.T) {\n", r.Time.UnixMilli())
	fmt.Fprintf(&b, "\tconst objText = %s\n", payloadLiteral(r.Snapshot))
	fmt.Fprintf(&b, "\tvar obj %s\n", r.FullPath)
	fmt.Fprintf(&b, "\treprise.MustDecode(t, %s, objText, &obj)\n", codecRef)
	b.WriteString("\n")
	fmt.Fprintf(&b, "\tconst argText = %s\n", payloadLiteral(r.Args))
	fmt.Fprintf(&b, "\targs := reprise.MustDecodeArgs(t, %s, &obj, argText)\n", codecRef)
	b.WriteString("\n")
	b.WriteString("\tif _, err := obj.Execute(args); err != nil {\n")
	b.WriteString("\t\tt.Logf(\"could not execute %s\", obj.Description())\n")
	b.WriteString("\t\tt.Fatalf(\"still failing: %v\", err)\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")

	return b.String(), nil
}

// AppendToFile appends the rendered record to the test file at path.
func (r Record) AppendToFile(path string) error {
	text, err := r.Render()
	if err != nil {
		return err
	}
	return appendText(path, text)
}

// payloadLiteral embeds an encoded payload as a Go string literal. Raw
// strings keep the canonical multi-line layout readable; payloads that a
// raw string cannot hold verbatim fall back to an interpreted literal.
func payloadLiteral(s string) string {
	if !strings.ContainsAny(s, "`\r") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}

func appendText(path, text string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = f.WriteString(text)
	return err
}
