package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMainEnv makes the test binary behave as tabconv itself.
const runMainEnv = "TABCONV_RUN_MAIN"

func TestMain(m *testing.M) {
	if os.Getenv(runMainEnv) == "1" {
		main()
	}
	os.Exit(m.Run())
}

// TestRow defines a simple test data structure
type TestRow struct {
	ID     int64   `parquet:"id"`
	Name   string  `parquet:"name"`
	Age    int64   `parquet:"age"`
	Salary float64 `parquet:"salary"`
}

// createTestParquetFile creates a temporary parquet file with test data
func createTestParquetFile(t *testing.T, dir, filename string, rows []TestRow) string {
	t.Helper()
	testFile := filepath.Join(dir, filename)

	f, err := os.Create(testFile)
	require.NoError(t, err, "failed to create test file")

	writer := parquet.NewGenericWriter[TestRow](f)
	_, err = writer.Write(rows)
	require.NoError(t, err, "failed to write test data")
	require.NoError(t, writer.Close(), "failed to close writer")
	require.NoError(t, f.Close(), "failed to close file")

	return testFile
}

var people = []TestRow{
	{ID: 1, Name: "Alice", Age: 30, Salary: 50000.5},
	{ID: 2, Name: "Bob", Age: 25, Salary: 45000},
	{ID: 3, Name: "Charlie", Age: 35, Salary: 60000},
}

const peopleCSV = "id,name,age,salary\n1,Alice,30,50000.5\n2,Bob,25,45000\n3,Charlie,35,60000\n"

func TestRun_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	in := createTestParquetFile(t, dir, "people.parquet", people)

	var stdout, stderr bytes.Buffer
	code := run([]string{in}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(dir, "people.csv"))
	require.NoError(t, err)
	assert.Equal(t, peopleCSV, string(data))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "[people.csv] wrote 3 of 3 lines")
}

func TestRun_Stdout(t *testing.T) {
	in := createTestParquetFile(t, t.TempDir(), "people.parquet", people)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--delimiter", ";", in, "-"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, strings.ReplaceAll(peopleCSV, ",", ";"), stdout.String())
}

func TestRun_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	in := createTestParquetFile(t, dir, "people.parquet", people)
	out := filepath.Join(dir, "Renamed.CSV")

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{in, out}, &stdout, &stderr), stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, peopleCSV, string(data))
}

func TestRun_GlobBatch(t *testing.T) {
	dir := t.TempDir()
	createTestParquetFile(t, dir, "a.parquet", people[:1])
	createTestParquetFile(t, dir, "b.parquet", people[1:])

	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(dir, "*.parquet"), "-"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Empty(t, stdout.String(), "explicit output is ignored for globs")

	a, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name,age,salary\n1,Alice,30,50000.5\n", string(a))

	b, err := os.ReadFile(filepath.Join(dir, "b.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name,age,salary\n2,Bob,25,45000\n3,Charlie,35,60000\n", string(b))
}

func TestRun_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	in := createTestParquetFile(t, dir, "people.parquet", people)

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"--header", in}, &stdout, &stderr), stderr.String())

	assert.Contains(t, stdout.String(), "Rows:    3")
	assert.Contains(t, stdout.String(), "salary")
	_, err := os.Stat(filepath.Join(dir, "people.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Frame(t *testing.T) {
	in := createTestParquetFile(t, t.TempDir(), "people.parquet", people)

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-f", "frame", in}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "Charlie")
	assert.Contains(t, stdout.String(), "[3 rows x 4 columns]")
}

func TestRun_JSONL(t *testing.T) {
	dir := t.TempDir()
	in := createTestParquetFile(t, dir, "people.parquet", people[:1])

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"--format", "jsonl", in}, &stdout, &stderr), stderr.String())

	data, err := os.ReadFile(filepath.Join(dir, "people.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "[\"id\",\"name\",\"age\",\"salary\"]\n[1,\"Alice\",30,50000.5]\n", string(data))
}

func TestRun_InvalidArguments(t *testing.T) {
	tests := [][]string{
		{},
		{"a.sas7bdat", "b.txt"},
		{"--progress-step", "0", "a.sas7bdat"},
		{"--delimiter", "", "a.sas7bdat"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitInvalid, run(args, &stdout, &stderr), "args %q", args)
		assert.Contains(t, stderr.String(), "Error:")
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitOK, run([]string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: tabconv")
}

func TestRun_MissingInputContinues(t *testing.T) {
	dir := t.TempDir()
	good := createTestParquetFile(t, dir, "good.parquet", people)
	missing := filepath.Join(dir, "missing.parquet")

	var stdout, stderr bytes.Buffer
	code := run([]string{missing, good}, &stdout, &stderr)
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr.String(), "missing.parquet")

	_, err := os.Stat(filepath.Join(dir, "good.csv"))
	assert.NoError(t, err, "later jobs still run")
}

func TestRun_NoDecoderForSAS(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "data.sas7bdat")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0o644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitFailed, run([]string{in}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "no decoder registered")
}

func TestIgnoreBrokenPipe(t *testing.T) {
	ignoreBrokenPipe()
	assert.True(t, signal.Ignored(syscall.SIGPIPE))
}

func TestMain_StdoutClosedEarly(t *testing.T) {
	dir := t.TempDir()
	rows := make([]TestRow, 300000)
	for i := range rows {
		rows[i] = TestRow{ID: int64(i + 1), Name: fmt.Sprintf("user%d", i+1), Age: 30, Salary: 1000}
	}
	in := createTestParquetFile(t, dir, "big.parquet", rows)

	cmd := exec.Command(os.Args[0], in, "-")
	cmd.Env = append(os.Environ(), runMainEnv+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	first, err := bufio.NewReader(stdout).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "id,name,age,salary\n", first)
	require.NoError(t, stdout.Close())

	err = cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("tabconv exited with %v, stderr:\n%s", exitErr, stderr.String())
	}
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "lines before interruption")
	assert.Contains(t, stderr.String(), "[-] wrote ")
	assert.Contains(t, stderr.String(), " of 300000 lines")
}
