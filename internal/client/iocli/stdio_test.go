package iocli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStreams(strings.NewReader(""), &out)

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s", 1, "abc")

	assert.Equal(t, "hello world\ntest 1 abc", out.String())
}

func TestReadInput(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStreams(strings.NewReader("  user input \nsecond\n"), &out)

	first, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", first)

	second, err := stdio.ReadInput("Again: ")
	require.NoError(t, err)
	assert.Equal(t, "second", second)
	assert.Equal(t, "Prompt: Again: ", out.String())
}

func TestReadInput_LastLineWithoutNewline(t *testing.T) {
	stdio := NewStreams(strings.NewReader("tail"), io.Discard)

	got, err := stdio.ReadInput("> ")
	require.NoError(t, err)
	assert.Equal(t, "tail", got)

	_, err = stdio.ReadInput("> ")
	assert.ErrorIs(t, err, io.EOF)
}

// Через pipe терминала нет, поэтому пароль читается как обычная строка
func TestReadPassword_FromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		_, _ = w.Write([]byte("s3cret-pass\n"))
		_ = w.Close()
	}()
	defer r.Close()

	stdio := NewStreams(r, io.Discard)
	got, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", got)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			stdio := NewStreams(strings.NewReader(tt.input), &out)
			got, err := stdio.Confirm("Delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete? [y/N]: ", out.String())
		})
	}
}
