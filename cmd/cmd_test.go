package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/gemini-pose-kit/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesCommand(t *testing.T) {
	var out bytes.Buffer
	templatesCmd.SetOut(&out)
	t.Cleanup(func() { templatesCmd.SetOut(nil) })

	require.NoError(t, templatesCommand(templatesCmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(domain.DefaultTemplates())+1)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Yoga Serenity")
}

func TestMimeTypeFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "me.png", want: "image/png"},
		{path: "me.JPG", want: "image/jpeg"},
		{path: "pose.jpeg", want: "image/jpeg"},
		{path: "pose.webp", want: "image/webp"},
		{path: "anim.gif", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := mimeTypeFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUploadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	var got domain.File
	var body []byte
	err := uploadFromPath(path, func(f domain.File) error {
		got = f
		var buf bytes.Buffer
		_, err := buf.ReadFrom(f.Content)
		body = buf.Bytes()
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "me.png", got.Name)
	assert.Equal(t, "image/png", got.MimeType)
	assert.Equal(t, "png-bytes", string(body))

	err = uploadFromPath(filepath.Join(dir, "missing.png"), func(domain.File) error { return nil })
	assert.ErrorIs(t, err, domain.ErrRead)
}

func TestGenerateCommand_RequiresUserImage(t *testing.T) {
	genOpts = generateOptions{}
	err := generateCommand(generateCmd, nil)
	assert.Error(t, err)
}
