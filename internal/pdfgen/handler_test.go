package pdfgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFolderFromLabel(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"2024-09-09 to 2024-09-22", "20240909__20240922"},
		{"20240909__20240922", "20240909__20240922"},
		{"2024/09/09 to 2024/09/22", "20240909__20240922"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, folderFromLabel(c.label), "label %q", c.label)
	}
}
