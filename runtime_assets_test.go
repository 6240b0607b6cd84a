package obituary

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-obituary/pkg/renderers/vanilla"
)

func TestRuntimeAssetsFSContainsPageAssets(t *testing.T) {
	fsys := RuntimeAssetsFS()
	for _, name := range []string{vanilla.StylesheetName, vanilla.RuntimeScriptName} {
		if _, err := fs.ReadFile(fsys, name); err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
	}
}

func TestRuntimeScriptReleasesDownloadURL(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), vanilla.RuntimeScriptName)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	script := string(data)
	for _, want := range []string{"URL.revokeObjectURL", "1500", "Obituary copied to clipboard!", "Failed to copy text. Please try again."} {
		if !strings.Contains(script, want) {
			t.Fatalf("expected runtime script to contain %q", want)
		}
	}
}
