package fetch

import (
	"fmt"
	"strings"

	"github.com/sidekit-dev/sidekit/internal/sidecar"
)

// SelectAsset finds the release asset holding the sidecar for a triple.
// Preference order: the bare convention name (<name>-<triple>[.exe]), that
// name archived (.tar.gz/.zip), then any archive whose name contains the
// triple.
func SelectAsset(assets []Asset, name, triple string) (*Asset, error) {
	expected := sidecar.BinaryName(name, triple)

	for i := range assets {
		if assets[i].Name == expected {
			return &assets[i], nil
		}
	}
	for i := range assets {
		if assets[i].Name == expected+".tar.gz" || assets[i].Name == expected+".zip" {
			return &assets[i], nil
		}
	}
	for i := range assets {
		if strings.Contains(assets[i].Name, triple) && isArchive(assets[i].Name) {
			return &assets[i], nil
		}
	}

	return nil, fmt.Errorf("no asset found for %s (expected %s)", triple, expected)
}

func isArchive(name string) bool {
	return strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".zip")
}
