package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sidekit-dev/sidekit/internal/sidecar"
)

// ErrNoChecksums is returned by VerifyChecksum when the release publishes
// no checksums.txt asset. Callers may treat this as a warning.
var ErrNoChecksums = errors.New("release has no checksums.txt asset")

// Download fetches an asset into destDir and returns the downloaded path.
func (c *Client) Download(asset *Asset, destDir string) (string, error) {
	destPath := filepath.Join(destDir, asset.Name)

	resp, err := c.get(asset.DownloadURL, "")
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s returned status %d", asset.Name, resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}
	return destPath, nil
}

// VerifyChecksum downloads checksums.txt from the release and compares the
// listed digest against the downloaded file's actual SHA-256.
func (c *Client) VerifyChecksum(release *Release, downloadPath string) error {
	var checksumAsset *Asset
	for i := range release.Assets {
		if release.Assets[i].Name == "checksums.txt" {
			checksumAsset = &release.Assets[i]
			break
		}
	}
	if checksumAsset == nil {
		return ErrNoChecksums
	}

	resp, err := c.get(checksumAsset.DownloadURL, "")
	if err != nil {
		return fmt.Errorf("downloading checksums: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("checksums download returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading checksums: %w", err)
	}

	expected := findChecksum(string(body), filepath.Base(downloadPath))
	if expected == "" {
		return fmt.Errorf("no checksum found for %s in checksums.txt", filepath.Base(downloadPath))
	}

	actual, err := sidecar.SHA256File(downloadPath)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

// findChecksum parses checksums.txt lines of the form "sha256  filename".
func findChecksum(body, fileName string) string {
	for _, line := range strings.Split(body, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 2 && parts[1] == fileName {
			return parts[0]
		}
	}
	return ""
}

// ExtractBinary pulls the sidecar executable out of a tar.gz or zip archive
// into destDir and returns its path. Non-archive downloads are returned
// unchanged. The entry is matched by the convention name, falling back to
// the bare sidecar name.
func ExtractBinary(archivePath, destDir, name, triple string) (string, error) {
	if !isArchive(archivePath) {
		return archivePath, nil
	}

	wanted := map[string]bool{
		sidecar.BinaryName(name, triple): true,
		name:                             true,
		name + ".exe":                    true,
	}

	if strings.HasSuffix(archivePath, ".zip") {
		return extractFromZip(archivePath, destDir, wanted)
	}
	return extractFromTarGz(archivePath, destDir, wanted)
}

func extractFromTarGz(archivePath, destDir string, wanted map[string]bool) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading tar entry: %w", err)
		}

		baseName := filepath.Base(hdr.Name)
		if wanted[baseName] {
			destPath := filepath.Join(destDir, baseName)
			out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
			if err != nil {
				return "", fmt.Errorf("creating binary file: %w", err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return "", fmt.Errorf("extracting binary: %w", err)
			}
			out.Close()
			return destPath, nil
		}
	}

	return "", fmt.Errorf("sidecar binary not found in %s", filepath.Base(archivePath))
}

func extractFromZip(archivePath, destDir string, wanted map[string]bool) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		baseName := filepath.Base(f.Name)
		if !wanted[baseName] {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening zip entry: %w", err)
		}

		destPath := filepath.Join(destDir, baseName)
		out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			rc.Close()
			return "", fmt.Errorf("creating binary file: %w", err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			rc.Close()
			return "", fmt.Errorf("extracting binary: %w", err)
		}
		out.Close()
		rc.Close()
		return destPath, nil
	}

	return "", fmt.Errorf("sidecar binary not found in %s", filepath.Base(archivePath))
}
