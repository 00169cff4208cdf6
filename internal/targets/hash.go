package targets

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
)

// contentHash keys the memoization map: project root, normalized options
// and the hashable file contents (config plus manifest). Identical keys
// always map to identical derivations within a run.
func contentHash(projectRoot string, opts NormalizedOptions, files ...[]byte) string {
	h := sha256.New()
	io.WriteString(h, projectRoot)
	h.Write([]byte{0})
	io.WriteString(h, opts.TargetName)
	h.Write([]byte{0})
	io.WriteString(h, opts.CiTargetName)
	for _, file := range files {
		h.Write([]byte{0})
		h.Write(file)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// projectName extracts the name field from package-manifest JSON. ok is
// false when the manifest is not valid JSON.
func projectName(manifest []byte) (string, bool) {
	var doc struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(manifest, &doc); err != nil {
		return "", false
	}
	return doc.Name, true
}
