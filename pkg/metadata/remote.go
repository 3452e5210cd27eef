package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/baesync/baesync/pkg/logging"
	"github.com/baesync/baesync/pkg/models"
)

// remoteSchemes are the URI schemes the remote provider accepts
var remoteSchemes = map[string]bool{
	"rsync": true,
	"ssh":   true,
	"sftp":  true,
}

// IsRemoteURI reports whether the path addresses a remote location
func IsRemoteURI(p string) bool {
	for scheme := range remoteSchemes {
		if strings.HasPrefix(p, scheme+"://") {
			return true
		}
	}
	return false
}

// RemoteFileProvider resolves metadata for remote URIs through an
// injected listing mechanism.
type RemoteFileProvider struct {
	logger logging.Logger
	lister Lister
}

// NewRemoteFileProvider creates a provider backed by the given lister
func NewRemoteFileProvider(logger logging.Logger, lister Lister) *RemoteFileProvider {
	return &RemoteFileProvider{
		logger: logger,
		lister: lister,
	}
}

// RemoteFileInfo obtains metadata for a remote file. An unparseable
// modification time falls back to today rather than failing: remote
// listings are permissive by contract, and a missing date only weakens
// the comparison, it does not invalidate the entry.
func (p *RemoteFileProvider) RemoteFileInfo(ctx context.Context, uri string) (*models.FileInfo, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("malformed URI: %w", err)
	}
	if !remoteSchemes[parsed.Scheme] {
		return nil, fmt.Errorf("unsupported URI scheme: %q", parsed.Scheme)
	}

	p.logger.Debug(ctx, "Listing remote file", logging.Fields{"uri": uri})

	raw, err := p.lister.List(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("remote listing failed: %w", err)
	}

	entry := parseListing(raw)
	if len(entry) == 0 {
		return nil, fmt.Errorf("empty remote listing for %s", uri)
	}

	filePath := entry["path"]
	if filePath == "" {
		return nil, fmt.Errorf("remote listing for %s carries no path", uri)
	}

	size, err := strconv.ParseInt(entry["size"], 10, 64)
	if err != nil || size < 0 {
		return nil, fmt.Errorf("remote listing for %s carries invalid size %q", uri, entry["size"])
	}

	modified := time.Now()
	if mtime, err := strconv.ParseFloat(entry["mtime"], 64); err == nil {
		modified = time.Unix(int64(mtime), 0)
	} else {
		p.logger.Warn(ctx, "Unparseable remote mtime, defaulting to now", logging.Fields{
			"uri":   uri,
			"mtime": entry["mtime"],
		})
	}

	return &models.FileInfo{
		AbsolutePath: uri,
		RelativePath: filePath,
		Name:         path.Base(filePath),
		Size:         size,
		ModifiedDate: models.DateOf(modified),
		Checksum:     entry["checksum"],
		IsRemote:     true,
	}, nil
}

// parseListing decodes a listing reply: JSON first, falling back to
// "key: value" lines for listers that emit plain text.
func parseListing(raw []byte) map[string]string {
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err == nil {
		entry := make(map[string]string, len(decoded))
		for k, v := range decoded {
			switch value := v.(type) {
			case string:
				entry[k] = value
			case float64:
				entry[k] = strconv.FormatFloat(value, 'f', -1, 64)
			default:
				entry[k] = fmt.Sprintf("%v", value)
			}
		}
		return entry
	}

	entry := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		entry[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return entry
}
