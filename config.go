package mcpcognito

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadClientOptions loads YAML client options from any afs URL, ${NAME} references are replaced with environment values
func LoadClientOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download client options %v: %w", URL, err)
	}
	data = envReference.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envReference.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
	ret := &ClientOptions{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode client options %v: %w", URL, err)
	}
	return ret, nil
}
